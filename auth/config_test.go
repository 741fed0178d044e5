package auth_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/thbteam/patient-dashboard/auth"
	"github.com/thbteam/patient-dashboard/config"
)

func sha256Hex(password string) string {
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}

var _ = Describe("Config", func() {
	Describe("NewConfig", func() {
		BeforeEach(func() {
			Expect(os.Setenv("DASHBOARD_SESSION_TTL", "30m")).To(Succeed())
			DeferCleanup(os.Unsetenv, "DASHBOARD_SESSION_TTL")
		})

		It("loads the session settings from the environment", func() {
			cfg, err := auth.NewConfig(config.New())
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.SessionTTL).To(Equal(30 * time.Minute))
			Expect(cfg.HashedPassword).ToNot(BeEmpty())
		})
	})

	Describe("CheckPassword", func() {
		var cfg *auth.Config

		BeforeEach(func() {
			cfg = &auth.Config{
				Username:       "thbteam",
				HashedPassword: sha256Hex("correct horse"),
			}
		})

		It("accepts matching credentials", func() {
			Expect(cfg.CheckPassword("thbteam", "correct horse")).To(Succeed())
		})

		It("accepts upper case digests", func() {
			cfg.HashedPassword = strings.ToUpper(cfg.HashedPassword)
			Expect(cfg.CheckPassword("thbteam", "correct horse")).To(Succeed())
		})

		It("rejects a wrong password", func() {
			Expect(cfg.CheckPassword("thbteam", "battery staple")).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects a wrong username", func() {
			Expect(cfg.CheckPassword("admin", "correct horse")).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects empty credentials", func() {
			Expect(cfg.CheckPassword("", "")).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("supports bcrypt hashes", func() {
			hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
			Expect(err).ToNot(HaveOccurred())
			cfg.HashedPassword = string(hash)

			Expect(cfg.CheckPassword("thbteam", "correct horse")).To(Succeed())
			Expect(cfg.CheckPassword("thbteam", "battery staple")).To(MatchError(auth.ErrInvalidCredentials))
		})
	})
})
