package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"

	"github.com/thbteam/patient-dashboard/config"
	errs "github.com/thbteam/patient-dashboard/errors"
)

var ErrInvalidCredentials = fmt.Errorf("%w: incorrect username or password", errs.Unauthorized)

type Config struct {
	Username       string        `envconfig:"USERNAMES" default:"thbteam"`
	HashedPassword string        `envconfig:"HASHED_PASSWORDS" default:"52da6833b233e0b2cc6d101c4204ff3f44f2abed3707c0fdff06abc2ef59ae6b"`
	SessionSecret  string        `envconfig:"DASHBOARD_SESSION_SECRET"`
	SessionTTL     time.Duration `envconfig:"DASHBOARD_SESSION_TTL" default:"8h"`
}

// NewConfig depends on the root config so that the env file is loaded first.
func NewConfig(_ *config.Config) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CheckPassword verifies the credentials of the shared account. The configured hash
// is either a hex encoded sha256 digest or a bcrypt hash.
func (c *Config) CheckPassword(username, password string) error {
	usernameMatches := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	var passwordMatches bool
	if isBcryptHash(c.HashedPassword) {
		passwordMatches = bcrypt.CompareHashAndPassword([]byte(c.HashedPassword), []byte(password)) == nil
	} else {
		digest := sha256.Sum256([]byte(password))
		expected := strings.ToLower(strings.TrimSpace(c.HashedPassword))
		passwordMatches = subtle.ConstantTimeCompare([]byte(hex.EncodeToString(digest[:])), []byte(expected)) == 1
	}

	if !usernameMatches || !passwordMatches {
		return ErrInvalidCredentials
	}
	return nil
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}
