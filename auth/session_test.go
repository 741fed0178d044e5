package auth_test

import (
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/thbteam/patient-dashboard/auth"
)

func newSessions(secret string, ttl time.Duration) *auth.Sessions {
	sessions, err := auth.NewSessions(&auth.Config{SessionSecret: secret, SessionTTL: ttl})
	Expect(err).ToNot(HaveOccurred())
	return sessions
}

var _ = Describe("Sessions", func() {
	var sessions *auth.Sessions

	BeforeEach(func() {
		sessions = newSessions("secret", time.Hour)
	})

	It("validates issued tokens", func() {
		session, err := sessions.Issue("thbteam")
		Expect(err).ToNot(HaveOccurred())
		Expect(session.Id).ToNot(BeEmpty())
		Expect(session.ExpiresAt).To(BeTemporally("~", time.Now().Add(time.Hour), 2*time.Second))

		validated, err := sessions.Validate(session.Token)
		Expect(err).ToNot(HaveOccurred())
		Expect(validated.Id).To(Equal(session.Id))
		Expect(validated.Username).To(Equal("thbteam"))
		Expect(validated.ExpiresAt).To(BeTemporally("==", session.ExpiresAt))
	})

	It("issues unique session ids", func() {
		first, err := sessions.Issue("thbteam")
		Expect(err).ToNot(HaveOccurred())
		second, err := sessions.Issue("thbteam")
		Expect(err).ToNot(HaveOccurred())
		Expect(first.Id).ToNot(Equal(second.Id))
	})

	It("rejects tokens signed with another secret", func() {
		session, err := newSessions("other", time.Hour).Issue("thbteam")
		Expect(err).ToNot(HaveOccurred())

		_, err = sessions.Validate(session.Token)
		Expect(err).To(MatchError(auth.ErrUnauthenticated))
	})

	It("rejects tokens between instances with random secrets", func() {
		session, err := newSessions("", time.Hour).Issue("thbteam")
		Expect(err).ToNot(HaveOccurred())

		_, err = newSessions("", time.Hour).Validate(session.Token)
		Expect(err).To(MatchError(auth.ErrUnauthenticated))
	})

	It("rejects expired tokens", func() {
		session, err := newSessions("secret", -time.Minute).Issue("thbteam")
		Expect(err).ToNot(HaveOccurred())

		_, err = sessions.Validate(session.Token)
		Expect(err).To(MatchError(auth.ErrUnauthenticated))
	})

	It("rejects malformed tokens", func() {
		_, err := sessions.Validate("not-a-token")
		Expect(err).To(MatchError(auth.ErrUnauthenticated))
	})

	It("rejects revoked tokens", func() {
		session, err := sessions.Issue("thbteam")
		Expect(err).ToNot(HaveOccurred())
		Expect(sessions.Revoke(session.Token)).To(Succeed())

		_, err = sessions.Validate(session.Token)
		Expect(err).To(MatchError(auth.ErrUnauthenticated))
	})

	It("creates http only session cookies", func() {
		session, err := sessions.Issue("thbteam")
		Expect(err).ToNot(HaveOccurred())

		cookie := auth.NewSessionCookie(session)
		Expect(cookie.Name).To(Equal(auth.SessionCookieName))
		Expect(cookie.Value).To(Equal(session.Token))
		Expect(cookie.HttpOnly).To(BeTrue())
		Expect(cookie.SameSite).To(Equal(http.SameSiteLaxMode))

		Expect(auth.ExpiredSessionCookie().MaxAge).To(BeNumerically("<", 0))
	})
})
