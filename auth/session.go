package auth

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	errs "github.com/thbteam/patient-dashboard/errors"
)

const (
	SessionCookieName = "dashboard_session"
	secretLength      = 32
)

var ErrUnauthenticated = fmt.Errorf("%w: session token is invalid", errs.Unauthorized)

// Session is a signed login session of the shared account.
type Session struct {
	Id        string
	Username  string
	ExpiresAt time.Time
	Token     string
}

// Sessions issues and validates HS256 signed session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration

	mu      *sync.Mutex
	revoked map[string]time.Time
}

// NewSessions uses a random secret when none is configured, which invalidates
// all sessions on restart.
func NewSessions(cfg *Config) (*Sessions, error) {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, secretLength)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("unable to generate session secret: %w", err)
		}
	}

	return &Sessions{
		secret:  secret,
		ttl:     cfg.SessionTTL,
		mu:      &sync.Mutex{},
		revoked: make(map[string]time.Time),
	}, nil
}

func (s *Sessions) Issue(username string) (*Session, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("unable to sign session token: %w", err)
	}

	return &Session{
		Id:        claims.ID,
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		Token:     token,
	}, nil
}

func (s *Sessions) Validate(token string) (*Session, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthenticated, err)
	}
	if claims.ID == "" || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrUnauthenticated
	}
	if s.isRevoked(claims.ID) {
		return nil, fmt.Errorf("%w: session was revoked", ErrUnauthenticated)
	}

	return &Session{
		Id:        claims.ID,
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		Token:     token,
	}, nil
}

// Revoke rejects the token until it expires.
func (s *Sessions) Revoke(token string) error {
	session, err := s.Validate(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, expiry := range s.revoked {
		if now.After(expiry) {
			delete(s.revoked, id)
		}
	}
	s.revoked[session.Id] = session.ExpiresAt
	return nil
}

func (s *Sessions) isRevoked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.revoked[id]
	return ok
}

func NewSessionCookie(session *Session) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
