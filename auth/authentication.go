package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	AuthContextKey              = AuthKey("auth")
	DefaultCacheSize            = 10000           // Cache up to 10000 tokens
	DefaultCacheEntryExpiration = 5 * time.Minute // Cache tokens for 5 minutes
)

type AuthKey string

type Auth struct {
	SubjectId string    `json:"subjectId"`
	SessionId string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func IsSessionAuth(a *Auth) bool {
	return a != nil && a.SessionId != ""
}

type Authenticator interface {
	ValidateAndSetAuthData(token string, ec echo.Context) (bool, error)
	Revoke(token string) error
}

type SessionAuthenticator struct {
	sessions *Sessions
}

var _ Authenticator = &SessionAuthenticator{}

type AuthMiddlewareOpts struct {
	Skipper middleware.Skipper
	// Browser requests are redirected here instead of failing with 401
	LoginPath string
}

func NewAuthMiddleware(authenticator Authenticator, opts AuthMiddlewareOpts) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Allow skipping authentication for certain routes (e.g. readiness probe)
			if opts.Skipper != nil {
				if opts.Skipper(c) {
					return next(c)
				}
			}

			token := GetToken(c)
			if token == "" {
				return unauthenticated(c, opts, nil)
			}

			valid, err := authenticator.ValidateAndSetAuthData(token, c)
			if err != nil || !valid {
				return unauthenticated(c, opts, err)
			}
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context, opts AuthMiddlewareOpts, err error) error {
	if opts.LoginPath != "" && AcceptsHTML(c.Request()) {
		return c.Redirect(http.StatusSeeOther, opts.LoginPath)
	}
	return &echo.HTTPError{
		Code:     http.StatusUnauthorized,
		Message:  "session token is invalid",
		Internal: err,
	}
}

// GetToken returns the session token from the session cookie or the bearer authorization header.
func GetToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func AcceptsHTML(req *http.Request) bool {
	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

// NewAuthenticator returns a session authenticator that caches validated tokens
func NewAuthenticator(sessions *Sessions) (Authenticator, error) {
	delegate := NewSessionAuthenticator(sessions)
	authenticator, err := NewCachingAuthenticator(
		DefaultCacheSize,
		DefaultCacheEntryExpiration,
		delegate,
		IsSessionAuth,
	)
	if err != nil {
		return nil, err
	}
	return authenticator, nil
}

func NewSessionAuthenticator(sessions *Sessions) Authenticator {
	return &SessionAuthenticator{sessions: sessions}
}

func (s *SessionAuthenticator) ValidateAndSetAuthData(token string, ec echo.Context) (bool, error) {
	session, err := s.sessions.Validate(token)
	if err != nil {
		return false, err
	}

	SetAuthData(ec, &Auth{
		SubjectId: session.Username,
		SessionId: session.Id,
		ExpiresAt: session.ExpiresAt,
	})
	return true, nil
}

func (s *SessionAuthenticator) Revoke(token string) error {
	return s.sessions.Revoke(token)
}

func GetAuthData(ctx context.Context) *Auth {
	if auth, ok := ctx.Value(AuthContextKey).(*Auth); ok {
		return auth
	}

	return nil
}

func SetAuthData(ec echo.Context, auth *Auth) {
	ctx := context.WithValue(ec.Request().Context(), AuthContextKey, auth)
	ec.SetRequest(ec.Request().WithContext(ctx))
}

type CacheEntry struct {
	token  string
	auth   *Auth
	expiry time.Time
}

func (c CacheEntry) IsExpired() bool {
	return time.Now().After(c.expiry)
}

type CachingAuthenticator struct {
	delegate    Authenticator
	expiration  time.Duration
	lru         *simplelru.LRU
	mu          *sync.Mutex
	shouldCache func(*Auth) bool
}

var _ Authenticator = &CachingAuthenticator{}

func NewCachingAuthenticator(size int, expiration time.Duration, delegate Authenticator, shouldCache func(*Auth) bool) (*CachingAuthenticator, error) {
	var onEvict simplelru.EvictCallback
	lru, err := simplelru.NewLRU(size, onEvict)
	if err != nil {
		return nil, err
	}

	return &CachingAuthenticator{
		delegate:    delegate,
		expiration:  expiration,
		lru:         lru,
		mu:          &sync.Mutex{},
		shouldCache: shouldCache,
	}, nil
}

func (c *CachingAuthenticator) ValidateAndSetAuthData(token string, ec echo.Context) (bool, error) {
	entry := c.getCachedEntry(token)
	if entry != nil {
		SetAuthData(ec, entry.auth)
		return true, nil
	}

	res, err := c.delegate.ValidateAndSetAuthData(token, ec)
	if err != nil || !res {
		return res, err
	}

	auth := GetAuthData(ec.Request().Context())
	if c.shouldCache(auth) {
		// Cached entries never outlive the session
		expiry := time.Now().Add(c.expiration)
		if auth.ExpiresAt.Before(expiry) {
			expiry = auth.ExpiresAt
		}
		c.setCacheEntry(CacheEntry{
			token:  token,
			auth:   auth,
			expiry: expiry,
		})
	}

	return res, err
}

func (c *CachingAuthenticator) Revoke(token string) error {
	c.mu.Lock()
	c.lru.Remove(token)
	c.mu.Unlock()

	return c.delegate.Revoke(token)
}

func (c *CachingAuthenticator) getCachedEntry(token string) *CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.lru.Get(token); ok {
		entry := e.(CacheEntry)
		if entry.IsExpired() {
			c.lru.Remove(token)
			return nil
		}
		return &entry
	}

	return nil
}

func (c *CachingAuthenticator) setCacheEntry(entry CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.lru.Add(entry.token, entry)
}
