package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thbteam/patient-dashboard/auth"
)

const (
	LoginPath         = "/login"
	loginErrorMessage = "Incorrect username or password"
)

type LoginPage struct {
	Username string
	Error    string
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handler) GetLogin(c echo.Context) error {
	return c.Render(http.StatusOK, loginTemplate, LoginPage{})
}

// PostLogin starts a session and loads its dataset. Browsers are redirected to the
// dashboard, other clients receive the session token.
func (h *Handler) PostLogin(c echo.Context) error {
	username := c.FormValue("username")
	if err := h.auth.CheckPassword(username, c.FormValue("password")); err != nil {
		h.logger.Infow("rejected login", "username", username)
		if auth.AcceptsHTML(c.Request()) {
			return c.Render(http.StatusUnauthorized, loginTemplate, LoginPage{
				Username: username,
				Error:    loginErrorMessage,
			})
		}
		return err
	}

	session, err := h.sessions.Issue(username)
	if err != nil {
		return err
	}
	c.SetCookie(auth.NewSessionCookie(session))

	// Load failures are reported by the dashboard
	if _, err := h.datasets.Load(c.Request().Context(), session.Id); err != nil {
		h.logger.Warnw("unable to load patient dataset", "sessionId", session.Id, "error", err)
	}

	if auth.AcceptsHTML(c.Request()) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.JSON(http.StatusOK, LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

func (h *Handler) PostLogout(c echo.Context) error {
	if err := h.authenticator.Revoke(auth.GetToken(c)); err != nil {
		h.logger.Warnw("unable to revoke session", "error", err)
	}
	if authData := auth.GetAuthData(c.Request().Context()); auth.IsSessionAuth(authData) {
		h.datasets.Evict(authData.SessionId)
	}
	c.SetCookie(auth.ExpiredSessionCookie())

	if auth.AcceptsHTML(c.Request()) {
		return c.Redirect(http.StatusSeeOther, LoginPath)
	}
	return c.NoContent(http.StatusNoContent)
}
