package api

import (
	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/thbteam/patient-dashboard/auth"
	"github.com/thbteam/patient-dashboard/errors"
)

func NewServer(handler *Handler, healthCheck *HealthCheck, authenticator auth.Authenticator, renderer echo.Renderer, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Skip auth for the readiness probe and the login form
	skipper := RouteSkipper([]string{"/ready", LoginPath})
	authMiddleware := auth.NewAuthMiddleware(authenticator, auth.AuthMiddlewareOpts{
		Skipper:   skipper,
		LoginPath: LoginPath,
	})

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(logger))
	e.Use(authMiddleware)

	e.Renderer = renderer
	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	e.GET(LoginPath, handler.GetLogin)
	e.POST(LoginPath, handler.PostLogin)
	e.POST("/logout", handler.PostLogout)
	e.GET("/", handler.GetDashboard)
	e.GET("/logo", handler.GetLogo)

	v1 := e.Group("/v1")
	v1.GET("/options", handler.GetOptions)
	v1.GET("/analysis", handler.GetAnalysis)
	v1.GET("/export", handler.GetExport)

	return e
}

func NewRenderer() (echo.Renderer, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	return renderer, nil
}
