package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/thbteam/patient-dashboard/auth"
	"github.com/thbteam/patient-dashboard/dataset"
	"github.com/thbteam/patient-dashboard/summary"
)

type Handler struct {
	auth          *auth.Config
	sessions      *auth.Sessions
	authenticator auth.Authenticator
	datasets      dataset.Service
	summary       summary.Service
	logger        *zap.SugaredLogger
}

type Params struct {
	fx.In

	Auth          *auth.Config
	Sessions      *auth.Sessions
	Authenticator auth.Authenticator
	Datasets      dataset.Service
	Summary       summary.Service
	Logger        *zap.SugaredLogger
}

func NewHandler(p Params) *Handler {
	return &Handler{
		auth:          p.Auth,
		sessions:      p.Sessions,
		authenticator: p.Authenticator,
		datasets:      p.Datasets,
		summary:       p.Summary,
		logger:        p.Logger,
	}
}

// session returns the dataset of the authenticated session
func (h *Handler) session(c echo.Context) (*dataset.Session, error) {
	authData := auth.GetAuthData(c.Request().Context())
	if !auth.IsSessionAuth(authData) {
		return nil, auth.ErrUnauthenticated
	}

	return h.datasets.Get(c.Request().Context(), authData.SessionId)
}

func criteriaValues(c echo.Context) map[string]interface{} {
	values := make(map[string]interface{})
	for k, v := range c.QueryParams() {
		values[k] = v
	}
	return values
}
