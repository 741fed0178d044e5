package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/thbteam/patient-dashboard/auth"
	"github.com/thbteam/patient-dashboard/config"
	"github.com/thbteam/patient-dashboard/dataset"
	"github.com/thbteam/patient-dashboard/logger"
	"github.com/thbteam/patient-dashboard/source"
	"github.com/thbteam/patient-dashboard/summary"
)

func Start(e *echo.Echo, cfg *config.Config, log *zap.SugaredLogger, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			address := fmt.Sprintf(":%d", cfg.HttpPort)
			log.Infow("starting http server", "address", address)
			go func() {
				if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("http server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			healthCheck.SetReady(false)
			return nil
		},
	})
}

func NewHttpClient(lifecycle fx.Lifecycle, cfg *source.Config) *http.Client {
	ctx, cancel := context.WithCancel(context.Background())
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return source.NewHttpClient(ctx, cfg)
}

func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			config.NewConfig,
			logger.NewProductionLogger,
			logger.Suggar,
			source.NewConfig,
			NewHttpClient,
			source.NewFetcher,
			source.NewLoader,
			dataset.NewConfig,
			dataset.NewLayout,
			dataset.NewService,
			summary.NewService,
			auth.NewConfig,
			auth.NewSessions,
			auth.NewAuthenticator,
			NewHealthCheck,
			NewHandler,
			NewRenderer,
			NewServer,
		),
	}
}

func MainLoop() {
	deps := append(Dependencies(), fx.Invoke(Start), fx.Invoke(SetReady))
	fx.New(deps...).Run()
}
