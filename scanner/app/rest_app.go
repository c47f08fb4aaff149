package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/procwarden/procwarden/config"
	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/procwarden/procwarden/scanner/rest"
	"go.uber.org/fx"
)

// NewRestApp wires the scanner, its REST control surface and the background scan loop.
func NewRestApp(cfg config.ScannerConfig) (*fx.App, error) {
	handlerModule, err := buildHandlerModule(cfg)
	if err != nil {
		return nil, err
	}

	app := fx.New(
		handlerModule,
		fx.Invoke(StartRestApp),
		fx.Invoke(StartScanLoop),
	)
	return app, nil
}

func buildHandlerModule(cfg config.ScannerConfig) (fx.Option, error) {
	configModule, err := ConfigModule(cfg)
	if err != nil {
		return nil, err
	}
	adapterModule, err := AdapterModule(configModule)
	if err != nil {
		return nil, err
	}
	serviceModule, err := ServiceModule(adapterModule)
	if err != nil {
		return nil, err
	}
	return HandlerModule(serviceModule)
}

func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.ListenAddr()
			go func() {
				logger.Logger(ctx).Info().Msgf("starting rest server on port %s", serverHost)
				if err := engine.Start(serverHost); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on port %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down rest server")
			return engine.Shutdown(ctx)
		},
	})

	return nil
}

// StartScanLoop starts the scan loop with the application when scanner.auto_start is set,
// and always stops it on shutdown.
func StartScanLoop(lc fx.Lifecycle, cfg config.ScanConfig, svc domain.Service) error {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.AutoStart {
				logger.Logger(ctx).Info().Msg("scanner.auto_start is off, waiting for POST /api/v1/scanner/start")
				return nil
			}
			return svc.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			err := svc.Stop(ctx)
			if errors.Is(err, domain.ErrNotRunning) {
				return nil
			}
			return err
		},
	})
	return nil
}
