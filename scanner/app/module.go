package app

import (
	"context"
	"fmt"

	gopsutiladapter "github.com/procwarden/procwarden/adapter/gopsutil"
	procfsadapter "github.com/procwarden/procwarden/adapter/procfs"
	"github.com/procwarden/procwarden/adapter/repository"
	"github.com/procwarden/procwarden/config"
	"github.com/procwarden/procwarden/pkg/digest"
	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/procwarden/procwarden/scanner/rest"
	"github.com/procwarden/procwarden/scanner/service"
	"go.uber.org/fx"
)

func ConfigModule(cfg config.ScannerConfig) (fx.Option, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return fx.Options(
		fx.Provide(func() config.ScannerConfig {
			return cfg
		}),
		fx.Provide(func(scannerCfg config.ScannerConfig) config.ServerConfig {
			return scannerCfg.Server
		}),
		fx.Provide(func(scannerCfg config.ScannerConfig) config.ScanConfig {
			return scannerCfg.Scanner
		}),
		fx.Provide(func(scannerCfg config.ScannerConfig) config.DigestConfig {
			return scannerCfg.Digest
		}),
		fx.Provide(func(scannerCfg config.ScannerConfig) config.MongoDBConfig {
			return scannerCfg.MongoDB
		}),
		fx.Provide(func(scannerCfg config.ScannerConfig) config.AuthConfig {
			return scannerCfg.Auth
		}),
	), nil
}

// AdapterModule creates an Fx module that provides the process source, the digester and the
// detection repository
func AdapterModule(configModule fx.Option) (fx.Option, error) {
	return fx.Options(
		configModule,
		fx.Provide(NewProcessSource),
		fx.Provide(NewDigester),
		fx.Provide(NewDetectionRepository),
	), nil
}

// ServiceModule creates an Fx module that provides the service layer, return domain.Service
func ServiceModule(adapterModule fx.Option) (fx.Option, error) {
	return fx.Options(
		adapterModule,
		fx.Provide(service.NewService),
		fx.Provide(service.NewAuthenticator),
	), nil
}

// HandlerModule creates an Fx module that provides the REST handler, return *rest.Handler
func HandlerModule(serviceModule fx.Option) (fx.Option, error) {
	return fx.Options(
		serviceModule,
		fx.Provide(rest.NewHandler),
	), nil
}

// NewProcessSource picks the platform backend named by scanner.backend.
func NewProcessSource(cfg config.ScanConfig) (domain.ProcessSource, error) {
	switch cfg.Backend {
	case procfsadapter.BackendName:
		src, err := procfsadapter.NewSource(cfg.ProcRoot)
		if err != nil {
			return nil, err
		}
		return src, nil
	case gopsutiladapter.BackendName:
		return gopsutiladapter.NewSource(), nil
	default:
		return nil, fmt.Errorf("unknown scanner backend %q", cfg.Backend)
	}
}

// NewDigester returns the cached, throttled digest engine. Its cache janitor stops with the
// application.
func NewDigester(lc fx.Lifecycle, cfg config.DigestConfig) domain.Digester {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return digest.NewCachedEngine(ctx, digest.NewEngine(cfg.ChunkSize), cfg.CacheSize, cfg.MaxPerSecond)
}

// NewDetectionRepository connects the MongoDB detection store, migrating it first when
// mongodb.migrate is set. It returns a nil repository when the store is disabled.
func NewDetectionRepository(lc fx.Lifecycle, cfg config.MongoDBConfig) (domain.DetectionRepository, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	ctx := context.Background()
	if cfg.Migrate {
		if err := repository.Migrate(ctx, cfg); err != nil {
			return nil, err
		}
	}
	repo, err := repository.NewRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Logger(ctx).Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("detection store connected")
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return repo.Close(ctx)
		},
	})
	return repo, nil
}

// NewServiceApp builds the scanner without the REST server or the scan loop, for one-shot
// commands. targets are filled with fx.Populate.
func NewServiceApp(cfg config.ScannerConfig, targets ...any) (*fx.App, error) {
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
	return fx.New(
		serviceModule,
		fx.NopLogger,
		fx.Populate(targets...),
	), nil
}
