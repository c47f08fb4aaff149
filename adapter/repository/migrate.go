package repository

import (
	"context"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/procwarden/procwarden/config"
	"github.com/procwarden/procwarden/pkg/logger"
)

//go:embed migration/*.json
var migrationFS embed.FS

// Migrate brings the detection collection and its indexes up to the latest version.
func Migrate(ctx context.Context, cfg config.MongoDBConfig) error {
	src, err := iofs.New(migrationFS, "migration")
	if err != nil {
		return errors.Wrap(err, "open embedded migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.DatabaseURI())
	if err != nil {
		return errors.Wrap(err, "init migrate")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Logger(ctx).Warn().AnErr("source_err", srcErr).AnErr("db_err", dbErr).Msg("close migrate")
		}
	}()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "read migration version")
	}
	logger.Logger(ctx).Info().Uint("version", version).Bool("dirty", dirty).Str("database", cfg.Database).
		Msg("detection store schema is up to date")
	return nil
}
