package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"mariachi/config"
	"mariachi/infras/postgres"
	"mariachi/migrations"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

// migrationURL is the write DSN plus the migrate bookkeeping table.
func migrationURL(cfg *config.Config) string {
	target := postgres.WriteTarget(cfg)
	if cfg.DB.Postgres.MigrationTable == "" {
		return target.DSN()
	}

	return target.DSN() + "&x-migrations-table=" + url.QueryEscape(cfg.DB.Postgres.MigrationTable)
}

func newMigrate(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, migrationURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one migration action against the write database.
func Runner(cfg *config.Config, action string) error {
	mig, err := newMigrate(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if sourceErr, dbErr := mig.Close(); sourceErr != nil || dbErr != nil {
			log.Warn().AnErr("source", sourceErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	case ActionVersion:
		version, dirty, versionErr := mig.Version()
		if versionErr != nil && !errors.Is(versionErr, migrate.ErrNilVersion) {
			return fmt.Errorf("failed to read migration version: %w", versionErr)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migration version")

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
