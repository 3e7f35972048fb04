package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"weather-search/pkg/log"
	"weather-search/pkg/msg"
)

//go:embed sql/*.sql
var migrations embed.FS

// Up applies every pending migration on db
func Up(db *sql.DB) error {
	source, err := iofs.New(migrations, "sql")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := migrator.Version()
	log.Infow(msg.GetMessage("app.migrated", version), "version", version, "dirty", dirty)
	return nil
}
