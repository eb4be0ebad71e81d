package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending migrations for the configured driver.
// The migration directory is migrations/postgresql or migrations/mysql,
// resolved relative to the working directory. No pending migrations is not an error.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	logger.Info("running database migrations",
		slog.String("driver", dbDriver),
	)

	sourceURL, databaseURL, err := migrationURLs(dbDriver, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationURLs maps the driver to its migration directory. The MySQL DSN used by
// database/sql has no scheme, while golang-migrate selects its driver by scheme.
func migrationURLs(dbDriver, dbConnectionString string) (string, string, error) {
	switch dbDriver {
	case "postgres":
		return "file://migrations/postgresql", dbConnectionString, nil
	case "mysql":
		if !strings.HasPrefix(dbConnectionString, "mysql://") {
			dbConnectionString = "mysql://" + dbConnectionString
		}
		return "file://migrations/mysql", dbConnectionString, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", dbDriver)
	}
}
