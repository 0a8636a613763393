package sqlstore

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" // registers sqlite://
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateLogger adapts slog to migrate.Logger.
type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool { return false }

// newMigrator builds a migrator that owns its own connection; closing it does
// not touch the application pool.
func newMigrator(cfg Config, logger *slog.Logger) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	dbURL, err := migrationURL(cfg)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	if logger != nil {
		m.Log = migrateLogger{logger: logger}
	}
	return m, nil
}

func migrationURL(cfg Config) (string, error) {
	switch cfg.Driver {
	case EngineSQLite, "":
		path, err := filepath.Abs(cfg.DSN)
		if err != nil {
			return "", fmt.Errorf("resolve database path: %w", err)
		}
		return "sqlite://" + path, nil
	case EnginePostgres:
		u, err := url.Parse(cfg.DSN)
		if err != nil {
			return "", fmt.Errorf("parse postgres DSN: %w", err)
		}
		u.Scheme = "pgx5"
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func closeMigrator(m *migrate.Migrate, logger *slog.Logger) {
	srcErr, dbErr := m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil && logger != nil {
		logger.Warn("failed to close migrator", "error", err)
	}
}

// Migrate applies every pending up migration.
func Migrate(cfg Config, logger *slog.Logger) error {
	if _, _, err := connectionParams(cfg); err != nil {
		return err
	}

	m, err := newMigrator(cfg, logger)
	if err != nil {
		return err
	}
	defer closeMigrator(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	if logger != nil {
		logger.Info("database migrated", "version", version, "dirty", dirty)
	}
	return nil
}

// MigrateDown reverts the given number of migrations.
func MigrateDown(cfg Config, steps int, logger *slog.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, err := newMigrator(cfg, logger)
	if err != nil {
		return err
	}
	defer closeMigrator(m, logger)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revert migrations: %w", err)
	}
	return nil
}

// Version reports the applied schema version. A database without any
// migration reports version 0.
func Version(cfg Config) (version uint, dirty bool, err error) {
	m, err := newMigrator(cfg, nil)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrator(m, nil)

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
