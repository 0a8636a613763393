// Package sqlstore implements store.Store on a relational database through
// sqlx. SQLite (modernc.org/sqlite) is the default engine; PostgreSQL is
// reached through pgx's database/sql driver. Both share one portable schema.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/reelhouse/catalog-server/internal/store"
)

// Engine names accepted in Config.Driver.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

func init() {
	// sqlx does not know modernc's driver name; it uses ? placeholders.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Config describes how to reach the database.
type Config struct {
	Driver       string // sqlite or postgres
	DSN          string // file path for sqlite, postgres:// URL for postgres
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

// Store provides relational persistence for the catalog.
type Store struct {
	db     *sqlx.DB
	q      sqlx.ExtContext // db, or tx when bound to a transaction
	tx     *sqlx.Tx
	logger *slog.Logger

	savepoints *atomic.Int64
}

var _ store.Store = (*Store)(nil)

// Open connects to the configured database, applies pending migrations when
// AutoMigrate is set, and verifies the connection.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	driverName, dsn, err := connectionParams(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(cfg, logger); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	logger.Info("database opened", "driver", cfg.Driver, "max_open_conns", cfg.MaxOpenConns)

	return New(db, logger), nil
}

// New wraps an existing connection pool. The pool's driver name decides the
// placeholder style.
func New(db *sqlx.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		db:         db,
		q:          db,
		logger:     logger,
		savepoints: &atomic.Int64{},
	}
}

// connectionParams maps the configured engine to a database/sql driver name
// and DSN. SQLite connections enable foreign keys and a busy timeout on every
// pooled connection, and take the write lock when a transaction begins.
func connectionParams(cfg Config) (driverName, dsn string, err error) {
	switch cfg.Driver {
	case EngineSQLite, "":
		if cfg.DSN == "" {
			return "", "", errors.New("sqlite DSN (database path) is required")
		}
		if dir := filepath.Dir(cfg.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", "", fmt.Errorf("create database directory: %w", err)
			}
		}
		params := url.Values{}
		params.Add("_pragma", "foreign_keys(1)")
		params.Add("_pragma", "busy_timeout(5000)")
		params.Add("_pragma", "journal_mode(WAL)")
		params.Add("_pragma", "synchronous(NORMAL)")
		params.Set("_txlock", "immediate")
		return "sqlite", "file:" + cfg.DSN + "?" + params.Encode(), nil
	case EnginePostgres:
		if cfg.DSN == "" {
			return "", "", errors.New("postgres DSN is required")
		}
		return "pgx", cfg.DSN, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool. Closing a transaction-bound
// Store is a no-op.
func (s *Store) Close() error {
	if s.tx != nil {
		return nil
	}
	return s.db.Close()
}

// InTx reports whether this Store is bound to a transaction.
func (s *Store) InTx() bool {
	return s.tx != nil
}

// WithTx runs fn inside a transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	bound := &Store{
		db:         s.db,
		q:          tx,
		tx:         tx,
		logger:     s.logger,
		savepoints: &atomic.Int64{},
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Error("transaction rollback failed", "error", rbErr)
			}
		}
	}()

	if err = fn(bound); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", classify(err))
	}
	return nil
}
