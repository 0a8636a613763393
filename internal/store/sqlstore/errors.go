package sqlstore

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/reelhouse/catalog-server/internal/store"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// classify maps driver errors onto the store sentinels. Errors that are not
// constraint violations are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return store.ErrAlreadyExists.WithCause(err)
		case pgForeignKeyViolation:
			return store.ErrForeignKey.WithCause(err)
		case pgCheckViolation:
			return store.ErrInvalidInput.WithCause(err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists.WithCause(err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return store.ErrForeignKey.WithCause(err)
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return store.ErrInvalidInput.WithCause(err)
		}
	}

	// Extended result codes are not always reported; fall back to the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return store.ErrAlreadyExists.WithCause(err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return store.ErrForeignKey.WithCause(err)
	case strings.Contains(msg, "CHECK constraint failed"):
		return store.ErrInvalidInput.WithCause(err)
	}

	return err
}
