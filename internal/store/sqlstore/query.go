package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/reelhouse/catalog-server/internal/store"
)

// column is one (name, value) pair of a write. Writes take ordered columns so
// the generated SQL is stable.
type column struct {
	name  string
	value any
}

// where is one equality filter; filters are joined with AND.
type where struct {
	column string
	value  any
}

func whereClause(filters []where) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	parts := make([]string, len(filters))
	args := make([]any, len(filters))
	for i, f := range filters {
		parts[i] = f.column + " = ?"
		args[i] = f.value
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// selectOne fetches the single row matching filters into dest.
func (s *Store) selectOne(ctx context.Context, dest any, table string, filters ...where) error {
	clause, args := whereClause(filters)
	query := s.rebind("SELECT * FROM " + table + clause + " LIMIT 1")
	if err := sqlx.GetContext(ctx, s.q, dest, query, args...); err != nil {
		return classify(err)
	}
	return nil
}

// selectMany fetches every row matching filters, in orderBy order.
func (s *Store) selectMany(ctx context.Context, dest any, table, orderBy string, filters ...where) error {
	clause, args := whereClause(filters)
	query := "SELECT * FROM " + table + clause
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}
	if err := sqlx.SelectContext(ctx, s.q, dest, s.rebind(query), args...); err != nil {
		return classify(err)
	}
	return nil
}

// insert adds one row. Inside a transaction the statement runs under a
// savepoint, so a constraint violation leaves the transaction usable for the
// caller's recovery path (PostgreSQL aborts the whole transaction otherwise).
func (s *Store) insert(ctx context.Context, table string, cols []column) error {
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = c.name
		marks[i] = "?"
		args[i] = c.value
	}
	query := s.rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(marks, ", ")))

	return s.savepoint(ctx, func() error {
		_, err := s.q.ExecContext(ctx, query, args...)
		return err
	})
}

// update sets cols on the rows matching filters. Matching nothing is
// reported as store.ErrNotFound.
func (s *Store) update(ctx context.Context, table string, cols []column, filters ...where) error {
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(filters))
	for i, c := range cols {
		sets[i] = c.name + " = ?"
		args = append(args, c.value)
	}
	clause, whereArgs := whereClause(filters)
	args = append(args, whereArgs...)

	query := s.rebind("UPDATE " + table + " SET " + strings.Join(sets, ", ") + clause)

	return s.savepoint(ctx, func() error {
		res, err := s.q.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

// deleteMany removes every row matching filters and reports how many went.
func (s *Store) deleteMany(ctx context.Context, table string, filters ...where) (int64, error) {
	clause, args := whereClause(filters)
	res, err := s.q.ExecContext(ctx, s.rebind("DELETE FROM "+table+clause), args...)
	if err != nil {
		return 0, classify(err)
	}
	return res.RowsAffected()
}

// upsert inserts a row or, when the conflict key already exists, overwrites
// every non-key column except created_at.
func (s *Store) upsert(ctx context.Context, table string, cols []column, conflictKeys ...string) error {
	keys := make(map[string]bool, len(conflictKeys))
	for _, k := range conflictKeys {
		keys[k] = true
	}

	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	var sets []string
	for i, c := range cols {
		names[i] = c.name
		marks[i] = "?"
		args[i] = c.value
		if !keys[c.name] && c.name != "created_at" {
			sets = append(sets, c.name+" = excluded."+c.name)
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		table, strings.Join(names, ", "), strings.Join(marks, ", "),
		strings.Join(conflictKeys, ", "), strings.Join(sets, ", "))

	return s.savepoint(ctx, func() error {
		_, err := s.q.ExecContext(ctx, s.rebind(query), args...)
		return err
	})
}

// savepoint runs fn under a savepoint when the Store is bound to a
// transaction, and directly otherwise. The returned error is classified.
func (s *Store) savepoint(ctx context.Context, fn func() error) error {
	if s.tx == nil {
		return classify(fn())
	}

	name := fmt.Sprintf("sp_%d", s.savepoints.Add(1))
	if _, err := s.q.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("create savepoint: %w", err)
	}

	if err := fn(); err != nil {
		if _, rbErr := s.q.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			s.logger.Error("rollback to savepoint failed", "savepoint", name, "error", rbErr)
		}
		return classify(err)
	}

	if _, err := s.q.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

func (s *Store) rebind(query string) string {
	return s.db.Rebind(query)
}

// mutable drops the columns an update must never touch.
func mutable(cols []column) []column {
	out := make([]column, 0, len(cols))
	for _, c := range cols {
		if c.name == "id" || c.name == "created_at" {
			continue
		}
		out = append(out, c)
	}
	return out
}
