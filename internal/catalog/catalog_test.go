package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/store"
	"github.com/reelhouse/catalog-server/internal/store/sqlstore"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	cfg := sqlstore.Config{
		Driver:      sqlstore.EngineSQLite,
		DSN:         filepath.Join(t.TempDir(), "catalog.db"),
		AutoMigrate: true,
	}
	st, err := sqlstore.Open(context.Background(), cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func createMovie(t *testing.T, st store.Store, title, s string) *domain.Movie {
	t.Helper()
	m := &domain.Movie{Title: title, Slug: s, VideoURL: "https://cdn.example/" + s + ".mp4"}
	require.NoError(t, st.CreateMovie(context.Background(), m))
	return m
}

func genreSlugs(t *testing.T, st store.Store, movieID string) []string {
	t.Helper()
	genres, err := st.ListMovieGenres(context.Background(), movieID)
	require.NoError(t, err)
	out := make([]string, len(genres))
	for i, g := range genres {
		out[i] = g.Slug
	}
	return out
}

// failingInsertStore fails every junction insert, inside or outside a
// transaction.
type failingInsertStore struct {
	store.Store
	err error
}

func (f *failingInsertStore) InsertMovieGenres(context.Context, string, []string) error {
	return f.err
}

func (f *failingInsertStore) WithTx(ctx context.Context, fn func(store.Store) error) error {
	return f.Store.WithTx(ctx, func(tx store.Store) error {
		return fn(&failingInsertStore{Store: tx, err: f.err})
	})
}
