package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/store/sqlstore"
)

func newSynchronizer(mode Mode) *Synchronizer {
	return NewSynchronizer(NewResolver(nil), mode, nil)
}

func TestSetGenres_DeduplicatesAndSkipsBlanks(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	m := createMovie(t, st, "My Film", "my-film")

	for _, mode := range []Mode{ModeAtomic, ModeLegacy} {
		t.Run(mode.String(), func(t *testing.T) {
			err := newSynchronizer(mode).SetGenres(ctx, st, m.ID, []string{"Drama", "Drama", "  ", "drama "})
			require.NoError(t, err)
			assert.Equal(t, []string{"drama"}, genreSlugs(t, st, m.ID))
		})
	}
}

func TestSetGenres_ReplacesWholeSet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	m := createMovie(t, st, "My Film", "my-film")
	sync := newSynchronizer(ModeAtomic)

	require.NoError(t, sync.SetGenres(ctx, st, m.ID, []string{"A", "B"}))
	assert.Equal(t, []string{"a", "b"}, genreSlugs(t, st, m.ID))

	require.NoError(t, sync.SetGenres(ctx, st, m.ID, []string{"C"}))
	assert.Equal(t, []string{"c"}, genreSlugs(t, st, m.ID))

	// Genres that lost their movie are not cleaned up.
	all, err := st.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, sync.SetGenres(ctx, st, m.ID, nil))
	assert.Empty(t, genreSlugs(t, st, m.ID))

	genres, err := sync.Genres(ctx, st, m.ID)
	require.NoError(t, err)
	assert.Empty(t, genres)
}

func TestSetGenres_InvalidNameLeavesJunctionUntouched(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	m := createMovie(t, st, "My Film", "my-film")

	for _, mode := range []Mode{ModeAtomic, ModeLegacy} {
		t.Run(mode.String(), func(t *testing.T) {
			sync := newSynchronizer(mode)
			require.NoError(t, sync.SetGenres(ctx, st, m.ID, []string{"Drama"}))

			err := sync.SetGenres(ctx, st, m.ID, []string{"Comedy", "???"})
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
			assert.Equal(t, []string{"drama"}, genreSlugs(t, st, m.ID))
		})
	}
}

func TestSetGenres_UnknownMovie(t *testing.T) {
	st := newTestStore(t)

	err := newSynchronizer(ModeAtomic).SetGenres(context.Background(), st, "mov-missing", []string{"Drama"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSetGenres_AtomicFailureKeepsPreviousSet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	m := createMovie(t, st, "My Film", "my-film")
	sync := newSynchronizer(ModeAtomic)
	require.NoError(t, sync.SetGenres(ctx, st, m.ID, []string{"Drama", "Noir"}))

	failing := &failingInsertStore{Store: st, err: errors.New("disk full")}
	err := sync.SetGenres(ctx, failing, m.ID, []string{"Comedy"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrPartialFailure)

	assert.Equal(t, []string{"drama", "noir"}, genreSlugs(t, st, m.ID))

	// The genre resolved inside the failed transaction was rolled back too.
	_, err = st.GetGenreBySlug(ctx, "comedy")
	assert.Error(t, err)
}

func TestSetGenres_LegacyFailureEmptiesJunction(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	m := createMovie(t, st, "My Film", "my-film")
	sync := newSynchronizer(ModeLegacy)
	require.NoError(t, sync.SetGenres(ctx, st, m.ID, []string{"Drama", "Noir"}))

	failing := &failingInsertStore{Store: st, err: errors.New("disk full")}
	err := sync.SetGenres(ctx, failing, m.ID, []string{"Comedy"})
	require.Error(t, err)
	require.ErrorIs(t, err, domainerrors.ErrPartialFailure)

	var derr *domainerrors.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, PartialFailureDetails{MovieID: m.ID, JunctionState: JunctionEmpty}, derr.Details)

	assert.Empty(t, genreSlugs(t, st, m.ID))
}

func TestSetGenres_LegacyPartialFailureWithDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	st := sqlstore.New(sqlx.NewDb(db, "sqlite"), nil)

	const ts = "2024-01-01T00:00:00.000000000Z"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM movies WHERE id = ? LIMIT 1")).
		WithArgs("mov-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "slug", "description", "video_url", "thumbnail", "year", "creator_id", "created_at", "updated_at",
		}).AddRow("mov-1", "My Film", "my-film", nil, "https://x", nil, nil, nil, ts, ts))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movie_genres WHERE movie_id = ?")).
		WithArgs("mov-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM genres WHERE slug = ? LIMIT 1")).
		WithArgs("drama").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "created_at", "updated_at"}).
			AddRow("gnr-1", "Drama", "drama", ts, ts))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?)")).
		WithArgs("mov-1", "gnr-1").
		WillReturnError(errors.New("connection reset by peer"))

	err = newSynchronizer(ModeLegacy).SetGenres(context.Background(), st, "mov-1", []string{"Drama"})

	require.ErrorIs(t, err, domainerrors.ErrPartialFailure)
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModeAtomic, ModeFor(true))
	assert.Equal(t, ModeLegacy, ModeFor(false))
}
