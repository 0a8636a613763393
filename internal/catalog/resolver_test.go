package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/catalog-server/internal/domain"
	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/store"
)

func TestResolve_SameSlugSameRow(t *testing.T) {
	st := newTestStore(t)
	r := NewResolver(nil)
	ctx := context.Background()

	first, err := r.Resolve(ctx, st, domain.KindGenre, ResolveRequest{Name: "Sci-Fi"})
	require.NoError(t, err)
	second, err := r.Resolve(ctx, st, domain.KindGenre, ResolveRequest{Name: "Sci-Fi"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	genres, err := st.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "sci-fi", genres[0].Slug)
	assert.Equal(t, "Sci-Fi", genres[0].Name)
}

func TestResolve_ExistingRowIsNotUpdated(t *testing.T) {
	st := newTestStore(t)
	r := NewResolver(nil)
	ctx := context.Background()

	original, err := r.Resolve(ctx, st, domain.KindCreator, ResolveRequest{
		Name:    "Jane Doe",
		Profile: &domain.CreatorProfile{Bio: "Original bio"},
	})
	require.NoError(t, err)

	again, err := r.Resolve(ctx, st, domain.KindCreator, ResolveRequest{
		Name:    "JANE   doe",
		Profile: &domain.CreatorProfile{Bio: "Replacement bio"},
	})
	require.NoError(t, err)
	assert.Equal(t, original, again)

	c, err := st.GetCreatorBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "Original bio", c.Bio)
}

func TestResolve_ExplicitSlug(t *testing.T) {
	st := newTestStore(t)
	r := NewResolver(nil)
	ctx := context.Background()

	genreID, err := r.Resolve(ctx, st, domain.KindGenre, ResolveRequest{Name: "Nouvelle Vague", Slug: "new-wave"})
	require.NoError(t, err)

	g, err := st.GetGenreBySlug(ctx, "new-wave")
	require.NoError(t, err)
	assert.Equal(t, genreID, g.ID)

	// A slug alone is enough to find an existing row.
	found, err := r.Resolve(ctx, st, domain.KindGenre, ResolveRequest{Slug: "new-wave"})
	require.NoError(t, err)
	assert.Equal(t, genreID, found)

	// But not to create one.
	_, err = r.Resolve(ctx, st, domain.KindGenre, ResolveRequest{Slug: "unknown"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestResolve_RejectsBeforeTouchingStore(t *testing.T) {
	r := NewResolver(nil)
	ctx := context.Background()

	// A nil store panics on use, so these prove validation happens first.
	var st store.Store

	tests := []struct {
		name string
		kind domain.EntityKind
		req  ResolveRequest
	}{
		{"all symbols", domain.KindGenre, ResolveRequest{Name: "!!!"}},
		{"blank", domain.KindCreator, ResolveRequest{Name: "   "}},
		{"non-ascii only", domain.KindGenre, ResolveRequest{Name: "日本"}},
		{"malformed slug", domain.KindGenre, ResolveRequest{Name: "Drama", Slug: "Not A Slug"}},
		{"unknown kind", domain.EntityKind(99), ResolveRequest{Name: "Drama"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(ctx, st, tt.kind, tt.req)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

// raceStore hides existing genres from the first lookup, as if another
// request created the row between this request's lookup and insert.
type raceStore struct {
	store.Store
	lookups int
}

func (s *raceStore) GetGenreBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	s.lookups++
	if s.lookups == 1 {
		return nil, store.ErrNotFound
	}
	return s.Store.GetGenreBySlug(ctx, slug)
}

func TestResolve_RecoversFromConcurrentCreate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	winner := &domain.Genre{Name: "Drama", Slug: "drama"}
	require.NoError(t, st.CreateGenre(ctx, winner))

	race := &raceStore{Store: st}
	got, err := NewResolver(nil).Resolve(ctx, race, domain.KindGenre, ResolveRequest{Name: "Drama"})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got)
	assert.Equal(t, 2, race.lookups)

	genres, err := st.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

func TestResolve_RecoversInsideTransaction(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	winner := &domain.Genre{Name: "Drama", Slug: "drama"}
	require.NoError(t, st.CreateGenre(ctx, winner))

	var got string
	err := st.WithTx(ctx, func(tx store.Store) error {
		var err error
		got, err = NewResolver(nil).Resolve(ctx, &raceStore{Store: tx}, domain.KindGenre, ResolveRequest{Name: "Drama"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got)
}

func TestResolver_Check(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name    string
		kind    domain.EntityKind
		req     ResolveRequest
		wantErr bool
	}{
		{"plain name", domain.KindCreator, ResolveRequest{Name: "Jane Doe"}, false},
		{"explicit slug only", domain.KindCreator, ResolveRequest{Slug: "jane-doe"}, false},
		{"name without slug characters", domain.KindCreator, ResolveRequest{Name: "!!!"}, true},
		{"invalid explicit slug", domain.KindGenre, ResolveRequest{Name: "Noir", Slug: "Film Noir"}, true},
		{"unknown kind", domain.EntityKind(0), ResolveRequest{Name: "Noir"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Check(tt.kind, tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGenreNames(t *testing.T) {
	names, err := GenreNames([]string{" Sci-Fi ", "", "sci fi", "Noir", "  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi", "Noir"}, names)

	_, err = GenreNames([]string{"Drama", "???"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
