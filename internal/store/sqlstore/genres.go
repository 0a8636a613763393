package sqlstore

import (
	"context"
	"fmt"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/id"
)

const tableGenres = "genres"

// CreateGenre inserts a genre, assigning an id when g has none.
func (s *Store) CreateGenre(ctx context.Context, g *domain.Genre) error {
	if g.ID == "" {
		newID, err := id.Generate(id.PrefixGenre)
		if err != nil {
			return fmt.Errorf("create genre: %w", err)
		}
		g.ID = newID
	}
	if g.CreatedAt.IsZero() {
		g.InitTimestamps()
	}
	return s.insert(ctx, tableGenres, []column{
		{"id", g.ID},
		{"name", g.Name},
		{"slug", g.Slug},
		{"created_at", newTimestamp(g.CreatedAt)},
		{"updated_at", newTimestamp(g.UpdatedAt)},
	})
}

// GetGenre retrieves a genre by id.
func (s *Store) GetGenre(ctx context.Context, genreID string) (*domain.Genre, error) {
	var row genreRow
	if err := s.selectOne(ctx, &row, tableGenres, where{"id", genreID}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// GetGenreBySlug retrieves a genre by slug.
func (s *Store) GetGenreBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	var row genreRow
	if err := s.selectOne(ctx, &row, tableGenres, where{"slug", slug}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// ListGenres returns all genres ordered by name.
func (s *Store) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	var rows []genreRow
	if err := s.selectMany(ctx, &rows, tableGenres, "name, id"); err != nil {
		return nil, err
	}
	return genresFromRows(rows), nil
}

func genresFromRows(rows []genreRow) []*domain.Genre {
	out := make([]*domain.Genre, len(rows))
	for i, r := range rows {
		out[i] = r.domain()
	}
	return out
}
