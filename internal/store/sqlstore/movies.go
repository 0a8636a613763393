package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/id"
	"github.com/reelhouse/catalog-server/internal/store"
)

const tableMovies = "movies"

// CreateMovie inserts a movie, assigning an id when m has none.
func (s *Store) CreateMovie(ctx context.Context, m *domain.Movie) error {
	if m.ID == "" {
		newID, err := id.Generate(id.PrefixMovie)
		if err != nil {
			return fmt.Errorf("create movie: %w", err)
		}
		m.ID = newID
	}
	if m.CreatedAt.IsZero() {
		m.InitTimestamps()
	}
	return s.insert(ctx, tableMovies, movieColumns(m))
}

// GetMovie retrieves a movie by id.
func (s *Store) GetMovie(ctx context.Context, movieID string) (*domain.Movie, error) {
	var row movieRow
	if err := s.selectOne(ctx, &row, tableMovies, where{"id", movieID}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// GetMovieBySlug retrieves a movie by slug.
func (s *Store) GetMovieBySlug(ctx context.Context, slug string) (*domain.Movie, error) {
	var row movieRow
	if err := s.selectOne(ctx, &row, tableMovies, where{"slug", slug}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// UpdateMovie overwrites every mutable column of the movie.
func (s *Store) UpdateMovie(ctx context.Context, m *domain.Movie) error {
	m.Touch()
	return s.update(ctx, tableMovies, mutable(movieColumns(m)), where{"id", m.ID})
}

// ListMovies returns one page of movies, newest first.
func (s *Store) ListMovies(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Movie], error) {
	params.Normalize(store.DefaultPageSize)
	offset, err := params.Offset()
	if err != nil {
		return nil, store.ErrInvalidInput.WithCause(err)
	}

	var total int
	if err := sqlx.GetContext(ctx, s.q, &total, "SELECT COUNT(*) FROM movies"); err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	var rows []movieRow
	query := s.rebind("SELECT * FROM movies ORDER BY created_at DESC, id LIMIT ? OFFSET ?")
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, params.Limit, offset); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	result := &store.PaginatedResult[*domain.Movie]{
		Items: moviesFromRows(rows),
		Total: total,
	}
	if next := offset + len(rows); next < total {
		result.HasMore = true
		result.NextCursor = store.EncodeCursor(next)
	}
	return result, nil
}

// ListMoviesByCreator returns the creator's movies, newest first.
func (s *Store) ListMoviesByCreator(ctx context.Context, creatorID string) ([]*domain.Movie, error) {
	var rows []movieRow
	if err := s.selectMany(ctx, &rows, tableMovies, "created_at DESC, id", where{"creator_id", creatorID}); err != nil {
		return nil, err
	}
	return moviesFromRows(rows), nil
}

// ListMoviesByGenre returns the movies tagged with the genre, newest first.
func (s *Store) ListMoviesByGenre(ctx context.Context, genreID string) ([]*domain.Movie, error) {
	const query = `
		SELECT m.* FROM movies m
		JOIN movie_genres mg ON mg.movie_id = m.id
		WHERE mg.genre_id = ?
		ORDER BY m.created_at DESC, m.id`

	var rows []movieRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, s.rebind(query), genreID); err != nil {
		return nil, fmt.Errorf("list movies by genre: %w", err)
	}
	return moviesFromRows(rows), nil
}

// ListRelatedMovies ranks other movies by the number of genres they share
// with movieID. Movies sharing no genre are not returned.
func (s *Store) ListRelatedMovies(ctx context.Context, movieID string, limit int) ([]*domain.Movie, error) {
	if limit <= 0 {
		limit = 6
	}

	const query = `
		SELECT m.* FROM movies m
		JOIN movie_genres mg ON mg.movie_id = m.id
		WHERE mg.genre_id IN (SELECT genre_id FROM movie_genres WHERE movie_id = ?)
		  AND m.id <> ?
		GROUP BY m.id
		ORDER BY COUNT(*) DESC, m.title, m.id
		LIMIT ?`

	var rows []movieRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, s.rebind(query), movieID, movieID, limit); err != nil {
		return nil, fmt.Errorf("list related movies: %w", err)
	}
	return moviesFromRows(rows), nil
}

func moviesFromRows(rows []movieRow) []*domain.Movie {
	out := make([]*domain.Movie, len(rows))
	for i, r := range rows {
		out[i] = r.domain()
	}
	return out
}
