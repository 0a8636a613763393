package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/reelhouse/catalog-server/internal/domain"
)

const tableMovieGenres = "movie_genres"

// DeleteMovieGenres removes every junction row of the movie.
func (s *Store) DeleteMovieGenres(ctx context.Context, movieID string) error {
	n, err := s.deleteMany(ctx, tableMovieGenres, where{"movie_id", movieID})
	if err != nil {
		return fmt.Errorf("delete movie genres: %w", err)
	}
	s.logger.Debug("movie genres cleared", "movie_id", movieID, "rows", n)
	return nil
}

// InsertMovieGenres links the movie to every genre in one statement. Either
// all pairs are written or none are.
func (s *Store) InsertMovieGenres(ctx context.Context, movieID string, genreIDs []string) error {
	if len(genreIDs) == 0 {
		return nil
	}

	rows := make([]movieGenreRow, len(genreIDs))
	for i, g := range genreIDs {
		rows[i] = movieGenreRow{MovieID: movieID, GenreID: g}
	}

	return s.savepoint(ctx, func() error {
		_, err := sqlx.NamedExecContext(ctx, s.q,
			"INSERT INTO movie_genres (movie_id, genre_id) VALUES (:movie_id, :genre_id)", rows)
		return err
	})
}

// ListMovieGenres returns the movie's genres ordered by name.
func (s *Store) ListMovieGenres(ctx context.Context, movieID string) ([]*domain.Genre, error) {
	const query = `
		SELECT g.* FROM genres g
		JOIN movie_genres mg ON mg.genre_id = g.id
		WHERE mg.movie_id = ?
		ORDER BY g.name, g.id`

	var rows []genreRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, s.rebind(query), movieID); err != nil {
		return nil, fmt.Errorf("list movie genres: %w", err)
	}
	return genresFromRows(rows), nil
}

// movieGenreJoin is a genre row tagged with the movie it belongs to.
type movieGenreJoin struct {
	MovieID   string    `db:"movie_id"`
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt timestamp `db:"created_at"`
	UpdatedAt timestamp `db:"updated_at"`
}

// ListGenresForMovies loads the genres of many movies in one query. Movies
// without genres are absent from the map.
func (s *Store) ListGenresForMovies(ctx context.Context, movieIDs []string) (map[string][]*domain.Genre, error) {
	out := make(map[string][]*domain.Genre, len(movieIDs))
	if len(movieIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`
		SELECT mg.movie_id, g.id, g.name, g.slug, g.created_at, g.updated_at
		FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id IN (?)
		ORDER BY mg.movie_id, g.name, g.id`, movieIDs)
	if err != nil {
		return nil, fmt.Errorf("build genres query: %w", err)
	}

	var rows []movieGenreJoin
	if err := sqlx.SelectContext(ctx, s.q, &rows, s.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list genres for movies: %w", err)
	}
	for _, r := range rows {
		g := genreRow{ID: r.ID, Name: r.Name, Slug: r.Slug, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
		out[r.MovieID] = append(out[r.MovieID], g.domain())
	}
	return out, nil
}
