// Package store defines the persistence interface of the catalog.
//
// Implementations must report lookups that match nothing as ErrNotFound and
// writes that collide with a unique key as ErrAlreadyExists, so callers can
// tell a missing row from a duplicate one.
package store

import (
	"context"

	"github.com/reelhouse/catalog-server/internal/domain"
)

// CreatorStore persists creators.
type CreatorStore interface {
	CreateCreator(ctx context.Context, c *domain.Creator) error
	GetCreator(ctx context.Context, id string) (*domain.Creator, error)
	GetCreatorBySlug(ctx context.Context, slug string) (*domain.Creator, error)
	UpdateCreator(ctx context.Context, c *domain.Creator) error
	ListCreators(ctx context.Context) ([]*domain.Creator, error)
}

// GenreStore persists genres.
type GenreStore interface {
	CreateGenre(ctx context.Context, g *domain.Genre) error
	GetGenre(ctx context.Context, id string) (*domain.Genre, error)
	GetGenreBySlug(ctx context.Context, slug string) (*domain.Genre, error)
	ListGenres(ctx context.Context) ([]*domain.Genre, error)
}

// MovieStore persists movies.
type MovieStore interface {
	CreateMovie(ctx context.Context, m *domain.Movie) error
	GetMovie(ctx context.Context, id string) (*domain.Movie, error)
	GetMovieBySlug(ctx context.Context, slug string) (*domain.Movie, error)
	UpdateMovie(ctx context.Context, m *domain.Movie) error
	ListMovies(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Movie], error)
	ListMoviesByCreator(ctx context.Context, creatorID string) ([]*domain.Movie, error)
	ListMoviesByGenre(ctx context.Context, genreID string) ([]*domain.Movie, error)
	// ListRelatedMovies returns other movies sharing at least one genre with
	// movieID, most shared genres first.
	ListRelatedMovies(ctx context.Context, movieID string, limit int) ([]*domain.Movie, error)
}

// MovieGenreStore maintains the movie/genre junction.
type MovieGenreStore interface {
	DeleteMovieGenres(ctx context.Context, movieID string) error
	// InsertMovieGenres inserts all pairs in a single statement.
	InsertMovieGenres(ctx context.Context, movieID string, genreIDs []string) error
	ListMovieGenres(ctx context.Context, movieID string) ([]*domain.Genre, error)
	// ListGenresForMovies returns genres keyed by movie id, each list ordered by name.
	ListGenresForMovies(ctx context.Context, movieIDs []string) (map[string][]*domain.Genre, error)
}

// SeriesStore persists series and their episodes.
type SeriesStore interface {
	CreateSeries(ctx context.Context, s *domain.Series) error
	GetSeries(ctx context.Context, id string) (*domain.Series, error)
	GetSeriesBySlug(ctx context.Context, slug string) (*domain.Series, error)
	UpdateSeries(ctx context.Context, s *domain.Series) error
	ListSeries(ctx context.Context) ([]*domain.Series, error)

	CreateEpisode(ctx context.Context, e *domain.Episode) error
	GetEpisode(ctx context.Context, id string) (*domain.Episode, error)
	GetEpisodeBySlug(ctx context.Context, seriesID, slug string) (*domain.Episode, error)
	UpdateEpisode(ctx context.Context, e *domain.Episode) error
	// ListEpisodes returns a series' episodes ordered by episode number.
	ListEpisodes(ctx context.Context, seriesID string) ([]*domain.Episode, error)
}

// RatingStore persists viewer ratings.
type RatingStore interface {
	// UpsertRating inserts the rating or replaces the value of the existing
	// (movie_slug, user_id) row.
	UpsertRating(ctx context.Context, r *domain.Rating) error
	GetRating(ctx context.Context, movieSlug, userID string) (*domain.Rating, error)
	ListRatingValues(ctx context.Context, movieSlug string) ([]int, error)
}

// Store is the complete persistence interface.
type Store interface {
	CreatorStore
	GenreStore
	MovieStore
	MovieGenreStore
	SeriesStore
	RatingStore

	// WithTx runs fn with a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling WithTx on a transaction-bound Store runs fn in the same
	// transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// InTx reports whether this Store is bound to a transaction.
	InTx() bool

	Ping(ctx context.Context) error
	Close() error
}
