package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reelhouse/catalog-server/internal/catalog"
	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/store"
	"github.com/reelhouse/catalog-server/internal/validation"
)

// GenreService manages genres.
type GenreService struct {
	store     store.Store
	catalog   *Catalog
	logger    *slog.Logger
	validator *validation.Validator
}

// NewGenreService creates a new genre service.
func NewGenreService(st store.Store, cat *Catalog, logger *slog.Logger) *GenreService {
	return &GenreService{
		store:     st,
		catalog:   cat,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateGenreRequest contains fields for creating a genre.
type CreateGenreRequest struct {
	Name string `json:"name" validate:"notblank,max=100"`
	Slug string `json:"slug,omitempty" validate:"slug"`
}

// GenreDetail is a genre with its movies.
type GenreDetail struct {
	Genre  *domain.Genre         `json:"genre"`
	Movies []domain.CatalogMovie `json:"movies"`
}

// Create finds or creates the genre.
func (s *GenreService) Create(ctx context.Context, req CreateGenreRequest) (*domain.Genre, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	genreID, err := s.catalog.Resolver.Resolve(ctx, s.store, domain.KindGenre, catalog.ResolveRequest{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		return nil, err
	}

	g, err := s.store.GetGenre(ctx, genreID)
	if err != nil {
		return nil, notFound(err, "genre %s", genreID)
	}
	s.logger.Info("genre resolved", "id", g.ID, "slug", g.Slug)
	return g, nil
}

// List returns all genres ordered by name.
func (s *GenreService) List(ctx context.Context) ([]*domain.Genre, error) {
	return s.store.ListGenres(ctx)
}

// GetBySlug returns the genre and its movies.
func (s *GenreService) GetBySlug(ctx context.Context, genreSlug string) (*GenreDetail, error) {
	g, err := s.store.GetGenreBySlug(ctx, genreSlug)
	if err != nil {
		return nil, notFound(err, "genre %q", genreSlug)
	}

	movies, err := s.store.ListMoviesByGenre(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("list movies of genre %s: %w", g.ID, err)
	}
	display, err := catalogMovies(ctx, s.store, movies)
	if err != nil {
		return nil, err
	}
	return &GenreDetail{Genre: g, Movies: display}, nil
}
