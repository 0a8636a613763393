package service

import (
	"context"
	"log/slog"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/store"
	"github.com/reelhouse/catalog-server/internal/validation"
)

// RatingService records viewer ratings.
type RatingService struct {
	store     store.Store
	catalog   *Catalog
	logger    *slog.Logger
	validator *validation.Validator
}

// NewRatingService creates a new rating service.
func NewRatingService(st store.Store, cat *Catalog, logger *slog.Logger) *RatingService {
	return &RatingService{
		store:     st,
		catalog:   cat,
		logger:    logger,
		validator: validation.New(),
	}
}

// SubmitRatingRequest is one viewer's rating of a movie.
type SubmitRatingRequest struct {
	UserID string `json:"user_id" validate:"notblank,max=100" doc:"Pseudonymous viewer id"`
	Rating int    `json:"rating" validate:"min=1,max=5" minimum:"1" maximum:"5"`
}

// Submit records the rating, replacing the viewer's earlier rating of the
// same movie, and returns the updated summary. The movie must exist.
func (s *RatingService) Submit(ctx context.Context, movieSlug string, req SubmitRatingRequest) (*domain.RatingSummary, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.store.GetMovieBySlug(ctx, movieSlug); err != nil {
		return nil, notFound(err, "movie %q", movieSlug)
	}

	avg, err := s.catalog.Aggregator.Submit(ctx, s.store, movieSlug, req.UserID, req.Rating)
	if err != nil {
		return nil, err
	}
	s.logger.Info("rating submitted", "movie_slug", movieSlug, "rating", req.Rating, "average", avg)

	summary, err := s.catalog.Aggregator.Summary(ctx, s.store, movieSlug, req.UserID)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Get returns the movie's rating summary, including userID's own rating
// when userID is set.
func (s *RatingService) Get(ctx context.Context, movieSlug, userID string) (*domain.RatingSummary, error) {
	summary, err := s.catalog.Aggregator.Summary(ctx, s.store, movieSlug, userID)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
