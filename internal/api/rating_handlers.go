package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/catalog-server/internal/domain"
	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/service"
)

func (s *Server) registerRatingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMovieRatings",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{slug}/ratings",
		Summary:     "Get ratings",
		Description: "Returns the average rating and, when user_id is given, that viewer's rating. The average is null when nobody has rated the movie.",
		Tags:        []string{"Ratings"},
	}, s.handleGetRatings)

	huma.Register(s.api, huma.Operation{
		OperationID: "rateMovie",
		Method:      http.MethodPost,
		Path:        "/api/v1/movies/{slug}/ratings",
		Summary:     "Rate movie",
		Description: "Records a viewer's 1-5 rating, replacing their earlier rating of the same movie",
		Tags:        []string{"Ratings"},
	}, s.handleRateMovie)
}

// GetRatingsInput addresses a movie and optionally a viewer.
type GetRatingsInput struct {
	Slug   string `path:"slug" doc:"Movie slug"`
	UserID string `query:"user_id" doc:"Viewer id whose own rating to include"`
}

// RatingsOutput wraps a rating summary.
type RatingsOutput struct {
	Body *domain.RatingSummary
}

func (s *Server) handleGetRatings(ctx context.Context, input *GetRatingsInput) (*RatingsOutput, error) {
	summary, err := s.services.Ratings.Get(ctx, input.Slug, input.UserID)
	if err != nil {
		return nil, err
	}
	return &RatingsOutput{Body: summary}, nil
}

// RateMovieInput is a rating submission.
type RateMovieInput struct {
	Slug string `path:"slug" doc:"Movie slug"`
	Body service.SubmitRatingRequest
}

func (s *Server) handleRateMovie(ctx context.Context, input *RateMovieInput) (*RatingsOutput, error) {
	if input.Body.UserID != "" && !s.opts.RatingLimiter.Allow(input.Body.UserID) {
		s.logger.Warn("rating rate limit exceeded", "user_id", input.Body.UserID, "movie_slug", input.Slug)
		return nil, domainerrors.RateLimited("too many ratings, please try again later")
	}

	summary, err := s.services.Ratings.Submit(ctx, input.Slug, input.Body)
	if err != nil {
		return nil, err
	}
	return &RatingsOutput{Body: summary}, nil
}
