package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reelhouse/catalog-server/internal/domain"
	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/store"
)

// Aggregator records viewer ratings and computes per-movie averages.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Aggregator{logger: logger}
}

// Submit stores the viewer's rating of the movie, replacing any earlier one,
// and returns the movie's new average.
func (a *Aggregator) Submit(ctx context.Context, st store.Store, movieSlug, userID string, rating int) (float64, error) {
	movieSlug = strings.TrimSpace(movieSlug)
	userID = strings.TrimSpace(userID)
	switch {
	case movieSlug == "":
		return 0, domainerrors.Validation("movie slug is required")
	case userID == "":
		return 0, domainerrors.Validation("user id is required")
	case rating < domain.MinRating || rating > domain.MaxRating:
		return 0, domainerrors.Validationf("rating must be between %d and %d, got %d",
			domain.MinRating, domain.MaxRating, rating)
	}

	r := &domain.Rating{MovieSlug: movieSlug, UserID: userID, Value: rating}
	if err := st.UpsertRating(ctx, r); err != nil {
		return 0, fmt.Errorf("store rating: %w", err)
	}

	values, err := st.ListRatingValues(ctx, movieSlug)
	if err != nil {
		return 0, fmt.Errorf("load ratings: %w", err)
	}

	avg, ok := Mean(values)
	if !ok {
		// The upsert above guarantees at least one row.
		return 0, domainerrors.Internal("rating not visible after write")
	}

	a.logger.Debug("rating recorded", "movie_slug", movieSlug, "rating", rating, "average", avg, "count", len(values))
	return avg, nil
}

// Summary returns the movie's average rating and, when userID is set, that
// viewer's own rating. The movie does not have to exist: an unknown slug
// simply has no ratings.
func (a *Aggregator) Summary(ctx context.Context, st store.Store, movieSlug, userID string) (domain.RatingSummary, error) {
	values, err := st.ListRatingValues(ctx, movieSlug)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("load ratings: %w", err)
	}

	summary := domain.RatingSummary{Count: len(values)}
	if avg, ok := Mean(values); ok {
		summary.Average = &avg
	}

	if userID = strings.TrimSpace(userID); userID != "" {
		r, err := st.GetRating(ctx, movieSlug, userID)
		switch {
		case err == nil:
			v := r.Value
			summary.UserRating = &v
		case !errors.Is(err, store.ErrNotFound):
			return domain.RatingSummary{}, fmt.Errorf("load viewer rating: %w", err)
		}
	}

	return summary, nil
}

// Mean returns the arithmetic mean of values. ok is false when values is
// empty, which callers must keep distinct from an average of zero.
func Mean(values []int) (avg float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values)), true
}
