package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/reelhouse/catalog-server/internal/domain"
)

const tableRatings = "ratings"

// UpsertRating stores the viewer's rating, replacing the value of an earlier
// rating of the same movie. created_at keeps its first value.
func (s *Store) UpsertRating(ctx context.Context, r *domain.Rating) error {
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	return s.upsert(ctx, tableRatings, []column{
		{"movie_slug", r.MovieSlug},
		{"user_id", r.UserID},
		{"rating", r.Value},
		{"created_at", newTimestamp(r.CreatedAt)},
		{"updated_at", newTimestamp(r.UpdatedAt)},
	}, "movie_slug", "user_id")
}

// GetRating returns one viewer's rating of a movie.
func (s *Store) GetRating(ctx context.Context, movieSlug, userID string) (*domain.Rating, error) {
	var row ratingRow
	if err := s.selectOne(ctx, &row, tableRatings, where{"movie_slug", movieSlug}, where{"user_id", userID}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// ListRatingValues returns every rating value recorded for a movie.
func (s *Store) ListRatingValues(ctx context.Context, movieSlug string) ([]int, error) {
	var values []int
	query := s.rebind("SELECT rating FROM ratings WHERE movie_slug = ?")
	if err := sqlx.SelectContext(ctx, s.q, &values, query, movieSlug); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return values, nil
}
