package domain

import "time"

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one viewer's score for one movie. The pair (MovieSlug, UserID)
// identifies it; a later rating from the same viewer replaces the earlier one.
// UserID is a pseudonymous viewer id, not an account.
type Rating struct {
	MovieSlug string    `json:"movie_slug"`
	UserID    string    `json:"user_id"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummary is what a movie page shows: the mean of all ratings and the
// current viewer's own rating. Average is nil when nobody has rated the movie,
// which is different from an average of zero.
type RatingSummary struct {
	Average    *float64 `json:"average"`
	Count      int      `json:"count"`
	UserRating *int     `json:"user_rating"`
}
