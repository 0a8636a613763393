package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelhouse/catalog-server/internal/config"
	"github.com/reelhouse/catalog-server/internal/ratelimit"
)

// RatingLimiterHandle limits rating submissions per viewer.
type RatingLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RatingLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRatingLimiter provides the per-viewer rating limiter.
func ProvideRatingLimiter(i do.Injector) (*RatingLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	limiter := ratelimit.New(float64(cfg.Ratings.RequestsPerMinute), cfg.Ratings.Burst)
	return &RatingLimiterHandle{KeyedRateLimiter: limiter}, nil
}

// WriteLimiterHandle limits admin writes per client IP. The embedded
// limiter is nil when the guard is disabled.
type WriteLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *WriteLimiterHandle) Shutdown() error {
	if h.KeyedRateLimiter != nil {
		h.Stop()
	}
	return nil
}

// ProvideWriteLimiter provides the per-IP write limiter.
func ProvideWriteLimiter(i do.Injector) (*WriteLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	if cfg.Server.WritesPerMinute <= 0 {
		return &WriteLimiterHandle{}, nil
	}
	limiter := ratelimit.New(float64(cfg.Server.WritesPerMinute), max(cfg.Server.WriteBurst, 1))
	return &WriteLimiterHandle{KeyedRateLimiter: limiter}, nil
}
