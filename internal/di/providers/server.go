package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/reelhouse/catalog-server/internal/api"
	"github.com/reelhouse/catalog-server/internal/config"
	"github.com/reelhouse/catalog-server/internal/logger"
	"github.com/reelhouse/catalog-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideAPIServer provides the HTTP handler with every route registered.
func ProvideAPIServer(i do.Injector) (*api.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	ratingLimiter := do.MustInvoke[*RatingLimiterHandle](i)
	writeLimiter := do.MustInvoke[*WriteLimiterHandle](i)

	services := &api.Services{
		Movies:   do.MustInvoke[*service.MovieService](i),
		Creators: do.MustInvoke[*service.CreatorService](i),
		Genres:   do.MustInvoke[*service.GenreService](i),
		Series:   do.MustInvoke[*service.SeriesService](i),
		Episodes: do.MustInvoke[*service.EpisodeService](i),
		Browse:   do.MustInvoke[*service.BrowseService](i),
		Ratings:  do.MustInvoke[*service.RatingService](i),
	}

	opts := api.Options{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		RatingLimiter:  ratingLimiter.KeyedRateLimiter,
		WriteLimiter:   writeLimiter.KeyedRateLimiter,
	}

	return api.NewServer(storeHandle.Store, services, opts, log.Logger), nil
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	handler := do.MustInvoke[*api.Server](i)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
