// Package di provides dependency injection configuration for the catalog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/reelhouse/catalog-server/internal/config"
	"github.com/reelhouse/catalog-server/internal/di/providers"
	"github.com/reelhouse/catalog-server/internal/logger"
	"github.com/reelhouse/catalog-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideMovieService)
	do.Provide(injector, providers.ProvideCreatorService)
	do.Provide(injector, providers.ProvideGenreService)
	do.Provide(injector, providers.ProvideSeriesService)
	do.Provide(injector, providers.ProvideEpisodeService)
	do.Provide(injector, providers.ProvideBrowseService)
	do.Provide(injector, providers.ProvideRatingService)

	// Request guards
	do.Provide(injector, providers.ProvideRatingLimiter)
	do.Provide(injector, providers.ProvideWriteLimiter)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the HTTP server is
// listening in the background.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*service.Catalog](injector)
	_ = do.MustInvoke[*service.MovieService](injector)
	_ = do.MustInvoke[*service.CreatorService](injector)
	_ = do.MustInvoke[*service.GenreService](injector)
	_ = do.MustInvoke[*service.SeriesService](injector)
	_ = do.MustInvoke[*service.EpisodeService](injector)
	_ = do.MustInvoke[*service.BrowseService](injector)
	_ = do.MustInvoke[*service.RatingService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
