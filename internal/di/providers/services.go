package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelhouse/catalog-server/internal/catalog"
	"github.com/reelhouse/catalog-server/internal/config"
	"github.com/reelhouse/catalog-server/internal/logger"
	"github.com/reelhouse/catalog-server/internal/service"
)

// ProvideCatalog provides the shared write path (resolver and junction
// synchronizer) in the configured write mode.
func ProvideCatalog(i do.Injector) (*service.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	mode := catalog.ModeFor(cfg.Catalog.AtomicWrites)
	if mode == catalog.ModeLegacy {
		log.Warn("Catalog writes are not atomic; a failed genre sync can leave a movie without genres")
	}

	return service.NewCatalog(mode, log.WithComponent("catalog").Logger), nil
}

// ProvideMovieService provides the movie service.
func ProvideMovieService(i do.Injector) (*service.MovieService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cat := do.MustInvoke[*service.Catalog](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMovieService(storeHandle.Store, cat, cfg.Catalog.PageSize, log.Logger), nil
}

// ProvideCreatorService provides the creator service.
func ProvideCreatorService(i do.Injector) (*service.CreatorService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cat := do.MustInvoke[*service.Catalog](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCreatorService(storeHandle.Store, cat, log.Logger), nil
}

// ProvideGenreService provides the genre service.
func ProvideGenreService(i do.Injector) (*service.GenreService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cat := do.MustInvoke[*service.Catalog](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGenreService(storeHandle.Store, cat, log.Logger), nil
}

// ProvideSeriesService provides the series service.
func ProvideSeriesService(i do.Injector) (*service.SeriesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cat := do.MustInvoke[*service.Catalog](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSeriesService(storeHandle.Store, cat, log.Logger), nil
}

// ProvideEpisodeService provides the episode service.
func ProvideEpisodeService(i do.Injector) (*service.EpisodeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEpisodeService(storeHandle.Store, log.Logger), nil
}

// ProvideBrowseService provides the home and slug index service.
func ProvideBrowseService(i do.Injector) (*service.BrowseService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBrowseService(storeHandle.Store, log.Logger), nil
}

// ProvideRatingService provides the rating service.
func ProvideRatingService(i do.Injector) (*service.RatingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cat := do.MustInvoke[*service.Catalog](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRatingService(storeHandle.Store, cat, log.Logger), nil
}
