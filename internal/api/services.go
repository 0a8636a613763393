package api

import "github.com/reelhouse/catalog-server/internal/service"

// Services groups the application services used by the API server.
type Services struct {
	Movies   *service.MovieService
	Creators *service.CreatorService
	Genres   *service.GenreService
	Series   *service.SeriesService
	Episodes *service.EpisodeService
	Browse   *service.BrowseService
	Ratings  *service.RatingService
}
