package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/service"
	"github.com/reelhouse/catalog-server/internal/store"
)

func (s *Server) registerMovieRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies",
		Summary:     "List movies",
		Description: "Returns movies newest first, one page at a time",
		Tags:        []string{"Movies"},
	}, s.handleListMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovie",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{slug}",
		Summary:     "Get movie",
		Description: "Returns a movie with its creator and genres",
		Tags:        []string{"Movies"},
	}, s.handleGetMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRelatedMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{slug}/related",
		Summary:     "Related movies",
		Description: "Returns movies sharing genres with this one, most shared genres first",
		Tags:        []string{"Movies"},
	}, s.handleRelatedMovies)
}

// ListMoviesInput contains pagination parameters.
type ListMoviesInput struct {
	Limit  int    `query:"limit" minimum:"0" maximum:"100" doc:"Items per page"`
	Cursor string `query:"cursor" doc:"Cursor returned by the previous page"`
}

// ListMoviesOutput wraps one page of movies.
type ListMoviesOutput struct {
	Body *store.PaginatedResult[domain.CatalogMovie]
}

func (s *Server) handleListMovies(ctx context.Context, input *ListMoviesInput) (*ListMoviesOutput, error) {
	page, err := s.services.Movies.List(ctx, store.PaginationParams{Limit: input.Limit, Cursor: input.Cursor})
	if err != nil {
		return nil, err
	}
	return &ListMoviesOutput{Body: page}, nil
}

// SlugInput addresses a resource by slug.
type SlugInput struct {
	Slug string `path:"slug" doc:"URL slug"`
}

// MovieOutput wraps a movie detail.
type MovieOutput struct {
	Body *service.MovieDetail
}

func (s *Server) handleGetMovie(ctx context.Context, input *SlugInput) (*MovieOutput, error) {
	detail, err := s.services.Movies.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &MovieOutput{Body: detail}, nil
}

// RelatedMoviesInput addresses a movie and limits the result.
type RelatedMoviesInput struct {
	Slug  string `path:"slug" doc:"Movie slug"`
	Limit int    `query:"limit" minimum:"0" maximum:"50" doc:"Maximum number of movies (default 6)"`
}

// MoviesOutput wraps a list of movies.
type MoviesOutput struct {
	Body struct {
		Movies []domain.CatalogMovie `json:"movies"`
	}
}

func (s *Server) handleRelatedMovies(ctx context.Context, input *RelatedMoviesInput) (*MoviesOutput, error) {
	movies, err := s.services.Movies.Related(ctx, input.Slug, input.Limit)
	if err != nil {
		return nil, err
	}
	out := &MoviesOutput{}
	out.Body.Movies = movies
	return out, nil
}
