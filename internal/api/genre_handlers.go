package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/service"
)

func (s *Server) registerGenreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Tags:        []string{"Genres"},
	}, s.handleListGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGenre",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres/{slug}",
		Summary:     "Get genre",
		Description: "Returns a genre with its movies",
		Tags:        []string{"Genres"},
	}, s.handleGetGenre)
}

// GenresOutput wraps a list of genres.
type GenresOutput struct {
	Body struct {
		Genres []*domain.Genre `json:"genres"`
	}
}

func (s *Server) handleListGenres(ctx context.Context, _ *struct{}) (*GenresOutput, error) {
	genres, err := s.services.Genres.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &GenresOutput{}
	out.Body.Genres = genres
	return out, nil
}

// GenreDetailOutput wraps a genre with its movies.
type GenreDetailOutput struct {
	Body *service.GenreDetail
}

func (s *Server) handleGetGenre(ctx context.Context, input *SlugInput) (*GenreDetailOutput, error) {
	detail, err := s.services.Genres.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &GenreDetailOutput{Body: detail}, nil
}
