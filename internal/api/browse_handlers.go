package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/catalog-server/internal/service"
)

func (s *Server) registerBrowseRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getHome",
		Method:      http.MethodGet,
		Path:        "/api/v1/home",
		Summary:     "Home page",
		Description: "Returns one shelf per genre that has movies, ordered by genre name",
		Tags:        []string{"Browse"},
	}, s.handleHome)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSlugs",
		Method:      http.MethodGet,
		Path:        "/api/v1/slugs",
		Summary:     "List slugs",
		Description: "Returns every public slug, for sitemaps and static page generation",
		Tags:        []string{"Browse"},
	}, s.handleSlugs)
}

// HomeOutput wraps the home page shelves.
type HomeOutput struct {
	Body struct {
		Shelves []service.GenreShelf `json:"shelves" doc:"Genre shelves"`
	}
}

func (s *Server) handleHome(ctx context.Context, _ *struct{}) (*HomeOutput, error) {
	shelves, err := s.services.Browse.Home(ctx)
	if err != nil {
		return nil, err
	}
	out := &HomeOutput{}
	out.Body.Shelves = shelves
	return out, nil
}

// SlugsOutput wraps the slug index.
type SlugsOutput struct {
	Body *service.SlugIndex
}

func (s *Server) handleSlugs(ctx context.Context, _ *struct{}) (*SlugsOutput, error) {
	idx, err := s.services.Browse.Slugs(ctx)
	if err != nil {
		return nil, err
	}
	return &SlugsOutput{Body: idx}, nil
}
