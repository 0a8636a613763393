package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/service"
)

func (s *Server) registerCreatorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCreators",
		Method:      http.MethodGet,
		Path:        "/api/v1/creators",
		Summary:     "List creators",
		Tags:        []string{"Creators"},
	}, s.handleListCreators)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCreator",
		Method:      http.MethodGet,
		Path:        "/api/v1/creators/{slug}",
		Summary:     "Get creator",
		Description: "Returns a creator with the movies credited to them",
		Tags:        []string{"Creators"},
	}, s.handleGetCreator)
}

// CreatorsOutput wraps a list of creators.
type CreatorsOutput struct {
	Body struct {
		Creators []*domain.Creator `json:"creators"`
	}
}

func (s *Server) handleListCreators(ctx context.Context, _ *struct{}) (*CreatorsOutput, error) {
	creators, err := s.services.Creators.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &CreatorsOutput{}
	out.Body.Creators = creators
	return out, nil
}

// CreatorDetailOutput wraps a creator with their movies.
type CreatorDetailOutput struct {
	Body *service.CreatorDetail
}

func (s *Server) handleGetCreator(ctx context.Context, input *SlugInput) (*CreatorDetailOutput, error) {
	detail, err := s.services.Creators.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &CreatorDetailOutput{Body: detail}, nil
}
