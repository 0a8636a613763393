package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/service"
)

func (s *Server) registerSeriesRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSeries",
		Method:      http.MethodGet,
		Path:        "/api/v1/series",
		Summary:     "List series",
		Tags:        []string{"Series"},
	}, s.handleListSeries)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSeries",
		Method:      http.MethodGet,
		Path:        "/api/v1/series/{slug}",
		Summary:     "Get series",
		Description: "Returns a series with its creator and episodes in order",
		Tags:        []string{"Series"},
	}, s.handleGetSeries)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEpisode",
		Method:      http.MethodGet,
		Path:        "/api/v1/series/{slug}/episodes/{episodeSlug}",
		Summary:     "Get episode",
		Description: "Returns an episode addressed by its series slug and its own slug",
		Tags:        []string{"Series"},
	}, s.handleGetEpisode)
}

// SeriesListOutput wraps a list of series.
type SeriesListOutput struct {
	Body struct {
		Series []*domain.Series `json:"series"`
	}
}

func (s *Server) handleListSeries(ctx context.Context, _ *struct{}) (*SeriesListOutput, error) {
	series, err := s.services.Series.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &SeriesListOutput{}
	out.Body.Series = series
	return out, nil
}

// SeriesDetailOutput wraps a series with its episodes.
type SeriesDetailOutput struct {
	Body *service.SeriesDetail
}

func (s *Server) handleGetSeries(ctx context.Context, input *SlugInput) (*SeriesDetailOutput, error) {
	detail, err := s.services.Series.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &SeriesDetailOutput{Body: detail}, nil
}

// GetEpisodeInput addresses an episode.
type GetEpisodeInput struct {
	Slug        string `path:"slug" doc:"Series slug"`
	EpisodeSlug string `path:"episodeSlug" doc:"Episode slug, unique within the series"`
}

// EpisodeDetailOutput wraps an episode with its series.
type EpisodeDetailOutput struct {
	Body *service.EpisodeDetail
}

func (s *Server) handleGetEpisode(ctx context.Context, input *GetEpisodeInput) (*EpisodeDetailOutput, error) {
	detail, err := s.services.Episodes.Get(ctx, input.Slug, input.EpisodeSlug)
	if err != nil {
		return nil, err
	}
	return &EpisodeDetailOutput{Body: detail}, nil
}
