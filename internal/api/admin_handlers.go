package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "adminSubmitMovie",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/movies",
		Summary:       "Submit movie",
		Description:   "Creates a movie, finding or creating its creator and genres by name",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAdminSubmitMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateMovie",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/movies/{id}",
		Summary:     "Update movie",
		Description: "Replaces a movie's fields and genres. Without a slug override the slug is derived from the title again.",
		Tags:        []string{"Admin"},
	}, s.handleAdminUpdateMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminCreateCreator",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/creators",
		Summary:     "Create creator",
		Description: "Returns the creator with the same slug if one exists, otherwise creates it",
		Tags:        []string{"Admin"},
	}, s.handleAdminCreateCreator)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateCreator",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/creators/{slug}",
		Summary:     "Update creator",
		Description: "Changes the given profile fields. The slug never changes.",
		Tags:        []string{"Admin"},
	}, s.handleAdminUpdateCreator)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminCreateGenre",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/genres",
		Summary:     "Create genre",
		Description: "Returns the genre with the same slug if one exists, otherwise creates it",
		Tags:        []string{"Admin"},
	}, s.handleAdminCreateGenre)

	huma.Register(s.api, huma.Operation{
		OperationID:   "adminCreateSeries",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/series",
		Summary:       "Create series",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAdminCreateSeries)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateSeries",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/series/{id}",
		Summary:     "Update series",
		Tags:        []string{"Admin"},
	}, s.handleAdminUpdateSeries)

	huma.Register(s.api, huma.Operation{
		OperationID:   "adminCreateEpisode",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/series/{id}/episodes",
		Summary:       "Create episode",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAdminCreateEpisode)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateEpisode",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/episodes/{id}",
		Summary:     "Update episode",
		Tags:        []string{"Admin"},
	}, s.handleAdminUpdateEpisode)
}

// === Movies ===

// SubmitMovieInput is the admin movie form.
type SubmitMovieInput struct {
	Body service.SubmitMovieRequest
}

// UpdateMovieInput is the admin movie edit form.
type UpdateMovieInput struct {
	ID   string `path:"id" doc:"Movie ID"`
	Body service.UpdateMovieRequest
}

func (s *Server) handleAdminSubmitMovie(ctx context.Context, input *SubmitMovieInput) (*MovieOutput, error) {
	detail, err := s.services.Movies.Submit(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &MovieOutput{Body: detail}, nil
}

func (s *Server) handleAdminUpdateMovie(ctx context.Context, input *UpdateMovieInput) (*MovieOutput, error) {
	detail, err := s.services.Movies.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &MovieOutput{Body: detail}, nil
}

// === Creators ===

// CreateCreatorInput is the admin creator form.
type CreateCreatorInput struct {
	Body service.CreateCreatorRequest
}

// UpdateCreatorInput is a partial creator update.
type UpdateCreatorInput struct {
	Slug string `path:"slug" doc:"Creator slug"`
	Body service.UpdateCreatorRequest
}

// CreatorOutput wraps a creator.
type CreatorOutput struct {
	Body *domain.Creator
}

func (s *Server) handleAdminCreateCreator(ctx context.Context, input *CreateCreatorInput) (*CreatorOutput, error) {
	c, err := s.services.Creators.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &CreatorOutput{Body: c}, nil
}

func (s *Server) handleAdminUpdateCreator(ctx context.Context, input *UpdateCreatorInput) (*CreatorOutput, error) {
	c, err := s.services.Creators.UpdateBySlug(ctx, input.Slug, input.Body)
	if err != nil {
		return nil, err
	}
	return &CreatorOutput{Body: c}, nil
}

// === Genres ===

// CreateGenreInput is the admin genre form.
type CreateGenreInput struct {
	Body service.CreateGenreRequest
}

// GenreOutput wraps a genre.
type GenreOutput struct {
	Body *domain.Genre
}

func (s *Server) handleAdminCreateGenre(ctx context.Context, input *CreateGenreInput) (*GenreOutput, error) {
	g, err := s.services.Genres.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &GenreOutput{Body: g}, nil
}

// === Series and episodes ===

// CreateSeriesInput is the admin series form.
type CreateSeriesInput struct {
	Body service.SeriesFields
}

// UpdateSeriesInput is the admin series edit form.
type UpdateSeriesInput struct {
	ID   string `path:"id" doc:"Series ID"`
	Body service.SeriesFields
}

// SeriesOutput wraps a series.
type SeriesOutput struct {
	Body *domain.Series
}

func (s *Server) handleAdminCreateSeries(ctx context.Context, input *CreateSeriesInput) (*SeriesOutput, error) {
	sr, err := s.services.Series.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &SeriesOutput{Body: sr}, nil
}

func (s *Server) handleAdminUpdateSeries(ctx context.Context, input *UpdateSeriesInput) (*SeriesOutput, error) {
	sr, err := s.services.Series.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &SeriesOutput{Body: sr}, nil
}

// CreateEpisodeInput adds an episode to a series.
type CreateEpisodeInput struct {
	ID   string `path:"id" doc:"Series ID"`
	Body service.EpisodeFields
}

// UpdateEpisodeInput is the admin episode edit form.
type UpdateEpisodeInput struct {
	ID   string `path:"id" doc:"Episode ID"`
	Body service.EpisodeFields
}

// EpisodeOutput wraps an episode.
type EpisodeOutput struct {
	Body *domain.Episode
}

func (s *Server) handleAdminCreateEpisode(ctx context.Context, input *CreateEpisodeInput) (*EpisodeOutput, error) {
	e, err := s.services.Episodes.Create(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &EpisodeOutput{Body: e}, nil
}

func (s *Server) handleAdminUpdateEpisode(ctx context.Context, input *UpdateEpisodeInput) (*EpisodeOutput, error) {
	e, err := s.services.Episodes.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &EpisodeOutput{Body: e}, nil
}
