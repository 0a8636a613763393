package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/normalize"
	"github.com/reelhouse/catalog-server/internal/store"
	"github.com/reelhouse/catalog-server/internal/validation"
)

// EpisodeService manages the episodes of a series.
type EpisodeService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewEpisodeService creates a new episode service.
func NewEpisodeService(st store.Store, logger *slog.Logger) *EpisodeService {
	return &EpisodeService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
	}
}

// EpisodeFields are the editable fields of an episode.
type EpisodeFields struct {
	Title         string `json:"title" validate:"notblank,max=200"`
	Slug          string `json:"slug,omitempty" validate:"slug" doc:"Unique within the series; derived from the title when empty"`
	Description   string `json:"description,omitempty" validate:"max=5000"`
	VideoURL      string `json:"video_url" validate:"notblank,max=2000"`
	Thumbnail     string `json:"thumbnail,omitempty" validate:"max=2000"`
	Year          int    `json:"year,omitempty" validate:"omitempty,gte=1878,lte=2200"`
	EpisodeNumber int    `json:"episode_number" validate:"gt=0"`
}

// EpisodeDetail is an episode together with its series.
type EpisodeDetail struct {
	Series  *domain.Series  `json:"series"`
	Episode *domain.Episode `json:"episode"`
}

// Create adds an episode to the series.
func (s *EpisodeService) Create(ctx context.Context, seriesID string, req EpisodeFields) (*domain.Episode, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	episodeSlug, err := deriveSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetSeries(ctx, seriesID); err != nil {
		return nil, notFound(err, "series %s", seriesID)
	}

	e := &domain.Episode{SeriesID: seriesID, Slug: episodeSlug}
	applyEpisode(e, req)
	if err := s.store.CreateEpisode(ctx, e); err != nil {
		return nil, writeError(err, "episode %q", e.Slug)
	}

	s.logger.Info("episode created", "id", e.ID, "series_id", seriesID, "slug", e.Slug, "number", e.EpisodeNumber)
	return e, nil
}

// Update overwrites the episode's fields. An empty slug keeps the current one.
func (s *EpisodeService) Update(ctx context.Context, episodeID string, req EpisodeFields) (*domain.Episode, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	e, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, notFound(err, "episode %s", episodeID)
	}
	applyEpisode(e, req)
	if req.Slug != "" {
		e.Slug = req.Slug
	}
	if err := s.store.UpdateEpisode(ctx, e); err != nil {
		return nil, writeError(err, "episode %q", e.Slug)
	}

	s.logger.Info("episode updated", "id", e.ID, "slug", e.Slug)
	return e, nil
}

func applyEpisode(e *domain.Episode, req EpisodeFields) {
	e.Title = normalize.Name(req.Title)
	e.Description = strings.TrimSpace(req.Description)
	e.VideoURL = strings.TrimSpace(req.VideoURL)
	e.Thumbnail = strings.TrimSpace(req.Thumbnail)
	e.Year = req.Year
	e.EpisodeNumber = req.EpisodeNumber
}

// Get returns an episode addressed by its series slug and its own slug.
func (s *EpisodeService) Get(ctx context.Context, seriesSlug, episodeSlug string) (*EpisodeDetail, error) {
	sr, err := s.store.GetSeriesBySlug(ctx, seriesSlug)
	if err != nil {
		return nil, notFound(err, "series %q", seriesSlug)
	}
	e, err := s.store.GetEpisodeBySlug(ctx, sr.ID, episodeSlug)
	if err != nil {
		return nil, notFound(err, "episode %q of series %q", episodeSlug, seriesSlug)
	}
	return &EpisodeDetail{Series: sr, Episode: e}, nil
}

// List returns the series' episodes in episode order.
func (s *EpisodeService) List(ctx context.Context, seriesSlug string) ([]*domain.Episode, error) {
	sr, err := s.store.GetSeriesBySlug(ctx, seriesSlug)
	if err != nil {
		return nil, notFound(err, "series %q", seriesSlug)
	}
	return s.store.ListEpisodes(ctx, sr.ID)
}
