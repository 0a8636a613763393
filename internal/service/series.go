package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/normalize"
	"github.com/reelhouse/catalog-server/internal/store"
	"github.com/reelhouse/catalog-server/internal/validation"
)

// SeriesService manages series.
type SeriesService struct {
	store     store.Store
	catalog   *Catalog
	logger    *slog.Logger
	validator *validation.Validator
}

// NewSeriesService creates a new series service.
func NewSeriesService(st store.Store, cat *Catalog, logger *slog.Logger) *SeriesService {
	return &SeriesService{
		store:     st,
		catalog:   cat,
		logger:    logger,
		validator: validation.New(),
	}
}

// SeriesFields are the editable fields of a series.
type SeriesFields struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Slug        string `json:"slug,omitempty" validate:"slug" doc:"Overrides the slug derived from the title"`
	Description string `json:"description,omitempty" validate:"max=5000"`
	Thumbnail   string `json:"thumbnail,omitempty" validate:"max=2000"`
	Year        int    `json:"year,omitempty" validate:"omitempty,gte=1878,lte=2200"`
	CreatorSelection
}

// SeriesDetail is a series with its episodes in order.
type SeriesDetail struct {
	Series   *domain.Series    `json:"series"`
	Creator  *domain.Creator   `json:"creator,omitempty"`
	Episodes []*domain.Episode `json:"episodes"`
}

// Create creates a series, resolving its creator first.
func (s *SeriesService) Create(ctx context.Context, req SeriesFields) (*domain.Series, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	seriesSlug, err := deriveSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.checkWrite(req.CreatorSelection, nil); err != nil {
		return nil, err
	}

	sr := &domain.Series{Slug: seriesSlug}
	err = s.catalog.run(ctx, s.store, func(st store.Store) error {
		creatorID, err := s.catalog.resolveCreator(ctx, st, req.CreatorSelection)
		if err != nil {
			return err
		}
		s.apply(sr, req, creatorID)
		if err := st.CreateSeries(ctx, sr); err != nil {
			return writeError(err, "series %q", sr.Slug)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("series created", "id", sr.ID, "slug", sr.Slug)
	return sr, nil
}

// Update overwrites the series' fields. An empty slug keeps the current one.
func (s *SeriesService) Update(ctx context.Context, seriesID string, req SeriesFields) (*domain.Series, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if err := s.catalog.checkWrite(req.CreatorSelection, nil); err != nil {
		return nil, err
	}

	var sr *domain.Series
	err := s.catalog.run(ctx, s.store, func(st store.Store) error {
		var err error
		sr, err = st.GetSeries(ctx, seriesID)
		if err != nil {
			return notFound(err, "series %s", seriesID)
		}
		creatorID, err := s.catalog.resolveCreator(ctx, st, req.CreatorSelection)
		if err != nil {
			return err
		}
		s.apply(sr, req, creatorID)
		if req.Slug != "" {
			sr.Slug = req.Slug
		}
		if err := st.UpdateSeries(ctx, sr); err != nil {
			return writeError(err, "series %q", sr.Slug)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("series updated", "id", sr.ID, "slug", sr.Slug)
	return sr, nil
}

func (s *SeriesService) apply(sr *domain.Series, req SeriesFields, creatorID string) {
	sr.Title = normalize.Name(req.Title)
	sr.Description = strings.TrimSpace(req.Description)
	sr.Thumbnail = strings.TrimSpace(req.Thumbnail)
	sr.Year = req.Year
	sr.CreatorID = creatorID
}

// GetBySlug returns the series with its creator and episodes.
func (s *SeriesService) GetBySlug(ctx context.Context, seriesSlug string) (*SeriesDetail, error) {
	sr, err := s.store.GetSeriesBySlug(ctx, seriesSlug)
	if err != nil {
		return nil, notFound(err, "series %q", seriesSlug)
	}

	episodes, err := s.store.ListEpisodes(ctx, sr.ID)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}

	detail := &SeriesDetail{Series: sr, Episodes: episodes}
	if sr.CreatorID != "" {
		c, err := s.store.GetCreator(ctx, sr.CreatorID)
		if err != nil {
			return nil, notFound(err, "creator %s", sr.CreatorID)
		}
		detail.Creator = c
	}
	return detail, nil
}

// List returns all series, newest first.
func (s *SeriesService) List(ctx context.Context) ([]*domain.Series, error) {
	return s.store.ListSeries(ctx)
}
