package sqlstore

import (
	"context"
	"fmt"

	"github.com/reelhouse/catalog-server/internal/domain"
	"github.com/reelhouse/catalog-server/internal/id"
)

const (
	tableSeries   = "series"
	tableEpisodes = "episodes"
)

// CreateSeries inserts a series, assigning an id when sr has none.
func (s *Store) CreateSeries(ctx context.Context, sr *domain.Series) error {
	if sr.ID == "" {
		newID, err := id.Generate(id.PrefixSeries)
		if err != nil {
			return fmt.Errorf("create series: %w", err)
		}
		sr.ID = newID
	}
	if sr.CreatedAt.IsZero() {
		sr.InitTimestamps()
	}
	return s.insert(ctx, tableSeries, seriesColumns(sr))
}

// GetSeries retrieves a series by id.
func (s *Store) GetSeries(ctx context.Context, seriesID string) (*domain.Series, error) {
	var row seriesRow
	if err := s.selectOne(ctx, &row, tableSeries, where{"id", seriesID}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// GetSeriesBySlug retrieves a series by slug.
func (s *Store) GetSeriesBySlug(ctx context.Context, slug string) (*domain.Series, error) {
	var row seriesRow
	if err := s.selectOne(ctx, &row, tableSeries, where{"slug", slug}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// UpdateSeries overwrites every mutable column of the series.
func (s *Store) UpdateSeries(ctx context.Context, sr *domain.Series) error {
	sr.Touch()
	return s.update(ctx, tableSeries, mutable(seriesColumns(sr)), where{"id", sr.ID})
}

// ListSeries returns all series, newest first.
func (s *Store) ListSeries(ctx context.Context) ([]*domain.Series, error) {
	var rows []seriesRow
	if err := s.selectMany(ctx, &rows, tableSeries, "created_at DESC, id"); err != nil {
		return nil, err
	}
	out := make([]*domain.Series, len(rows))
	for i, r := range rows {
		out[i] = r.domain()
	}
	return out, nil
}

// CreateEpisode inserts an episode, assigning an id when e has none.
func (s *Store) CreateEpisode(ctx context.Context, e *domain.Episode) error {
	if e.ID == "" {
		newID, err := id.Generate(id.PrefixEpisode)
		if err != nil {
			return fmt.Errorf("create episode: %w", err)
		}
		e.ID = newID
	}
	if e.CreatedAt.IsZero() {
		e.InitTimestamps()
	}
	return s.insert(ctx, tableEpisodes, episodeColumns(e))
}

// GetEpisode retrieves an episode by id.
func (s *Store) GetEpisode(ctx context.Context, episodeID string) (*domain.Episode, error) {
	var row episodeRow
	if err := s.selectOne(ctx, &row, tableEpisodes, where{"id", episodeID}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// GetEpisodeBySlug retrieves an episode by its slug within one series.
func (s *Store) GetEpisodeBySlug(ctx context.Context, seriesID, slug string) (*domain.Episode, error) {
	var row episodeRow
	if err := s.selectOne(ctx, &row, tableEpisodes, where{"series_id", seriesID}, where{"slug", slug}); err != nil {
		return nil, err
	}
	return row.domain(), nil
}

// UpdateEpisode overwrites every mutable column of the episode.
func (s *Store) UpdateEpisode(ctx context.Context, e *domain.Episode) error {
	e.Touch()
	return s.update(ctx, tableEpisodes, mutable(episodeColumns(e)), where{"id", e.ID})
}

// ListEpisodes returns the series' episodes in episode order.
func (s *Store) ListEpisodes(ctx context.Context, seriesID string) ([]*domain.Episode, error) {
	var rows []episodeRow
	if err := s.selectMany(ctx, &rows, tableEpisodes, "episode_number, id", where{"series_id", seriesID}); err != nil {
		return nil, err
	}
	out := make([]*domain.Episode, len(rows))
	for i, r := range rows {
		out[i] = r.domain()
	}
	return out, nil
}
