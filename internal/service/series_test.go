package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/catalog-server/internal/catalog"
	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
)

func TestSeriesAndEpisodes(t *testing.T) {
	svc := setupTestServices(t, catalog.ModeAtomic)
	ctx := context.Background()

	sr, err := svc.series.Create(ctx, SeriesFields{
		Title:            "Night Shift",
		CreatorSelection: CreatorSelection{CreatorName: "Jane Doe"},
	})
	require.NoError(t, err)
	assert.Equal(t, "night-shift", sr.Slug)
	assert.NotEmpty(t, sr.CreatorID)

	second, err := svc.episodes.Create(ctx, sr.ID, EpisodeFields{Title: "The Long Night", VideoURL: "https://x/2", EpisodeNumber: 2})
	require.NoError(t, err)
	_, err = svc.episodes.Create(ctx, sr.ID, EpisodeFields{Title: "Pilot", VideoURL: "https://x/1", EpisodeNumber: 1})
	require.NoError(t, err)

	_, err = svc.episodes.Create(ctx, sr.ID, EpisodeFields{Title: "Pilot", VideoURL: "https://x/3", EpisodeNumber: 3})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = svc.episodes.Create(ctx, sr.ID, EpisodeFields{Title: "Zero", VideoURL: "https://x/0", EpisodeNumber: 0})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.episodes.Create(ctx, "ser-missing", EpisodeFields{Title: "Lost", VideoURL: "https://x", EpisodeNumber: 1})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	detail, err := svc.series.GetBySlug(ctx, "night-shift")
	require.NoError(t, err)
	require.Len(t, detail.Episodes, 2)
	assert.Equal(t, "pilot", detail.Episodes[0].Slug)
	assert.Equal(t, "the-long-night", detail.Episodes[1].Slug)
	require.NotNil(t, detail.Creator)
	assert.Equal(t, "jane-doe", detail.Creator.Slug)

	ep, err := svc.episodes.Get(ctx, "night-shift", "the-long-night")
	require.NoError(t, err)
	assert.Equal(t, second.ID, ep.Episode.ID)
	assert.Equal(t, sr.ID, ep.Series.ID)

	_, err = svc.episodes.Get(ctx, "night-shift", "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	updated, err := svc.episodes.Update(ctx, second.ID, EpisodeFields{
		Title: "The Longest Night", VideoURL: "https://x/2b", EpisodeNumber: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "the-long-night", updated.Slug)
	assert.Equal(t, "The Longest Night", updated.Title)

	episodes, err := svc.episodes.List(ctx, "night-shift")
	require.NoError(t, err)
	assert.Len(t, episodes, 2)
}

func TestSeriesService_Update(t *testing.T) {
	svc := setupTestServices(t, catalog.ModeAtomic)
	ctx := context.Background()

	sr, err := svc.series.Create(ctx, SeriesFields{Title: "Night Shift"})
	require.NoError(t, err)

	updated, err := svc.series.Update(ctx, sr.ID, SeriesFields{Title: "Night Shift", Description: "After midnight.", Year: 2023})
	require.NoError(t, err)
	assert.Equal(t, "After midnight.", updated.Description)
	assert.Equal(t, "night-shift", updated.Slug)

	_, err = svc.series.Create(ctx, SeriesFields{Title: "Night  Shift"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = svc.series.Update(ctx, "ser-missing", SeriesFields{Title: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	all, err := svc.series.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
