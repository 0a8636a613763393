package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
)

func TestAggregator_AverageReplacesPriorRating(t *testing.T) {
	st := newTestStore(t)
	agg := NewAggregator(nil)
	ctx := context.Background()

	summary, err := agg.Summary(ctx, st, "m", "")
	require.NoError(t, err)
	assert.Nil(t, summary.Average)
	assert.Zero(t, summary.Count)

	_, err = agg.Submit(ctx, st, "m", "u1", 4)
	require.NoError(t, err)
	avg, err := agg.Submit(ctx, st, "m", "u2", 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)

	avg, err = agg.Submit(ctx, st, "m", "u1", 5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, avg)

	summary, err = agg.Summary(ctx, st, "m", "u1")
	require.NoError(t, err)
	require.NotNil(t, summary.Average)
	assert.Equal(t, 3.5, *summary.Average)
	assert.Equal(t, 2, summary.Count)
	require.NotNil(t, summary.UserRating)
	assert.Equal(t, 5, *summary.UserRating)

	summary, err = agg.Summary(ctx, st, "m", "u3")
	require.NoError(t, err)
	assert.Nil(t, summary.UserRating)
}

func TestAggregator_SubmitValidation(t *testing.T) {
	agg := NewAggregator(nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		slug   string
		user   string
		rating int
	}{
		{"too low", "m", "u1", 0},
		{"too high", "m", "u1", 6},
		{"no user", "m", " ", 3},
		{"no movie", "", "u1", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Rejected before the (nil) store is used.
			_, err := agg.Submit(ctx, nil, tt.slug, tt.user, tt.rating)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestMean(t *testing.T) {
	_, ok := Mean(nil)
	assert.False(t, ok)

	avg, ok := Mean([]int{1, 2})
	assert.True(t, ok)
	assert.Equal(t, 1.5, avg)
}
