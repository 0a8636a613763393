package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParams_Normalize(t *testing.T) {
	tests := []struct {
		name          string
		input         PaginationParams
		defaultLimit  int
		expectedLimit int
	}{
		{"explicit limit kept", PaginationParams{Limit: 10}, 24, 10},
		{"zero uses default", PaginationParams{}, 24, 24},
		{"negative uses default", PaginationParams{Limit: -3}, 12, 12},
		{"bad default falls back", PaginationParams{}, 0, DefaultPageSize},
		{"capped at max", PaginationParams{Limit: 5000}, 24, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.input
			params.Normalize(tt.defaultLimit)
			assert.Equal(t, tt.expectedLimit, params.Limit)
		})
	}
}

func TestCursor_RoundTrip(t *testing.T) {
	assert.Empty(t, EncodeCursor(0))

	cursor := EncodeCursor(48)
	require.NotEmpty(t, cursor)

	offset, err := PaginationParams{Cursor: cursor}.Offset()
	require.NoError(t, err)
	assert.Equal(t, 48, offset)

	offset, err = PaginationParams{}.Offset()
	require.NoError(t, err)
	assert.Zero(t, offset)
}

func TestCursor_Invalid(t *testing.T) {
	for _, cursor := range []string{"!!!", "bm90LWEtbnVtYmVy", "LTU"} { // garbage, "not-a-number", "-5"
		_, err := PaginationParams{Cursor: cursor}.Offset()
		assert.Error(t, err, "cursor %q", cursor)
	}
}
