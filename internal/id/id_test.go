package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{PrefixMovie, PrefixCreator, PrefixGenre, PrefixSeries, PrefixEpisode} {
		t.Run(prefix, func(t *testing.T) {
			id, err := Generate(prefix)
			require.NoError(t, err)

			require.True(t, strings.HasPrefix(id, prefix+"-"))
			nanoidPart := strings.TrimPrefix(id, prefix+"-")
			assert.Len(t, nanoidPart, 21)

			for _, char := range nanoidPart {
				assert.True(t,
					(char >= 'A' && char <= 'Z') ||
						(char >= 'a' && char <= 'z') ||
						(char >= '0' && char <= '9') ||
						char == '_' || char == '-',
					"character %c should be URL-safe", char)
			}
		})
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := MustGenerate(PrefixGenre)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix(MustGenerate(PrefixMovie), PrefixMovie))
	assert.False(t, HasPrefix(MustGenerate(PrefixMovie), PrefixCreator))
	assert.False(t, HasPrefix("mov-", PrefixMovie))
	assert.False(t, HasPrefix("", PrefixMovie))
}
