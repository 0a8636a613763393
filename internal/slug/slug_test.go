package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"punctuation stripped", "Neon Dreams!", "neon-dreams"},
		{"surrounding noise", "  -- Foo_Bar -- ", "foo-bar"},
		{"empty", "", ""},
		{"lowercases", "DRAMA", "drama"},
		{"digits kept", "2001 A Space Odyssey", "2001-a-space-odyssey"},
		{"runs collapse", "sci---fi///noir", "sci-fi-noir"},
		{"already a slug", "new-wave", "new-wave"},
		{"only symbols", "!@#$%", ""},
		{"only spaces", "   ", ""},
		{"non-ascii dropped", "Café Noir", "caf-noir"},
		{"all non-ascii", "日本映画", ""},
		{"tabs and newlines", "slow\tcinema\n", "slow-cinema"},
		{"apostrophe splits", "Don't Look", "don-t-look"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestMake_Idempotent(t *testing.T) {
	inputs := []string{
		"Neon Dreams!", "  -- Foo_Bar -- ", "", "Jane Doe", "Ünïcödé Film", "a--b", "-x-", "Sci-Fi", "日本映画 2",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "input %q", in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("my-film"))
	assert.True(t, Valid("2049"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("-leading"))
	assert.False(t, Valid("trailing-"))
	assert.False(t, Valid("double--hyphen"))
	assert.False(t, Valid("Upper"))
	assert.False(t, Valid("with space"))

	for _, in := range []string{"Neon Dreams!", "Jane Doe", "New Wave"} {
		assert.True(t, Valid(Make(in)), "Make(%q) should be valid", in)
	}
}
