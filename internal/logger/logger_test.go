package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatFollowsEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{"production uses json", "production", true},
		{"development uses pretty", "development", false},
		{"staging uses pretty", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Writer: &buf, Environment: tt.environment, Level: slog.LevelInfo})
			log.Info("movie created", "slug", "my-film")

			out := buf.String()
			if tt.wantJSON {
				assert.Contains(t, out, `"msg":"movie created"`)
				assert.Contains(t, out, `"slug":"my-film"`)
			} else {
				assert.Contains(t, out, "INF")
				assert.Contains(t, out, "slug=my-film")
			}
		})
	}
}

func TestPrettyHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", Level: slog.LevelWarn, NoColor: true})

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WRN shown")
}

func TestPrettyHandler_NoColor(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", NoColor: true})
	log.Info("plain")

	assert.NotContains(t, buf.String(), "\033[")
}

func TestPrettyHandler_GroupsPrefixKeys(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", NoColor: true})

	log.WithGroup("store").Info("opened", "driver", "sqlite")

	assert.Contains(t, buf.String(), "store.driver=sqlite")
}

func TestPrettyHandler_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", NoColor: true})

	log.Info("creator resolved", "name", "Jane Doe")

	assert.Contains(t, buf.String(), `name="Jane Doe"`)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json"})

	log.WithError(errors.New("boom")).
		WithComponent("resolver").
		WithFields(map[string]any{"kind": "genre"}).
		Info("insert failed")

	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"component":"resolver"`)
	assert.Contains(t, out, `"kind":"genre"`)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	require.NotNil(t, log)
	log.Error("nothing happens")
}
