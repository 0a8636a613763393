package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/ratelimit"
	"github.com/reelhouse/catalog-server/internal/store"
)

func TestEnvelopeTransformer_AlwaysIncludesVersion(t *testing.T) {
	tests := []struct {
		name   string
		status string
		input  any
	}{
		{"success response", "200", map[string]string{"key": "value"}},
		{"created response", "201", map[string]string{"id": "123"}},
		{"no content response", "204", nil},
		{"plain error", "400", errors.New("invalid input")},
		{"coded error", "409", &APIError{Code: "ALREADY_EXISTS", Message: "already exists"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			raw, err := json.Marshal(result)
			require.NoError(t, err)

			var envelope map[string]any
			require.NoError(t, json.Unmarshal(raw, &envelope))
			assert.Equal(t, float64(EnvelopeVersion), envelope["v"])
			assert.NotContains(t, envelope, "version")
		})
	}
}

func TestEnvelopeTransformer_SuccessResponse(t *testing.T) {
	data := map[string]string{"title": "My Film"}

	result, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok)
	assert.True(t, envelope.Success)
	assert.Equal(t, data, envelope.Data)
	assert.Empty(t, envelope.Error)
}

func TestEnvelopeTransformer_ErrorWithDetails(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "500", &APIError{
		Code:    string(domainerrors.CodePartialFailure),
		Message: "genres were not saved",
		Details: map[string]string{"movie_id": "mov-1", "junction_state": "empty"},
	})
	require.NoError(t, err)

	envelope, ok := result.(APIErrorEnvelope)
	require.True(t, ok)
	assert.False(t, envelope.Success)
	assert.Equal(t, "PARTIAL_FAILURE", envelope.Code)
	assert.Equal(t, "genres were not saved", envelope.Error)
	assert.Equal(t, map[string]string{"movie_id": "mov-1", "junction_state": "empty"}, envelope.Details)
}

func TestRegisterErrorHandler(t *testing.T) {
	RegisterErrorHandler(slog.New(slog.DiscardHandler))

	tests := []struct {
		name       string
		status     int
		errs       []error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "domain error keeps its status",
			status:     http.StatusInternalServerError,
			errs:       []error{fmt.Errorf("submit: %w", domainerrors.AlreadyExistsf("movie %q already exists", "my-film"))},
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_EXISTS",
			wantMsg:    `movie "my-film" already exists`,
		},
		{
			name:       "store not found",
			status:     http.StatusInternalServerError,
			errs:       []error{store.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "resource not found",
		},
		{
			name:       "huma validation becomes 400",
			status:     http.StatusUnprocessableEntity,
			errs:       []error{&huma.ErrorDetail{Location: "body.video_url", Message: "expected required property video_url to be present"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantMsg:    "validation failed",
		},
		{
			name:       "unknown error is hidden",
			status:     http.StatusInternalServerError,
			errs:       []error{errors.New("database is locked")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statusErr := huma.NewError(tt.status, "validation failed", tt.errs...)

			apiErr, ok := statusErr.(*APIError)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, apiErr.GetStatus())
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestRegisterErrorHandler_ValidationDetails(t *testing.T) {
	RegisterErrorHandler(nil)

	statusErr := huma.NewError(http.StatusUnprocessableEntity, "validation failed",
		&huma.ErrorDetail{Location: "body.rating", Message: "expected number <= 5"},
	)
	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"rating": "expected number <= 5"}, apiErr.Details)
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	assert.Equal(t, "internal server error", body["error"])
}

func TestWriteRateLimitMiddleware_ReadsPass(t *testing.T) {
	limiter := ratelimit.New(1, 1)
	defer limiter.Stop()

	handler := WriteRateLimitMiddleware(limiter, slog.New(slog.DiscardHandler))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for range 3 {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0.2))
	assert.Equal(t, 2, retryAfterSeconds(1.5))
	assert.Equal(t, 3, retryAfterSeconds(3))
}
