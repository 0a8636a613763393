package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := map[Code]int{
		CodeNotFound:       http.StatusNotFound,
		CodeAlreadyExists:  http.StatusConflict,
		CodeConflict:       http.StatusConflict,
		CodeValidation:     http.StatusBadRequest,
		CodeRateLimited:    http.StatusTooManyRequests,
		CodePartialFailure: http.StatusInternalServerError,
		CodeInternal:       http.StatusInternalServerError,
		Code("UNKNOWN"):    http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, code.HTTPStatus(), "code %s", code)
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("movie %q not found", "my-film")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrAlreadyExists))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, Is(wrapped, ErrNotFound))
}

func TestPartialFailure(t *testing.T) {
	cause := fmt.Errorf("insert movie_genres: disk full")
	err := PartialFailure("genres were cleared but not restored", cause, map[string]string{"movie_id": "mov-1"})

	assert.True(t, Is(err, ErrPartialFailure))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Contains(t, err.Error(), "disk full")

	var domainErr *Error
	require.True(t, As(err, &domainErr))
	assert.Equal(t, map[string]string{"movie_id": "mov-1"}, domainErr.Details)
}

func TestWithDetailsAndCauseCopy(t *testing.T) {
	base := Validation("validation failed")
	withDetails := base.WithDetails(map[string]string{"title": "is required"})
	withCause := withDetails.WithCause(fmt.Errorf("root"))

	assert.Nil(t, base.Details)
	assert.NotNil(t, withDetails.Details)
	assert.Equal(t, withDetails.Details, withCause.Details)
	assert.Equal(t, "validation failed: root", withCause.Error())
}
