package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/validation"
)

type testProfile struct {
	Website string `json:"website" validate:"omitempty,url"`
}

type testRequest struct {
	Title    string       `json:"title" validate:"notblank,max=200"`
	Slug     string       `json:"slug,omitempty" validate:"slug"`
	VideoURL string       `json:"video_url" validate:"required"`
	Number   int          `json:"episode_number" validate:"gt=0"`
	Profile  *testProfile `json:"profile,omitempty" validate:"omitempty"`
}

func validRequest() testRequest {
	return testRequest{Title: "My Film", VideoURL: "https://video.example/1", Number: 1}
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Validate(validRequest()))

	req := validRequest()
	req.Slug = "my-film"
	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		mutate    func(*testRequest)
		wantField string
		wantMsg   string
	}{
		{"blank title", func(r *testRequest) { r.Title = "   " }, "title", "is required"},
		{"missing video url", func(r *testRequest) { r.VideoURL = "" }, "video_url", "is required"},
		{"bad slug", func(r *testRequest) { r.Slug = "My Film" }, "slug", "lowercase"},
		{"non-positive number", func(r *testRequest) { r.Number = 0 }, "episode_number", "greater than 0"},
		{"title too long", func(r *testRequest) { r.Title = string(make([]byte, 201)) }, "title", "200 characters"},
		{"nested url", func(r *testRequest) { r.Profile = &testProfile{Website: "nope"} }, "profile.website", "valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := v.Validate(req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details[tt.wantField], tt.wantMsg)
		})
	}
}

type EmbeddedFields struct {
	Name string `json:"name" validate:"notblank"`
}

type embeddingRequest struct {
	EmbeddedFields
	Count int `json:"count" validate:"gte=0"`
}

func TestValidator_EmbeddedFieldNames(t *testing.T) {
	err := validation.New().Validate(embeddingRequest{Count: -1})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Contains(t, details["count"], "greater than or equal to 0")
}
