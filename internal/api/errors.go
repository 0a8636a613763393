package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/reelhouse/catalog-server/internal/errors"
	"github.com/reelhouse/catalog-server/internal/store"
)

// APIError implements huma.StatusError. Every error a handler returns is
// converted to one by RegisterErrorHandler.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to report domain errors with their
// own status and code. Errors nobody classified are logged with their cause
// and reported as a generic 500. Call it before registering routes.
func RegisterErrorHandler(logger *slog.Logger) {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		if apiErr := fromErrors(errs); apiErr != nil {
			if apiErr.status >= http.StatusInternalServerError && logger != nil {
				logger.Error("request failed", "code", apiErr.Code, "error", errors.Join(errs...))
			}
			return apiErr
		}

		// Request validation performed by huma itself.
		if status == http.StatusUnprocessableEntity || status == http.StatusBadRequest {
			return &APIError{
				status:  http.StatusBadRequest,
				Code:    string(domainerrors.CodeValidation),
				Message: message,
				Details: validationDetails(errs),
			}
		}

		if status >= http.StatusInternalServerError {
			if logger != nil && len(errs) > 0 {
				logger.Error("unhandled error", "status", status, "error", errors.Join(errs...))
			}
			return &APIError{
				status:  status,
				Code:    string(domainerrors.CodeInternal),
				Message: "internal server error",
			}
		}

		return &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
		}
	}
}

// fromErrors returns the response for the first classified error, or nil.
func fromErrors(errs []error) *APIError {
	for _, err := range errs {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return &APIError{
				status:  domainErr.HTTPStatus(),
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Details: domainErr.Details,
			}
		}

		var storeErr *store.Error
		if errors.As(err, &storeErr) && storeErr.HTTPCode() < http.StatusInternalServerError {
			return &APIError{
				status:  storeErr.HTTPCode(),
				Code:    string(storeCode(err)),
				Message: storeErr.Message,
			}
		}
	}
	return nil
}

func storeCode(err error) domainerrors.Code {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.CodeNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.CodeAlreadyExists
	case errors.Is(err, store.ErrForeignKey):
		return domainerrors.CodeConflict
	default:
		return domainerrors.CodeValidation
	}
}

// validationDetails keys huma's error details by field location, using the
// same shape as the service validator.
func validationDetails(errs []error) map[string]string {
	details := make(map[string]string)
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if !errors.As(err, &detail) {
			continue
		}
		location := strings.TrimPrefix(detail.Location, "body.")
		if location == "" {
			location = "body"
		}
		details[location] = detail.Message
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// statusToCode maps HTTP status codes to domain error codes.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusMethodNotAllowed:
		return string(domainerrors.CodeValidation)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeConflict)
	case http.StatusTooManyRequests:
		return string(domainerrors.CodeRateLimited)
	default:
		return string(domainerrors.CodeInternal)
	}
}
