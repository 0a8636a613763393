package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is sent as "v" in every response body.
const EnvelopeVersion = 1

// APIEnvelope wraps success bodies and simple errors.
type APIEnvelope struct { //nolint:revive // API prefix mirrors APIError
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIErrorEnvelope wraps errors that carry a machine-readable code.
type APIErrorEnvelope struct { //nolint:revive // API prefix mirrors APIError
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer is a huma transformer that wraps every response body.
// 2xx bodies become data; errors keep their code and details.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if strings.HasPrefix(status, "2") {
		return APIEnvelope{Version: EnvelopeVersion, Success: true, Data: v}, nil
	}

	switch e := v.(type) {
	case *APIError:
		if e.Code != "" {
			return APIErrorEnvelope{
				Version: EnvelopeVersion,
				Error:   e.Message,
				Code:    e.Code,
				Message: e.Message,
				Details: e.Details,
			}, nil
		}
		return APIEnvelope{Version: EnvelopeVersion, Error: e.Message}, nil
	case error:
		return APIEnvelope{Version: EnvelopeVersion, Error: e.Error()}, nil
	default:
		return APIEnvelope{Version: EnvelopeVersion, Data: v}, nil
	}
}
