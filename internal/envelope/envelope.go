// Package envelope encodes and decodes the {success, data, error} structure
// used by every therapy search response.
package envelope

import (
	"encoding/json"

	"github.com/curaan-web/internal/apperr"
	"github.com/curaan-web/internal/models"
)

// APIError is the error object of a failure envelope
type APIError struct {
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Details map[string]any `json:"details,omitempty"`
}

// Response is the envelope shared by success and failure responses
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *APIError       `json:"error,omitempty"`
}

// Failure builds the envelope for an application error
func Failure(err *apperr.Error) Response {
	kind := err.Kind
	if kind == apperr.KindUnknown {
		kind = apperr.KindInternal
	}
	return Response{
		Success: false,
		Error: &APIError{
			Message: err.Message,
			Type:    string(kind),
			Details: err.Details,
		},
	}
}

// Decode parses an envelope body. Failure envelopes and anything that is not
// a well formed success envelope come back as *apperr.Error.
func Decode(body []byte) (*models.SearchResult, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Invalid response from server", err)
	}

	if !resp.Success && resp.Error != nil {
		return nil, apperr.New(apperr.ParseKind(resp.Error.Type), resp.Error.Message).
			WithDetails(resp.Error.Details)
	}
	if !resp.Success {
		return nil, apperr.Internal("Unknown error occurred")
	}

	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil, apperr.Internal("Empty response from server")
	}

	var result models.SearchResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Invalid response from server", err)
	}
	return &result, nil
}
