package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse represents an error response from the API.
// The backend uses "detail"; some handlers answer with "error" or "message".
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError represents an error returned by the API
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string

	// Detail is the server-provided message, empty when the body carried none
	Detail string

	// Body is the raw response body, kept for field-level validation errors
	Body []byte
}

func newAPIError(status int, body []byte, requestID string) *APIError {
	e := &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("request failed with status %d", status),
		Body:       body,
		RequestID:  requestID,
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Detail != "":
			e.Detail = errResp.Detail
		case errResp.Error != "":
			e.Detail = errResp.Error
		case errResp.Message != "":
			e.Detail = errResp.Message
		}
	}

	if e.Detail != "" {
		e.Message = e.Detail
	}

	return e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized checks if the error is an unauthorized error
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound checks if the error is a not found error
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// FieldError returns the first validation message for a field, as produced by
// serializer errors like {"username": ["already exists"]}. A plain string value is
// returned as is.
func (e *APIError) FieldError(field string) (string, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Body, &fields); err != nil {
		return "", false
	}

	raw, ok := fields[field]
	if !ok {
		return "", false
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", false
		}
		return list[0], true
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, true
	}

	return "", false
}
