package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// APIError is a non-2xx response. It unwraps to one of the sentinels above
// when the status code has a mapping.
type APIError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

func mapStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return ErrBadRequest
	case code >= 500:
		return ErrUnavailable
	default:
		return nil
	}
}

const maxErrorMessage = 200

// errorMessage extracts a readable message from an error body. The backend
// uses "message", "detail" or "error"; anything else is returned raw.
func errorMessage(body []byte) string {
	var fields struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &fields) == nil {
		for _, s := range []string{fields.Message, fields.Detail, fields.Error} {
			if s != "" {
				return s
			}
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorMessage {
		s = s[:maxErrorMessage] + "..."
	}
	return s
}

func newAPIError(code int, body []byte) *APIError {
	return &APIError{StatusCode: code, Message: errorMessage(body), err: mapStatus(code)}
}
