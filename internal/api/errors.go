package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound marks a 404 from the backend. Callers classify with
// errors.Is(err, api.ErrNotFound).
var ErrNotFound = errors.New("resource not found")

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed with status %d: %s", e.StatusCode, e.Body)
}

// Is reports ErrNotFound for 404 responses so callers can use errors.Is
// without inspecting status codes
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
