package apiclient

import (
	"fmt"
	"net/http"

	"github.com/inventario/inventory-console/internal/core/domain"
)

// APIError is a non-2xx answer from the inventory API.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Is maps status codes onto the domain sentinels so callers can use
// errors.Is(err, domain.ErrNotFound) and friends.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrUpstream:
		return true
	}
	return false
}
