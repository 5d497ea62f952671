package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned for categories the API does not serve.
	ErrUnknownCategory = errors.New("category has no catalog")

	// ErrNoCatalog is returned by the cache when nothing usable is stored.
	ErrNoCatalog = errors.New("no cached catalog")
)

// StatusError is returned when the catalog API answers with a non-2xx
// status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog request %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("catalog request %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}
