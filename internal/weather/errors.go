package weather

import (
	"errors"
	"fmt"
)

// ErrMissingForecastURL is returned when the points response carries no
// forecast endpoint, which happens for coordinates outside NWS coverage
// that still resolve.
var ErrMissingForecastURL = errors.New("points response did not include a forecast URL")

// ErrIncompletePeriod is returned when a forecast period lacks a field or
// carries null for it.
var ErrIncompletePeriod = errors.New("forecast period is missing a required field")

// APIError is returned for non-2xx responses from the weather API.
type APIError struct {
	StatusCode int
	URL        string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("weather API returned status %d for %s: %s", e.StatusCode, e.URL, e.Detail)
	}
	return fmt.Sprintf("weather API returned status %d for %s", e.StatusCode, e.URL)
}
