package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// String renders the coordinate as "(lat, lon)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%s, %s)", formatDegrees(c.Latitude), formatDegrees(c.Longitude))
}

// pathSegment renders the coordinate the way the points endpoint expects it.
func (c Coordinate) pathSegment() string {
	return formatDegrees(c.Latitude) + "," + formatDegrees(c.Longitude)
}

// formatDegrees prints the shortest exact decimal, keeping ".0" on whole
// numbers so 40 reads as "40.0".
func formatDegrees(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// PointsResponse is the subset of the /points response used to locate the
// forecast endpoint.
type PointsResponse struct {
	Properties PointsProperties `json:"properties"`
}

// PointsProperties holds the resolved endpoint references for a grid point.
type PointsProperties struct {
	Forecast string `json:"forecast"`
}

// ForecastResponse is the subset of a gridpoint forecast response.
type ForecastResponse struct {
	Properties ForecastProperties `json:"properties"`
}

// ForecastProperties holds the forecast periods in the order returned.
type ForecastProperties struct {
	Periods []Period `json:"periods"`
}

// Period is one forecast window such as "Tonight" or "Tuesday".
type Period struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast"`
}

// UnmarshalJSON decodes a period, rejecting one where any field is missing
// or null.
func (p *Period) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name             *string `json:"name"`
		Temperature      *int    `json:"temperature"`
		TemperatureUnit  *string `json:"temperatureUnit"`
		WindSpeed        *string `json:"windSpeed"`
		WindDirection    *string `json:"windDirection"`
		ShortForecast    *string `json:"shortForecast"`
		DetailedForecast *string `json:"detailedForecast"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := []struct {
		name string
		set  bool
	}{
		{"name", raw.Name != nil},
		{"temperature", raw.Temperature != nil},
		{"temperatureUnit", raw.TemperatureUnit != nil},
		{"windSpeed", raw.WindSpeed != nil},
		{"windDirection", raw.WindDirection != nil},
		{"shortForecast", raw.ShortForecast != nil},
		{"detailedForecast", raw.DetailedForecast != nil},
	}
	for _, f := range fields {
		if !f.set {
			return fmt.Errorf("%w: %s", ErrIncompletePeriod, f.name)
		}
	}

	*p = Period{
		Name:             *raw.Name,
		Temperature:      *raw.Temperature,
		TemperatureUnit:  *raw.TemperatureUnit,
		WindSpeed:        *raw.WindSpeed,
		WindDirection:    *raw.WindDirection,
		ShortForecast:    *raw.ShortForecast,
		DetailedForecast: *raw.DetailedForecast,
	}
	return nil
}

// Forecast is the result of a completed lookup.
type Forecast struct {
	Coordinate  Coordinate
	ForecastURL string
	Periods     []Period
}

// problemDetail mirrors the application/problem+json body the NWS API returns
// on errors.
type problemDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}
