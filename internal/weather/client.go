package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghelid/weather-mcp/internal/instrumentation"
	"github.com/ghelid/weather-mcp/internal/logging"
)

const (
	// DefaultBaseURL is the public National Weather Service API.
	DefaultBaseURL = "https://api.weather.gov"

	// DefaultUserAgent identifies this client to the weather API.
	DefaultUserAgent = "MCP-Weather-Server/1.0"

	// DefaultTimeout bounds each outbound request.
	DefaultTimeout = 30 * time.Second

	// MaxPeriods is the number of forecast periods rendered by Report.
	MaxPeriods = 5

	// Endpoint labels used for metrics and spans.
	EndpointPoints   = "points"
	EndpointForecast = "forecast"

	maxErrorBody = 64 << 10
)

// Recorder receives timing for every outbound request.
type Recorder interface {
	RecordUpstreamRequest(ctx context.Context, endpoint, status string, duration time.Duration)
}

// Config holds the weather client settings. Zero values select the defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// HTTPClient overrides the shared client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client fetches forecasts from the weather API over one shared http.Client.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	logger    logging.Logger
	metrics   Recorder
}

// NewClient creates a new weather client. A nil logger discards output.
func NewClient(cfg Config, logger logging.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.Discard()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport.(*http.Transport).Clone()),
		}
	}

	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// SetMetrics sets the recorder for outbound request metrics.
func (c *Client) SetMetrics(r Recorder) {
	c.metrics = r
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Forecast resolves the forecast endpoint for coord and returns its periods
// in the order received.
func (c *Client) Forecast(ctx context.Context, coord Coordinate) (*Forecast, error) {
	ctx, span := instrumentation.StartUpstreamSpan(ctx, instrumentation.ServiceWeather, "forecast",
		instrumentation.CoordinateAttrs(coord.Latitude, coord.Longitude)...)
	defer span.End()

	c.logger.Info("fetching weather", logging.Coordinates(coord.Latitude, coord.Longitude))

	pointsURL := c.baseURL + "/points/" + coord.pathSegment()
	c.logger.Debug("resolving forecast endpoint", logging.URL(pointsURL))

	var points PointsResponse
	if err := c.getJSON(ctx, EndpointPoints, pointsURL, &points); err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	forecastURL := points.Properties.Forecast
	if forecastURL == "" {
		instrumentation.SetSpanError(span, ErrMissingForecastURL)
		return nil, ErrMissingForecastURL
	}

	c.logger.Debug("fetching forecast", logging.URL(forecastURL))

	var forecast ForecastResponse
	if err := c.getJSON(ctx, EndpointForecast, forecastURL, &forecast); err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	instrumentation.SetSpanSuccess(span)
	return &Forecast{
		Coordinate:  coord,
		ForecastURL: forecastURL,
		Periods:     forecast.Properties.Periods,
	}, nil
}

// Report fetches the forecast for coord and renders it with FormatForecast.
func (c *Client) Report(ctx context.Context, coord Coordinate) (string, error) {
	forecast, err := c.Forecast(ctx, coord)
	if err != nil {
		c.logger.Error("error fetching weather data",
			logging.Coordinates(coord.Latitude, coord.Longitude),
			logging.Err(err))
		return "", err
	}
	return FormatForecast(forecast), nil
}

// Close releases idle connections held by the shared http.Client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// getJSON issues a GET to url and decodes a 2xx JSON body into v.
func (c *Client) getJSON(ctx context.Context, endpoint, url string, v any) (err error) {
	start := time.Now()
	defer func() {
		if c.metrics == nil {
			return
		}
		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
		}
		c.metrics.RecordUpstreamRequest(ctx, endpoint, status, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func newAPIError(resp *http.Response, url string) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, URL: url}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var problem problemDetail
	if json.Unmarshal(body, &problem) == nil {
		if problem.Detail != "" {
			apiErr.Detail = problem.Detail
		} else {
			apiErr.Detail = problem.Title
		}
	}
	return apiErr
}
