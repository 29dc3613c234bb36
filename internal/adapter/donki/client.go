package donki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/astromedai/mission-risk-service/internal/domain"
)

const dateLayout = "2006-01-02"

// Client fetches space-weather notifications from the NASA DONKI API.
// It implements assessor.EventSource.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a DONKI client. The demo key works for light use but is
// heavily rate-limited; production deployments set NASA_API_KEY.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.nasa.gov/DONKI",
		logger:  logger,
	}
}

// FetchEvents retrieves flares, CMEs, and geomagnetic storms for the given
// range (already margin-expanded by the caller) and returns them as one flat
// event list. A failure on any endpoint fails the whole fetch: a partially
// fetched environment would silently understate risk.
func (c *Client) FetchEvents(ctx context.Context, window domain.DateRange) ([]domain.SpaceWeatherEvent, error) {
	flares, err := c.SolarFlares(ctx, window)
	if err != nil {
		return nil, err
	}
	cmes, err := c.CoronalMassEjections(ctx, window)
	if err != nil {
		return nil, err
	}
	storms, err := c.GeomagneticStorms(ctx, window)
	if err != nil {
		return nil, err
	}

	events := make([]domain.SpaceWeatherEvent, 0, len(flares)+len(cmes)+len(storms))
	events = append(events, flares...)
	events = append(events, cmes...)
	events = append(events, storms...)
	return events, nil
}

// SolarFlares fetches the FLR endpoint for the range.
func (c *Client) SolarFlares(ctx context.Context, window domain.DateRange) ([]domain.SpaceWeatherEvent, error) {
	var records []FlareRecord
	if err := c.doRequest(ctx, "FLR", window, &records); err != nil {
		return nil, err
	}
	events, skipped := ConvertFlares(records)
	c.logSkipped("FLR", skipped)
	return events, nil
}

// CoronalMassEjections fetches the CME endpoint for the range.
func (c *Client) CoronalMassEjections(ctx context.Context, window domain.DateRange) ([]domain.SpaceWeatherEvent, error) {
	var records []CMERecord
	if err := c.doRequest(ctx, "CME", window, &records); err != nil {
		return nil, err
	}
	events, skipped := ConvertCMEs(records)
	c.logSkipped("CME", skipped)
	return events, nil
}

// GeomagneticStorms fetches the GST endpoint for the range.
func (c *Client) GeomagneticStorms(ctx context.Context, window domain.DateRange) ([]domain.SpaceWeatherEvent, error) {
	var records []StormRecord
	if err := c.doRequest(ctx, "GST", window, &records); err != nil {
		return nil, err
	}
	events, skipped := ConvertStorms(records)
	c.logSkipped("GST", skipped)
	return events, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, window domain.DateRange, out any) error {
	params := url.Values{
		"startDate": {window.Start.UTC().Format(dateLayout)},
		"endDate":   {window.End.UTC().Format(dateLayout)},
		"api_key":   {c.apiKey},
	}
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s feed request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("DONKI API error: %s status %d: %s", endpoint, resp.StatusCode, body)
	}

	// DONKI returns an empty body (not "[]") when the range has no events.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) logSkipped(endpoint string, skipped int) {
	if skipped > 0 {
		c.logger.Warn("dropped feed records with unparseable timestamps",
			"endpoint", endpoint, "count", skipped)
	}
}
