package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/transmovil-cr/service-routes/internal/domain/route"
)

// DefaultBaseURL is the Google Directions JSON endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

// Client queries the Google Directions API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Directions performs one GET with departure_time=now and decodes the body.
// The API status is not interpreted here.
func (c *Client) Directions(ctx context.Context, origin, destination string) (*Response, error) {
	reqURL, err := c.buildURL(origin, destination)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directions request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query directions for %s -> %s: %w", origin, destination, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode directions response (HTTP %d): %w", resp.StatusCode, err)
	}
	return &body, nil
}

// GetLeg implements route.DirectionsProvider.
func (c *Client) GetLeg(ctx context.Context, origin, destination string) (route.LegMetrics, error) {
	body, err := c.Directions(ctx, origin, destination)
	if err != nil {
		return route.LegMetrics{}, err
	}

	if body.Status != route.StatusOK {
		return route.LegMetrics{}, &route.StatusError{Status: body.Status, Message: body.ErrorMessage}
	}
	if len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		return route.LegMetrics{}, route.ErrNoLeg
	}

	leg := body.Routes[0].Legs[0]
	metrics := route.LegMetrics{
		DistanceMeters:  leg.Distance.Value,
		DurationSeconds: leg.Duration.Value,
	}
	if leg.DurationInTraffic != nil {
		traffic := leg.DurationInTraffic.Value
		metrics.TrafficDurationSeconds = &traffic
	}
	return metrics, nil
}

func (c *Client) buildURL(origin, destination string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid directions URL %q: %w", c.baseURL, err)
	}

	q := u.Query()
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("departure_time", "now")
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
