package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const metersPerMile = 1609.344

// Router computes driving distances via an OSRM routing service
type Router struct {
	baseURL string
	client  *http.Client
}

// NewRouter creates a routing client against the given base URL
func NewRouter(baseURL string, timeout time.Duration) *Router {
	return &Router{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
	} `json:"routes"`
}

// DriveMiles returns the road distance between two points in miles
func (r *Router) DriveMiles(ctx context.Context, from, to *Location) (float64, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		r.baseURL, from.Longitude, from.Latitude, to.Longitude, to.Latitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("route lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("route lookup returned status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode route response: %w", err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return 0, fmt.Errorf("no route found (code %q)", body.Code)
	}

	return body.Routes[0].Distance / metersPerMile, nil
}
