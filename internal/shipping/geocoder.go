package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Location is a geocoded ZIP code
type Location struct {
	Zip       string
	City      string
	State     string
	Latitude  float64
	Longitude float64
}

// Geocoder resolves US ZIP codes to coordinates via the Zippopotam API
type Geocoder struct {
	baseURL string
	client  *http.Client
}

// NewGeocoder creates a geocoder against the given base URL
func NewGeocoder(baseURL string, timeout time.Duration) *Geocoder {
	return &Geocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type zippopotamResponse struct {
	PostCode string `json:"post code"`
	Places   []struct {
		PlaceName string `json:"place name"`
		State     string `json:"state abbreviation"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// Lookup resolves a ZIP code. A 404 from the service means the ZIP does
// not exist; anything else is a transport failure.
func (g *Geocoder) Lookup(ctx context.Context, zip string) (*Location, error) {
	url := fmt.Sprintf("%s/us/%s", g.baseURL, zip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zip lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("unknown zip code %s", zip)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zip lookup returned status %d", resp.StatusCode)
	}

	var body zippopotamResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode zip lookup response: %w", err)
	}
	if len(body.Places) == 0 {
		return nil, fmt.Errorf("no places returned for zip %s", zip)
	}

	lat, err := strconv.ParseFloat(body.Places[0].Latitude, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in zip lookup response: %w", err)
	}
	lng, err := strconv.ParseFloat(body.Places[0].Longitude, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in zip lookup response: %w", err)
	}

	return &Location{
		Zip:       zip,
		City:      body.Places[0].PlaceName,
		State:     body.Places[0].State,
		Latitude:  lat,
		Longitude: lng,
	}, nil
}
