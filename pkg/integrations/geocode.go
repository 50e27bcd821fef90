package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eventscout/eventscout/pkg/domain"
)

// IPLocator resolves the caller's own position from an ipinfo-style
// service that reports `loc` as a "lat,lng" string.
type IPLocator struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type IPLocatorConfig struct {
	BaseURL string
	Token   string
}

func NewIPLocator(config IPLocatorConfig) (*IPLocator, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("ip locator token is required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://ipinfo.io"
	}

	return &IPLocator{
		baseURL:    baseURL,
		token:      config.Token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *IPLocator) Locate(ctx context.Context) (domain.LatLng, error) {
	locateURL := fmt.Sprintf("%s/json?token=%s", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, "GET", locateURL, nil)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("failed to create locate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("failed to get location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.LatLng{}, fmt.Errorf("locate failed: status %d", resp.StatusCode)
	}

	var payload struct {
		Loc string `json:"loc"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.LatLng{}, fmt.Errorf("failed to decode location response: %w", err)
	}

	return parseLatLng(payload.Loc)
}

func parseLatLng(loc string) (domain.LatLng, error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return domain.LatLng{}, fmt.Errorf("unexpected loc format %q: %w", loc, domain.ErrInvalidLocation)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("bad latitude in %q: %w", loc, domain.ErrInvalidLocation)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("bad longitude in %q: %w", loc, domain.ErrInvalidLocation)
	}

	return domain.LatLng{Lat: lat, Lng: lng}, nil
}

// Geocoder resolves free-text addresses through a Google-style geocoding
// endpoint.
type Geocoder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type GeocoderConfig struct {
	BaseURL string
	APIKey  string
}

func NewGeocoder(config GeocoderConfig) (*Geocoder, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("geocoder API key is required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}

	return &Geocoder{
		baseURL:    baseURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *Geocoder) Geocode(ctx context.Context, address string) (domain.LatLng, error) {
	if strings.TrimSpace(address) == "" {
		return domain.LatLng{}, domain.ErrInvalidRequest
	}

	geocodeURL := fmt.Sprintf("%s/maps/api/geocode/json", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", geocodeURL, nil)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("failed to create geocode request: %w", err)
	}

	q := req.URL.Query()
	q.Set("address", address)
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("failed to geocode location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.LatLng{}, fmt.Errorf("geocode failed: status %d", resp.StatusCode)
	}

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.LatLng{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return domain.LatLng{}, fmt.Errorf("geocode status %q for %q: %w", payload.Status, address, domain.ErrInvalidLocation)
	}

	location := payload.Results[0].Geometry.Location
	return domain.LatLng{Lat: location.Lat, Lng: location.Lng}, nil
}
