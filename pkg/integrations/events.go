// Package integrations holds the HTTP clients for every remote this
// system talks to. Clients are constructed once with explicit config and
// an owned http.Client; nothing here is a process-global singleton.
package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eventscout/eventscout/pkg/domain"
)

// EventsClient talks to the events backend. Search and detail responses
// are returned as raw JSON bytes; normalization is the caller's job.
type EventsClient struct {
	baseURL    string
	httpClient *http.Client
}

type EventsConfig struct {
	BaseURL string
	Timeout time.Duration
}

func NewEventsClient(config EventsConfig) (*EventsClient, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("events backend base URL is required")
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &EventsClient{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *EventsClient) Search(ctx context.Context, query domain.SearchQuery) ([]byte, error) {
	searchURL := fmt.Sprintf("%s/api/events", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	q := req.URL.Query()
	q.Set("keyword", query.Keyword)
	q.Set("category", query.Category)
	q.Set("distance", strconv.Itoa(query.Distance))
	q.Set("lat", strconv.FormatFloat(query.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(query.Lng, 'f', -1, 64))
	req.URL.RawQuery = q.Encode()

	return c.fetchRaw(req, "search events")
}

func (c *EventsClient) EventDetails(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	detailURL := fmt.Sprintf("%s/api/event/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, "GET", detailURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create detail request: %w", err)
	}

	return c.fetchRaw(req, "get event details")
}

func (c *EventsClient) ArtistInfo(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, domain.ErrInvalidRequest
	}

	artistURL := fmt.Sprintf("%s/api/artist", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", artistURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create artist request: %w", err)
	}

	q := req.URL.Query()
	q.Set("name", name)
	req.URL.RawQuery = q.Encode()

	return c.fetchRaw(req, "get artist info")
}

func (c *EventsClient) Suggestions(ctx context.Context, keyword string) ([]string, error) {
	suggestURL := fmt.Sprintf("%s/api/suggest", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", suggestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggest request: %w", err)
	}

	q := req.URL.Query()
	q.Set("keyword", keyword)
	req.URL.RawQuery = q.Encode()

	raw, err := c.fetchRaw(req, "get suggestions")
	if err != nil {
		return nil, err
	}

	var suggestions []string
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}

	return suggestions, nil
}

func (c *EventsClient) fetchRaw(req *http.Request, operation string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s failed: status %d", operation, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	return body, nil
}
