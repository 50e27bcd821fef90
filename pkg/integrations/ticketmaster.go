package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/eventscout/eventscout/pkg/domain"
)

// TicketmasterClient talks to the Discovery API. Search and detail
// payloads are passed through untouched so the mobile client's
// normalizers see the provider's native shape.
type TicketmasterClient struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rateLimiter
}

type TicketmasterConfig struct {
	APIKey  string
	BaseURL string // override for tests; defaults to the Discovery API
}

type rateLimiter struct {
	mu          sync.Mutex
	requests    int
	windowStart time.Time
	dailyLimit  int
}

func newRateLimiter(dailyLimit int) *rateLimiter {
	return &rateLimiter{
		dailyLimit:  dailyLimit,
		windowStart: time.Now(),
	}
}

func (r *rateLimiter) Allow() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Sub(r.windowStart) > 24*time.Hour {
		r.requests = 0
		r.windowStart = now
	}

	if r.requests >= r.dailyLimit {
		return domain.ErrRateLimitExceeded
	}

	r.requests++
	return nil
}

func NewTicketmasterClient(config TicketmasterConfig) (*TicketmasterClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("ticketmaster API key is required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://app.ticketmaster.com/discovery/v2"
	}

	return &TicketmasterClient{
		baseURL:     baseURL,
		apiKey:      config.APIKey,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: newRateLimiter(5000), // 5000 requests per day
	}, nil
}

// SearchEventsRaw runs a geo-filtered keyword search and returns the
// provider payload as-is.
func (c *TicketmasterClient) SearchEventsRaw(ctx context.Context, query domain.SearchQuery) ([]byte, error) {
	if err := c.rateLimiter.Allow(); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/events.json", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	q := req.URL.Query()
	q.Set("apikey", c.apiKey)
	q.Set("keyword", query.Keyword)
	q.Set("latlong", fmt.Sprintf("%f,%f", query.Lat, query.Lng))
	if query.Distance > 0 {
		q.Set("radius", strconv.Itoa(query.Distance))
		q.Set("unit", "miles")
	}
	if segment := segmentID(query.Category); segment != "" {
		q.Set("segmentId", segment)
	}
	req.URL.RawQuery = q.Encode()

	return c.fetchRaw(req, "ticketmaster search")
}

// EventDetailsRaw fetches one event by id and returns the provider
// payload as-is.
func (c *TicketmasterClient) EventDetailsRaw(ctx context.Context, id string) ([]byte, error) {
	if err := c.rateLimiter.Allow(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	detailURL := fmt.Sprintf("%s/events/%s.json?apikey=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, "GET", detailURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create detail request: %w", err)
	}

	return c.fetchRaw(req, "ticketmaster event details")
}

// Suggest returns attraction names matching a partial keyword, pulled
// from the Discovery suggest endpoint.
func (c *TicketmasterClient) Suggest(ctx context.Context, keyword string) ([]string, error) {
	if err := c.rateLimiter.Allow(); err != nil {
		return nil, err
	}

	suggestURL := fmt.Sprintf("%s/suggest", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", suggestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggest request: %w", err)
	}

	q := req.URL.Query()
	q.Set("apikey", c.apiKey)
	q.Set("keyword", keyword)
	req.URL.RawQuery = q.Encode()

	raw, err := c.fetchRaw(req, "ticketmaster suggest")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Embedded struct {
			Attractions []struct {
				Name string `json:"name"`
			} `json:"attractions"`
		} `json:"_embedded"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode suggest response: %w", err)
	}

	names := make([]string, 0, len(payload.Embedded.Attractions))
	for _, attraction := range payload.Embedded.Attractions {
		if attraction.Name != "" {
			names = append(names, attraction.Name)
		}
	}

	return names, nil
}

func (c *TicketmasterClient) fetchRaw(req *http.Request, operation string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed on %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrEventNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s failed: status %d", operation, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	return body, nil
}

// segmentID maps the UI category names onto Discovery segment ids. An
// unknown or catch-all category applies no segment filter.
func segmentID(category string) string {
	switch category {
	case "Music":
		return "KZFzniwnSyZfZ7v7nJ"
	case "Sports":
		return "KZFzniwnSyZfZ7v7nE"
	case "Arts & Theater":
		return "KZFzniwnSyZfZ7v7na"
	case "Film":
		return "KZFzniwnSyZfZ7v7nn"
	case "Miscellaneous":
		return "KZFzniwnSyZfZ7v7n1"
	default:
		return ""
	}
}
