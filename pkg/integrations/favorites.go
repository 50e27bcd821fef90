package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eventscout/eventscout/pkg/domain"
)

// FavoritesClient talks to the remote favorites store. The remote list
// is the single source of truth; this client never caches.
type FavoritesClient struct {
	baseURL    string
	httpClient *http.Client
}

type FavoritesConfig struct {
	BaseURL string
	Timeout time.Duration
}

func NewFavoritesClient(config FavoritesConfig) (*FavoritesClient, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("favorites backend base URL is required")
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &FavoritesClient{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *FavoritesClient) List(ctx context.Context) ([]domain.Favorite, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/favorites", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list favorites failed: status %d", resp.StatusCode)
	}

	var favorites []domain.Favorite
	if err := json.NewDecoder(resp.Body).Decode(&favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}

	return favorites, nil
}

// Add posts a new favorite. The record's ID must be unset; the server
// assigns one.
func (c *FavoritesClient) Add(ctx context.Context, favorite domain.Favorite) error {
	favorite.ID = ""

	body, err := json.Marshal(favorite)
	if err != nil {
		return fmt.Errorf("failed to encode favorite: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/favorites", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create add request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("add favorite failed: status %d", resp.StatusCode)
	}

	return nil
}

func (c *FavoritesClient) Remove(ctx context.Context, eventID string) error {
	body, err := json.Marshal(domain.RemoveFavoriteRequest{EventID: eventID})
	if err != nil {
		return fmt.Errorf("failed to encode remove request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/favorites/remove", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create remove request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remove favorite failed: status %d", resp.StatusCode)
	}

	return nil
}
