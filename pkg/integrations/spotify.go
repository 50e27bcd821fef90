package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SpotifyClient covers the slice of the Spotify Web API the artist
// endpoint needs: client-credentials auth, artist search, and album
// listing.
type SpotifyClient struct {
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	accessToken  string
	tokenExpiry  time.Time
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string // override for tests
	TokenURL     string // override for tests
}

func NewSpotifyClient(config SpotifyConfig) (*SpotifyClient, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, fmt.Errorf("spotify client ID and secret are required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.spotify.com/v1"
	}
	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = "https://accounts.spotify.com/api/token"
	}

	return &SpotifyClient{
		baseURL:      baseURL,
		tokenURL:     tokenURL,
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *SpotifyClient) getAccessToken(ctx context.Context) error {
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}

	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}

	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to get access token: status %d", resp.StatusCode)
	}

	var tokenResp spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second).Add(-5 * time.Minute)

	return nil
}

// SpotifyArtist is the provider-shape artist record, kept as received so
// the serving layer decides how to flatten it.
type SpotifyArtist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Followers struct {
		Total int64 `json:"total"`
	} `json:"followers"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Images     []struct {
		URL string `json:"url"`
	} `json:"images"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// SpotifyAlbum is the provider-shape album record.
type SpotifyAlbum struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	ReleaseDate  string `json:"release_date"`
	TotalTracks  int    `json:"total_tracks"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// FindArtist returns the best search match for a name, or nil when
// Spotify knows no such artist.
func (c *SpotifyClient) FindArtist(ctx context.Context, name string) (*SpotifyArtist, error) {
	if err := c.getAccessToken(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/search?q=%s&type=artist&limit=1", c.baseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify search failed: status %d", resp.StatusCode)
	}

	var searchResp struct {
		Artists struct {
			Items []SpotifyArtist `json:"items"`
		} `json:"artists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if len(searchResp.Artists.Items) == 0 {
		return nil, nil
	}
	artist := searchResp.Artists.Items[0]
	return &artist, nil
}

// ArtistAlbums lists an artist's albums, newest first as Spotify returns
// them.
func (c *SpotifyClient) ArtistAlbums(ctx context.Context, artistID string, limit int) ([]SpotifyAlbum, error) {
	if err := c.getAccessToken(ctx); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	albumsURL := fmt.Sprintf("%s/artists/%s/albums?include_groups=album&limit=%d",
		c.baseURL, url.PathEscape(artistID), limit)
	req, err := http.NewRequestWithContext(ctx, "GET", albumsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create albums request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get albums: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify albums failed: status %d", resp.StatusCode)
	}

	var albumsResp struct {
		Items []SpotifyAlbum `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&albumsResp); err != nil {
		return nil, fmt.Errorf("failed to decode albums response: %w", err)
	}

	return albumsResp.Items, nil
}
