package interfaces

import (
	"context"
	"strings"

	"github.com/eventscout/eventscout/pkg/domain"
	"github.com/eventscout/eventscout/pkg/integrations"
)

// EventService fronts the two providers the backend aggregates:
// Ticketmaster for events and suggestions, Spotify for artist profiles.
type EventService struct {
	ticketmaster *integrations.TicketmasterClient
	spotify      *integrations.SpotifyClient
}

func NewEventService(ticketmaster *integrations.TicketmasterClient, spotify *integrations.SpotifyClient) *EventService {
	return &EventService{
		ticketmaster: ticketmaster,
		spotify:      spotify,
	}
}

// SearchRaw returns the provider search payload untouched so the mobile
// client's normalizer sees the native shape.
func (s *EventService) SearchRaw(ctx context.Context, query domain.SearchQuery) ([]byte, error) {
	return s.ticketmaster.SearchEventsRaw(ctx, query)
}

// DetailRaw returns the provider detail payload untouched.
func (s *EventService) DetailRaw(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.ticketmaster.EventDetailsRaw(ctx, id)
}

func (s *EventService) Suggest(ctx context.Context, keyword string) ([]string, error) {
	if strings.TrimSpace(keyword) == "" {
		return []string{}, nil
	}
	return s.ticketmaster.Suggest(ctx, keyword)
}

// FlatArtist is the artist record as this backend serves it. Genres are
// flattened to one comma-joined string.
type FlatArtist struct {
	Name       string `json:"name"`
	ImageURL   string `json:"imageUrl"`
	Followers  int64  `json:"followers"`
	Genres     string `json:"genres"`
	Popularity int    `json:"popularity"`
	SpotifyURL string `json:"spotifyUrl"`
}

type FlatAlbum struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	ReleaseDate string `json:"releaseDate"`
	TotalTracks int    `json:"totalTracks"`
	SpotifyURL  string `json:"spotifyUrl"`
}

type ArtistResponse struct {
	Artist FlatArtist  `json:"artist"`
	Albums []FlatAlbum `json:"albums"`
}

// Artist looks up a performer on Spotify and flattens the profile and
// album list into the backend's serving shape. A name Spotify does not
// know is reported as domain.ErrNoArtist.
func (s *EventService) Artist(ctx context.Context, name string) (*ArtistResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidRequest
	}

	artist, err := s.spotify.FindArtist(ctx, name)
	if err != nil {
		return nil, domain.ErrExternalAPIFailure
	}
	if artist == nil {
		return nil, domain.ErrNoArtist
	}

	response := &ArtistResponse{
		Artist: FlatArtist{
			Name:       artist.Name,
			Followers:  artist.Followers.Total,
			Genres:     strings.Join(artist.Genres, ", "),
			Popularity: artist.Popularity,
			SpotifyURL: artist.ExternalURLs.Spotify,
		},
	}
	if len(artist.Images) > 0 {
		response.Artist.ImageURL = artist.Images[0].URL
	}

	// a missing album list should not sink the whole profile
	albums, err := s.spotify.ArtistAlbums(ctx, artist.ID, 20)
	if err != nil {
		return response, nil
	}

	for _, album := range albums {
		flat := FlatAlbum{
			ID:          album.ID,
			Name:        album.Name,
			ReleaseDate: album.ReleaseDate,
			TotalTracks: album.TotalTracks,
			SpotifyURL:  album.ExternalURLs.Spotify,
		}
		if len(album.Images) > 0 {
			flat.ImageURL = album.Images[0].URL
		}
		response.Albums = append(response.Albums, flat)
	}

	return response, nil
}
