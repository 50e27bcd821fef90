package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/eventscout/eventscout/pkg/domain"
)

type artistEnvelope struct {
	Artist  json.RawMessage `json:"artist"`
	Artists json.RawMessage `json:"artists"`
	Albums  json.RawMessage `json:"albums"`
}

type wireImage struct {
	URL string `json:"url"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

type wireArtist struct {
	Name          string          `json:"name"`
	ImageURL      string          `json:"imageUrl"`
	Images        []wireImage     `json:"images"`
	Followers     json.RawMessage `json:"followers"`
	FollowersText string          `json:"followersText"`
	Genres        json.RawMessage `json:"genres"`
	Popularity    int             `json:"popularity"`
	SpotifyURL    string          `json:"spotifyUrl"`
	ExternalURLs  externalURLs    `json:"external_urls"`
}

type wireAlbum struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	ImageURL        string       `json:"imageUrl"`
	Images          []wireImage  `json:"images"`
	ReleaseDate     string       `json:"releaseDate"`
	ReleaseDateSnek string       `json:"release_date"`
	TotalTracks     *int         `json:"totalTracks"`
	TotalTracksSnek *int         `json:"total_tracks"`
	SpotifyURL      string       `json:"spotifyUrl"`
	ExternalURLs    externalURLs `json:"external_urls"`
}

// ArtistInfo normalizes an artist payload in either backend dialect
// (flattened fields, or raw Spotify shape) into one canonical model.
// fallbackName is used when the payload has no artist name, typically
// the attraction name of the event being viewed.
//
// The negative outcome (an HTML error page, a non-JSON body, or no
// artist-like object anywhere in the payload) is reported as an error
// wrapping domain.ErrNoArtist. Recognized-but-incomplete shapes never
// fail; every ambiguous field resolves through the precedence rules
// below.
func ArtistInfo(raw []byte, fallbackName string) (*domain.ArtistInfo, error) {
	if title, ok := htmlErrorPage(raw); ok {
		if title != "" {
			return nil, fmt.Errorf("got error page %q instead of artist JSON: %w", title, domain.ErrNoArtist)
		}
		return nil, fmt.Errorf("got HTML instead of artist JSON: %w", domain.ErrNoArtist)
	}

	var env artistEnvelope
	if err := lenientUnmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("artist payload is not JSON: %w", domain.ErrNoArtist)
	}

	artistRaw, ok := locateArtist(env)
	if !ok {
		return nil, domain.ErrNoArtist
	}

	var wa wireArtist
	if err := lenientUnmarshal(artistRaw, &wa); err != nil {
		return nil, domain.ErrNoArtist
	}

	info := &domain.ArtistInfo{
		Name:          wa.Name,
		ImageURL:      wa.ImageURL,
		FollowersText: wa.FollowersText,
		Popularity:    clampPercent(wa.Popularity),
		SpotifyURL:    wa.SpotifyURL,
	}
	if info.Name == "" {
		info.Name = fallbackName
	}
	if strings.TrimSpace(info.Name) == "" {
		info.Name = "Unknown Artist"
	}
	if info.ImageURL == "" && len(wa.Images) > 0 {
		info.ImageURL = wa.Images[0].URL
	}
	if info.FollowersText == "" {
		info.Followers = followerCount(wa.Followers)
	}
	info.Genres = genreList(wa.Genres)
	if info.SpotifyURL == "" {
		info.SpotifyURL = wa.ExternalURLs.Spotify
	}
	info.Albums = albumList(env.Albums)

	return info, nil
}

// htmlErrorPage reports whether the payload is an HTML error page rather
// than JSON, and extracts its title for diagnostics when possible.
func htmlErrorPage(raw []byte) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	prefix := trimmed
	if len(prefix) > 16 {
		prefix = prefix[:16]
	}
	lower := strings.ToLower(string(prefix))
	if !strings.HasPrefix(lower, "<!doctype") && !strings.HasPrefix(lower, "<html") {
		return "", false
	}

	title := ""
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(trimmed)); err == nil {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return title, true
}

// locateArtist tries a top-level artist object first, then the first
// element of a top-level artists array.
func locateArtist(env artistEnvelope) (json.RawMessage, bool) {
	if isJSONObject(env.Artist) {
		return env.Artist, true
	}
	var arr []json.RawMessage
	if len(env.Artists) > 0 && json.Unmarshal(env.Artists, &arr) == nil {
		if len(arr) > 0 && isJSONObject(arr[0]) {
			return arr[0], true
		}
	}
	return nil, false
}

// followerCount resolves the follower field: a bare integer, or a nested
// object with a total.
func followerCount(raw json.RawMessage) *int64 {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	var n int64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return &n
	}

	var nested struct {
		Total *int64 `json:"total"`
	}
	if err := json.Unmarshal(trimmed, &nested); err == nil && nested.Total != nil {
		return nested.Total
	}

	return nil
}

// genreList resolves the genre field: a true string array, or one
// comma-separated string. An empty result becomes the "N/A" placeholder
// list the rendering layer expects.
func genreList(raw json.RawMessage) []string {
	genres := decodeGenres(raw)
	if len(genres) == 0 {
		return []string{"N/A"}
	}
	return genres
}

func decodeGenres(raw json.RawMessage) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	var arr []string
	if err := json.Unmarshal(trimmed, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, g := range arr {
			if strings.TrimSpace(g) != "" {
				out = append(out, g)
			}
		}
		return out
	}

	var joined string
	if err := json.Unmarshal(trimmed, &joined); err == nil {
		var out []string
		for _, g := range strings.Split(joined, ",") {
			if g = strings.TrimSpace(g); g != "" {
				out = append(out, g)
			}
		}
		return out
	}

	return nil
}

// albumList resolves the albums field: a top-level array, or an object
// wrapping an items array. Non-object entries are skipped; an entry
// missing only its name defaults to "Unknown Album".
func albumList(raw json.RawMessage) []domain.AlbumInfo {
	entries := albumEntries(raw)
	if len(entries) == 0 {
		return nil
	}

	albums := make([]domain.AlbumInfo, 0, len(entries))
	for _, entry := range entries {
		if !isJSONObject(entry) {
			continue
		}
		var wa wireAlbum
		if err := lenientUnmarshal(entry, &wa); err != nil {
			continue
		}

		album := domain.AlbumInfo{
			ID:          wa.ID,
			Name:        wa.Name,
			ImageURL:    wa.ImageURL,
			ReleaseDate: wa.ReleaseDate,
			SpotifyURL:  wa.SpotifyURL,
		}
		if album.Name == "" {
			album.Name = "Unknown Album"
		}
		if album.ImageURL == "" && len(wa.Images) > 0 {
			album.ImageURL = wa.Images[0].URL
		}
		if album.ReleaseDate == "" {
			album.ReleaseDate = wa.ReleaseDateSnek
		}
		album.TotalTracks = trackCount(wa.TotalTracks, wa.TotalTracksSnek)
		if album.SpotifyURL == "" {
			album.SpotifyURL = wa.ExternalURLs.Spotify
		}

		albums = append(albums, album)
	}

	if len(albums) == 0 {
		return nil
	}
	return albums
}

func albumEntries(raw json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(trimmed, &arr); err == nil {
		return arr
	}

	var wrapped struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err == nil {
		return wrapped.Items
	}

	return nil
}

// trackCount prefers the camelCase variant and drops non-positive
// counts.
func trackCount(camel, snake *int) *int {
	count := camel
	if count == nil {
		count = snake
	}
	if count == nil || *count <= 0 {
		return nil
	}
	return count
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
