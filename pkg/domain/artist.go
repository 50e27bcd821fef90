package domain

// ArtistInfo is the canonical artist-and-discography model produced from
// either backend dialect (flattened or raw Spotify shape).
//
// Followers is nil when the source carried no numeric count; when the
// source sent pre-formatted text instead, it is passed through in
// FollowersText and Followers stays nil.
type ArtistInfo struct {
	Name          string      `json:"name"`
	ImageURL      string      `json:"image_url,omitempty"`
	Followers     *int64      `json:"followers,omitempty"`
	FollowersText string      `json:"followers_text,omitempty"`
	Popularity    int         `json:"popularity"`
	Genres        []string    `json:"genres"`
	SpotifyURL    string      `json:"spotify_url,omitempty"`
	Albums        []AlbumInfo `json:"albums,omitempty"`
}

// AlbumInfo is one discography entry. TotalTracks is nil when the source
// had no count or a non-positive one.
type AlbumInfo struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	TotalTracks *int   `json:"total_tracks,omitempty"`
	SpotifyURL  string `json:"spotify_url,omitempty"`
}
