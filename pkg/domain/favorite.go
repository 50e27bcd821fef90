package domain

// Favorite is a server-owned favorites record. The JSON tags are the wire
// contract of the favorites API; ID is assigned by the server and stays
// empty on an add request.
type Favorite struct {
	ID         string `json:"_id,omitempty"`
	EventID    string `json:"eventId"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Genre      string `json:"genre"`
	Venue      string `json:"venue"`
	ImageURL   string `json:"imageUrl"`
	IsFavorite bool   `json:"isFavorite"`
}

// RemoveFavoriteRequest is the body of a remove-by-event-id call.
type RemoveFavoriteRequest struct {
	EventID string `json:"eventId"`
}
