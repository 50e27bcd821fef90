// Package client is the application-side logic layer: the favorites
// mirror, the suggestion fetcher, and the search façade the UI calls.
// State lives behind explicit snapshot accessors rather than observable
// fields, so callers always read a consistent copy.
package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/eventscout/eventscout/pkg/domain"
)

// FavoritesAPI is what the mirror needs from the remote favorites store.
type FavoritesAPI interface {
	List(ctx context.Context) ([]domain.Favorite, error)
	Add(ctx context.Context, favorite domain.Favorite) error
	Remove(ctx context.Context, eventID string) error
}

// Mirror is a read-through copy of the remote favorites list. It is
// never authoritative: every successful mutation is followed by a full
// re-fetch, and a failed call leaves the previous contents in place.
type Mirror struct {
	api FavoritesAPI

	mu        sync.Mutex
	favorites []domain.Favorite
	status    string
}

func NewMirror(api FavoritesAPI) *Mirror {
	return &Mirror{api: api}
}

// Load replaces the mirror wholesale with the remote list. On failure
// the previous contents survive and Status carries a user-facing
// message.
func (m *Mirror) Load(ctx context.Context) error {
	favorites, err := m.api.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return err
	}
	m.favorites = favorites
	m.status = ""
	return nil
}

// IsFavorite reports whether some mirrored entry references the event.
// Pure and synchronous; it drives icon state.
func (m *Mirror) IsFavorite(eventID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isFavoriteLocked(eventID)
}

func (m *Mirror) isFavoriteLocked(eventID string) bool {
	for _, favorite := range m.favorites {
		if favorite.EventID == eventID {
			return true
		}
	}
	return false
}

// Toggle adds or removes the event remotely, then re-fetches the full
// list. No optimistic patch is ever applied; the remote list is the
// final word. On any failure the mirror is left unchanged.
func (m *Mirror) Toggle(ctx context.Context, event domain.EventSummary) error {
	m.mu.Lock()
	wasFavorite := m.isFavoriteLocked(event.ID)
	m.mu.Unlock()

	var err error
	if wasFavorite {
		err = m.api.Remove(ctx, event.ID)
	} else {
		err = m.api.Add(ctx, domain.Favorite{
			EventID:    event.ID,
			Name:       event.Name,
			Date:       event.DateTimeLabel,
			Genre:      event.CategoryLabel,
			Venue:      event.VenueName,
			ImageURL:   event.ImageURL,
			IsFavorite: true,
		})
	}
	if err != nil {
		m.setStatus(fmt.Sprintf("Error updating favorite: %v", err))
		return err
	}

	favorites, err := m.api.List(ctx)
	if err != nil {
		m.setStatus(fmt.Sprintf("Error updating favorite: %v", err))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites = favorites
	m.status = ""
	return nil
}

// Favorites returns a snapshot copy of the mirrored list.
func (m *Mirror) Favorites() []domain.Favorite {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Favorite, len(m.favorites))
	copy(out, m.favorites)
	return out
}

// Status returns the last user-facing error message, or empty after a
// successful operation.
func (m *Mirror) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Mirror) setStatus(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}
