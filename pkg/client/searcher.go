package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/eventscout/eventscout/pkg/domain"
	"github.com/eventscout/eventscout/pkg/normalize"
)

// EventsAPI is what the searcher needs from the events backend. Search,
// detail, and artist payloads arrive raw; normalization happens here.
type EventsAPI interface {
	Search(ctx context.Context, query domain.SearchQuery) ([]byte, error)
	EventDetails(ctx context.Context, id string) ([]byte, error)
	ArtistInfo(ctx context.Context, name string) ([]byte, error)
}

// Locator resolves the device's own position.
type Locator interface {
	Locate(ctx context.Context) (domain.LatLng, error)
}

// GeocodeAPI resolves a free-text address.
type GeocodeAPI interface {
	Geocode(ctx context.Context, address string) (domain.LatLng, error)
}

// Searcher composes geocoding, the events backend, and normalization
// into the operations the screens call. All collaborators are injected;
// the searcher owns no state.
type Searcher struct {
	events   EventsAPI
	locator  Locator
	geocoder GeocodeAPI
}

func NewSearcher(events EventsAPI, locator Locator, geocoder GeocodeAPI) *Searcher {
	return &Searcher{
		events:   events,
		locator:  locator,
		geocoder: geocoder,
	}
}

// Search resolves the location (free text through the geocoder, blank
// through IP auto-location), runs the search, and returns normalized
// summaries in chronological order.
func (s *Searcher) Search(ctx context.Context, keyword, category string, distance int, location string) ([]domain.EventSummary, error) {
	var point domain.LatLng
	var err error

	if strings.TrimSpace(location) == "" {
		point, err = s.locator.Locate(ctx)
	} else {
		point, err = s.geocoder.Geocode(ctx, location)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve location: %w", err)
	}

	raw, err := s.events.Search(ctx, domain.SearchQuery{
		Keyword:  keyword,
		Category: category,
		Distance: distance,
		Lat:      point.Lat,
		Lng:      point.Lng,
	})
	if err != nil {
		return nil, err
	}

	return normalize.SearchEvents(raw)
}

// EventDetails fetches and normalizes one event.
func (s *Searcher) EventDetails(ctx context.Context, id string) (*domain.EventDetail, error) {
	raw, err := s.events.EventDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return normalize.EventDetails(raw)
}

// ArtistInfo fetches and normalizes artist info, using the attraction
// name both as the query and as the display-name fallback.
func (s *Searcher) ArtistInfo(ctx context.Context, attractionName string) (*domain.ArtistInfo, error) {
	raw, err := s.events.ArtistInfo(ctx, attractionName)
	if err != nil {
		return nil, err
	}
	return normalize.ArtistInfo(raw, attractionName)
}
