package client

import (
	"context"
	"sync"
)

// SuggestionAPI is what the suggester needs from the backend.
type SuggestionAPI interface {
	Suggestions(ctx context.Context, keyword string) ([]string, error)
}

// Suggester fetches keyword suggestions on every keystroke. Each request
// is tagged with a monotonically increasing sequence number; a response
// arriving after a newer request has been issued is discarded, so a slow
// early response can never overwrite a fresher one.
type Suggester struct {
	api SuggestionAPI

	mu      sync.Mutex
	seq     uint64
	current []string
}

func NewSuggester(api SuggestionAPI) *Suggester {
	return &Suggester{api: api}
}

// Fetch issues a suggestion request for the keyword and returns the
// freshest suggestion list known after it completes. A stale response is
// dropped in favor of whatever a newer request produced.
func (s *Suggester) Fetch(ctx context.Context, keyword string) ([]string, error) {
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.mu.Unlock()

	suggestions, err := s.api.Suggestions(ctx, keyword)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.seq {
		// a newer request was issued while this one was in flight
		return snapshot(s.current), nil
	}
	if err != nil {
		s.current = nil
		return nil, err
	}
	s.current = suggestions
	return snapshot(s.current), nil
}

// Current returns the freshest suggestion list without fetching.
func (s *Suggester) Current() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.current)
}

// Reset clears the suggestion state, e.g. when the input is emptied.
func (s *Suggester) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.current = nil
}

func snapshot(suggestions []string) []string {
	if suggestions == nil {
		return nil
	}
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}
