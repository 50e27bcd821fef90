package integrations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/eventscout/eventscout/pkg/domain"
)

func TestTicketmasterClient_SearchEventsRaw(t *testing.T) {
	t.Run("builds the discovery query", func(t *testing.T) {
		var got map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/events.json" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			got = map[string]string{
				"apikey":    r.URL.Query().Get("apikey"),
				"keyword":   r.URL.Query().Get("keyword"),
				"latlong":   r.URL.Query().Get("latlong"),
				"radius":    r.URL.Query().Get("radius"),
				"unit":      r.URL.Query().Get("unit"),
				"segmentId": r.URL.Query().Get("segmentId"),
			}
			w.Write([]byte(`{"_embedded":{"events":[]}}`))
		}))
		defer server.Close()

		client, err := NewTicketmasterClient(TicketmasterConfig{APIKey: "tm-key", BaseURL: server.URL})
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		_, err = client.SearchEventsRaw(context.Background(), domain.SearchQuery{
			Keyword:  "jazz",
			Category: "Music",
			Distance: 25,
			Lat:      34.05,
			Lng:      -118.24,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got["apikey"] != "tm-key" || got["keyword"] != "jazz" {
			t.Errorf("key or keyword not forwarded: %v", got)
		}
		if got["radius"] != "25" || got["unit"] != "miles" {
			t.Errorf("radius not forwarded: %v", got)
		}
		if got["segmentId"] != "KZFzniwnSyZfZ7v7nJ" {
			t.Errorf("expected the music segment id, got %q", got["segmentId"])
		}
	})

	t.Run("catch-all category applies no segment", func(t *testing.T) {
		var segment string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			segment = r.URL.Query().Get("segmentId")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client, _ := NewTicketmasterClient(TicketmasterConfig{APIKey: "k", BaseURL: server.URL})
		if _, err := client.SearchEventsRaw(context.Background(), domain.SearchQuery{Category: "All"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if segment != "" {
			t.Errorf("expected no segment filter, got %q", segment)
		}
	})
}

func TestTicketmasterClient_EventDetailsRaw(t *testing.T) {
	t.Run("unknown event", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client, _ := NewTicketmasterClient(TicketmasterConfig{APIKey: "k", BaseURL: server.URL})
		_, err := client.EventDetailsRaw(context.Background(), "missing")
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		client, _ := NewTicketmasterClient(TicketmasterConfig{APIKey: "k", BaseURL: "http://unused"})
		_, err := client.EventDetailsRaw(context.Background(), "")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})
}

func TestTicketmasterClient_Suggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/suggest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"_embedded":{"attractions":[{"name":"Taylor Swift"},{"name":""},{"name":"Taylor Tomlinson"}]}}`))
	}))
	defer server.Close()

	client, _ := NewTicketmasterClient(TicketmasterConfig{APIKey: "k", BaseURL: server.URL})
	names, err := client.Suggest(context.Background(), "tay")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"Taylor Swift", "Taylor Tomlinson"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := newRateLimiter(2)

	if err := limiter.Allow(); err != nil {
		t.Fatalf("expected first request allowed, got %v", err)
	}
	if err := limiter.Allow(); err != nil {
		t.Fatalf("expected second request allowed, got %v", err)
	}
	if err := limiter.Allow(); !errors.Is(err, domain.ErrRateLimitExceeded) {
		t.Fatalf("expected ErrRateLimitExceeded, got %v", err)
	}
}
