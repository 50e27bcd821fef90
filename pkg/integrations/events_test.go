package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/eventscout/eventscout/pkg/domain"
)

func TestEventsClient_Search(t *testing.T) {
	t.Run("forwards query parameters", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/events" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			gotQuery = map[string]string{
				"keyword":  r.URL.Query().Get("keyword"),
				"category": r.URL.Query().Get("category"),
				"distance": r.URL.Query().Get("distance"),
				"lat":      r.URL.Query().Get("lat"),
				"lng":      r.URL.Query().Get("lng"),
			}
			w.Write([]byte(`{"_embedded":{"events":[]}}`))
		}))
		defer server.Close()

		client, err := NewEventsClient(EventsConfig{BaseURL: server.URL})
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		raw, err := client.Search(context.Background(), domain.SearchQuery{
			Keyword:  "jazz",
			Category: "Music",
			Distance: 25,
			Lat:      34.05,
			Lng:      -118.24,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := map[string]string{
			"keyword":  "jazz",
			"category": "Music",
			"distance": "25",
			"lat":      "34.05",
			"lng":      "-118.24",
		}
		if !reflect.DeepEqual(gotQuery, want) {
			t.Errorf("expected query %v, got %v", want, gotQuery)
		}
		if string(raw) != `{"_embedded":{"events":[]}}` {
			t.Errorf("expected the raw payload back, got %s", raw)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client, _ := NewEventsClient(EventsConfig{BaseURL: server.URL})
		if _, err := client.Search(context.Background(), domain.SearchQuery{}); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestEventsClient_EventDetails(t *testing.T) {
	t.Run("escapes the id into the path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/event/E1" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`{"id":"E1"}`))
		}))
		defer server.Close()

		client, _ := NewEventsClient(EventsConfig{BaseURL: server.URL})
		raw, err := client.EventDetails(context.Background(), "E1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(raw) != `{"id":"E1"}` {
			t.Errorf("unexpected payload %s", raw)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		client, _ := NewEventsClient(EventsConfig{BaseURL: "http://unused"})
		if _, err := client.EventDetails(context.Background(), ""); err != domain.ErrInvalidRequest {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})
}

func TestEventsClient_Suggestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/suggest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode([]string{"Taylor Swift", "Taylor Tomlinson"})
	}))
	defer server.Close()

	client, _ := NewEventsClient(EventsConfig{BaseURL: server.URL})
	suggestions, err := client.Suggestions(context.Background(), "tay")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"Taylor Swift", "Taylor Tomlinson"}
	if !reflect.DeepEqual(suggestions, want) {
		t.Errorf("expected %v, got %v", want, suggestions)
	}
}

func TestFavoritesClient(t *testing.T) {
	t.Run("list decodes the wire format", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "GET" || r.URL.Path != "/api/favorites" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`[{"_id":"abc","eventId":"E1","name":"Show","isFavorite":true}]`))
		}))
		defer server.Close()

		client, _ := NewFavoritesClient(FavoritesConfig{BaseURL: server.URL})
		favorites, err := client.List(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(favorites) != 1 || favorites[0].ID != "abc" || favorites[0].EventID != "E1" {
			t.Errorf("unexpected favorites %v", favorites)
		}
	})

	t.Run("add strips the id and posts json", func(t *testing.T) {
		var body []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "POST" || r.URL.Path != "/api/favorites" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			body, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client, _ := NewFavoritesClient(FavoritesConfig{BaseURL: server.URL})
		err := client.Add(context.Background(), domain.Favorite{
			ID:         "client-id",
			EventID:    "E1",
			Name:       "Show",
			IsFavorite: true,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var posted domain.Favorite
		if err := json.Unmarshal(body, &posted); err != nil {
			t.Fatalf("could not decode posted body: %v", err)
		}
		if posted.ID != "" {
			t.Error("expected the client id to be stripped before posting")
		}
		if posted.EventID != "E1" || !posted.IsFavorite {
			t.Errorf("unexpected posted favorite %+v", posted)
		}
	})

	t.Run("remove posts the event id", func(t *testing.T) {
		var body []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "POST" || r.URL.Path != "/api/favorites/remove" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			body, _ = io.ReadAll(r.Body)
		}))
		defer server.Close()

		client, _ := NewFavoritesClient(FavoritesConfig{BaseURL: server.URL})
		if err := client.Remove(context.Background(), "E1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(body) != `{"eventId":"E1"}` {
			t.Errorf("unexpected body %s", body)
		}
	})

	t.Run("remove failure status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client, _ := NewFavoritesClient(FavoritesConfig{BaseURL: server.URL})
		if err := client.Remove(context.Background(), "missing"); err == nil {
			t.Fatal("expected error")
		}
	})
}
