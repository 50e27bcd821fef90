package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/eventscout/eventscout/pkg/domain"
)

type EventHandler struct {
	service *EventService
}

func NewEventHandler(service *EventService) *EventHandler {
	return &EventHandler{
		service: service,
	}
}

func (h *EventHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/events", h.SearchEvents).Methods("GET")
	router.HandleFunc("/api/event/{id}", h.GetEventDetails).Methods("GET")
	router.HandleFunc("/api/suggest", h.Suggest).Methods("GET")
	router.HandleFunc("/api/artist", h.GetArtist).Methods("GET")
}

func (h *EventHandler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	params := r.URL.Query()

	lat, latErr := strconv.ParseFloat(params.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(params.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		h.respondWithError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	distance := 10
	if raw := params.Get("distance"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondWithError(w, http.StatusBadRequest, "distance must be a positive integer")
			return
		}
		distance = parsed
	}

	query := domain.SearchQuery{
		Keyword:  params.Get("keyword"),
		Category: params.Get("category"),
		Distance: distance,
		Lat:      lat,
		Lng:      lng,
	}

	raw, err := h.service.SearchRaw(ctx, query)
	if err != nil {
		h.respondWithUpstreamError(w, err)
		return
	}

	h.respondWithRawJSON(w, raw)
}

func (h *EventHandler) GetEventDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	raw, err := h.service.DetailRaw(ctx, mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			h.respondWithError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, domain.ErrInvalidRequest):
			h.respondWithError(w, http.StatusBadRequest, "event id is required")
		default:
			h.respondWithUpstreamError(w, err)
		}
		return
	}

	h.respondWithRawJSON(w, raw)
}

func (h *EventHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	suggestions, err := h.service.Suggest(ctx, r.URL.Query().Get("keyword"))
	if err != nil {
		h.respondWithUpstreamError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	h.respondWithJSON(w, http.StatusOK, suggestions)
}

func (h *EventHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	name := r.URL.Query().Get("name")
	if name == "" {
		h.respondWithError(w, http.StatusBadRequest, "query parameter 'name' is required")
		return
	}

	artist, err := h.service.Artist(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoArtist):
			h.respondWithError(w, http.StatusNotFound, "artist not found")
		case errors.Is(err, domain.ErrInvalidRequest):
			h.respondWithError(w, http.StatusBadRequest, "query parameter 'name' is required")
		default:
			h.respondWithUpstreamError(w, err)
		}
		return
	}

	h.respondWithJSON(w, http.StatusOK, artist)
}

func (h *EventHandler) respondWithUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimitExceeded):
		h.respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
	default:
		h.respondWithError(w, http.StatusServiceUnavailable, "external service unavailable")
	}
}

// respondWithRawJSON forwards provider bytes without re-encoding them.
func (h *EventHandler) respondWithRawJSON(w http.ResponseWriter, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func (h *EventHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"error": message})
}

func (h *EventHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
