package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/eventscout/eventscout/pkg/domain"
)

type FavoriteHandler struct {
	service domain.FavoriteService
}

func NewFavoriteHandler(service domain.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
	}
}

func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/favorites", h.ListFavorites).Methods("GET")
	router.HandleFunc("/api/favorites", h.AddFavorite).Methods("POST")
	router.HandleFunc("/api/favorites/remove", h.RemoveFavorite).Methods("POST")
}

func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	favorites, err := h.service.List(ctx)
	if err != nil {
		h.respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondWithJSON(w, http.StatusOK, favorites)
}

func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var favorite domain.Favorite
	if err := json.NewDecoder(r.Body).Decode(&favorite); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Add(ctx, &favorite); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateFavorite):
			h.respondWithError(w, http.StatusConflict, "event is already a favorite")
		case errors.Is(err, domain.ErrInvalidRequest):
			h.respondWithError(w, http.StatusBadRequest, "eventId and name are required")
		default:
			h.respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.respondWithJSON(w, http.StatusCreated, favorite)
}

func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var request domain.RemoveFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.RemoveByEventID(ctx, request.EventID); err != nil {
		switch {
		case errors.Is(err, domain.ErrFavoriteNotFound):
			h.respondWithError(w, http.StatusNotFound, "favorite not found")
		case errors.Is(err, domain.ErrInvalidRequest):
			h.respondWithError(w, http.StatusBadRequest, "eventId is required")
		default:
			h.respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *FavoriteHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"error": message})
}

func (h *FavoriteHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
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
