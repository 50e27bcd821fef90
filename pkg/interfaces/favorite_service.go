// Package interfaces holds the HTTP surface of the backend: services
// wrapping the repositories and provider clients, and the mux handlers
// in front of them.
package interfaces

import (
	"context"
	"strings"

	"github.com/eventscout/eventscout/pkg/domain"
)

type FavoriteService struct {
	repository domain.FavoriteRepository
}

func NewFavoriteService(repository domain.FavoriteRepository) *FavoriteService {
	return &FavoriteService{
		repository: repository,
	}
}

func (s *FavoriteService) List(ctx context.Context) ([]domain.Favorite, error) {
	return s.repository.List(ctx)
}

// Add stores a new favorite. Any client-supplied id is discarded; the
// store assigns its own.
func (s *FavoriteService) Add(ctx context.Context, favorite *domain.Favorite) error {
	if favorite == nil {
		return domain.ErrInvalidRequest
	}
	if strings.TrimSpace(favorite.EventID) == "" || strings.TrimSpace(favorite.Name) == "" {
		return domain.ErrInvalidRequest
	}

	favorite.ID = ""
	favorite.IsFavorite = true

	return s.repository.Add(ctx, favorite)
}

func (s *FavoriteService) RemoveByEventID(ctx context.Context, eventID string) error {
	if strings.TrimSpace(eventID) == "" {
		return domain.ErrInvalidRequest
	}

	return s.repository.RemoveByEventID(ctx, eventID)
}
