package domain

import (
	"context"
)

type FavoriteRepository interface {
	List(ctx context.Context) ([]Favorite, error)
	Add(ctx context.Context, favorite *Favorite) error
	RemoveByEventID(ctx context.Context, eventID string) error
	GetByEventID(ctx context.Context, eventID string) (*Favorite, error)
}

type FavoriteService interface {
	List(ctx context.Context) ([]Favorite, error)
	Add(ctx context.Context, favorite *Favorite) error
	RemoveByEventID(ctx context.Context, eventID string) error
}
