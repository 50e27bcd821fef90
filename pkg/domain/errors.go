package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoArtist is the valid negative outcome of artist normalization:
	// the payload held no recognizable artist object at all.
	ErrNoArtist = errors.New("no artist info found")

	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrDuplicateFavorite  = errors.New("favorite already exists")
	ErrEventNotFound      = errors.New("event not found")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidLocation    = errors.New("invalid location")
	ErrExternalAPIFailure = errors.New("external API failure")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}
