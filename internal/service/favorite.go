package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tastemapapp/tastemap-server/internal/domain"
	domainerrors "github.com/tastemapapp/tastemap-server/internal/errors"
	"github.com/tastemapapp/tastemap-server/internal/store"
)

// FavoriteService manages each user's set of favorite places.
type FavoriteService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewFavoriteService creates a new favorites service.
func NewFavoriteService(store *store.Store, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		store:  store,
		logger: logger,
	}
}

// ToggleResult reports the outcome of a favorite toggle.
type ToggleResult struct {
	Favorited bool     `json:"favorited"` // State after the toggle
	Favorites []string `json:"favorites"` // Updated favorite place IDs
}

// Toggle adds the place to the user's favorites if absent, removes it if
// present. Set semantics: a place can never appear twice.
func (s *FavoriteService) Toggle(ctx context.Context, userID, placeID string) (*ToggleResult, error) {
	if _, err := s.store.GetPlace(ctx, placeID); err != nil {
		if errors.Is(err, store.ErrPlaceNotFound) {
			return nil, domainerrors.NotFound("place not found")
		}
		return nil, fmt.Errorf("get place: %w", err)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	favorited := user.ToggleFavorite(placeID)

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Debug("Favorite toggled", "user_id", userID, "place_id", placeID, "favorited", favorited)

	return &ToggleResult{
		Favorited: favorited,
		Favorites: user.Favorites,
	}, nil
}

// List returns the user's favorite places, hydrated. Favorites pointing
// at deleted places are skipped.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]*domain.Place, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	places := make([]*domain.Place, 0, len(user.Favorites))
	for _, placeID := range user.Favorites {
		place, err := s.store.GetPlace(ctx, placeID)
		if err != nil {
			continue
		}
		places = append(places, place)
	}

	return places, nil
}
