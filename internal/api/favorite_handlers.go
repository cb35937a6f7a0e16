package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tastemapapp/tastemap-server/internal/domain"
	"github.com/tastemapapp/tastemap-server/internal/service"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/places/id/{id}/favorite",
		Summary:     "Toggle favorite",
		Description: "Adds the place to the user's favorites, or removes it if already present",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the user's favorited places",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)
}

// === DTOs ===

// ToggleFavoriteInput carries the place ID.
type ToggleFavoriteInput struct {
	ID string `path:"id" doc:"Place ID"`
}

// ToggleFavoriteOutput wraps the toggle result for Huma.
type ToggleFavoriteOutput struct {
	Body *service.ToggleResult
}

// FavoriteListResponse contains the user's favorited places.
type FavoriteListResponse struct {
	Places []*domain.Place `json:"places" doc:"Favorited places"`
}

// FavoriteListOutput wraps the favorite list for Huma.
type FavoriteListOutput struct {
	Body FavoriteListResponse
}

// === Handlers ===

func (s *Server) handleToggleFavorite(ctx context.Context, input *ToggleFavoriteInput) (*ToggleFavoriteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Favorite.Toggle(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ToggleFavoriteOutput{Body: result}, nil
}

func (s *Server) handleListFavorites(ctx context.Context, _ *struct{}) (*FavoriteListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	places, err := s.services.Favorite.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FavoriteListOutput{Body: FavoriteListResponse{Places: places}}, nil
}
