package api

import (
	"github.com/tastemapapp/tastemap-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth     *service.AuthService
	Session  *service.SessionService
	Reset    *service.PasswordResetService
	Place    *service.PlaceService
	Review   *service.ReviewService
	Favorite *service.FavoriteService
	Discover *service.DiscoverService
	Search   *service.SearchService
}
