package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tastemapapp/tastemap-server/internal/service"
)

func (s *Server) registerAccountRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getAccount",
		Method:      http.MethodGet,
		Path:        "/api/v1/account",
		Summary:     "Get current account",
		Description: "Returns the authenticated user's account",
		Tags:        []string{"Account"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetAccount)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAccount",
		Method:      http.MethodPatch,
		Path:        "/api/v1/account",
		Summary:     "Update current account",
		Description: "Updates the authenticated user's name and email",
		Tags:        []string{"Account"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateAccount)
}

// UserOutput wraps a user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// UpdateAccountRequest is the request body for account updates.
type UpdateAccountRequest struct {
	Name  string `json:"name" validate:"required,max=100" doc:"Display name"`
	Email string `json:"email" validate:"required,email,max=254" doc:"Email address"`
}

// UpdateAccountInput wraps the account update request for Huma.
type UpdateAccountInput struct {
	Body UpdateAccountRequest
}

func (s *Server) handleGetAccount(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUser(user)}, nil
}

func (s *Server) handleUpdateAccount(ctx context.Context, input *UpdateAccountInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.UpdateAccount(ctx, userID, service.UpdateAccountRequest{
		Name:  input.Body.Name,
		Email: input.Body.Email,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUser(user)}, nil
}
