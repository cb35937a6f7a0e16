package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tastemapapp/tastemap-server/internal/domain"
	"github.com/tastemapapp/tastemap-server/internal/service"
)

func (s *Server) registerPlaceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPlaces",
		Method:      http.MethodGet,
		Path:        "/api/v1/places",
		Summary:     "List places",
		Description: "Returns one page of places, newest first. Out-of-range pages are clamped.",
		Tags:        []string{"Places"},
	}, s.handleListPlaces)

	huma.Register(s.api, huma.Operation{
		OperationID: "createPlace",
		Method:      http.MethodPost,
		Path:        "/api/v1/places",
		Summary:     "Create place",
		Description: "Creates a place listing owned by the authenticated user",
		Tags:        []string{"Places"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePlace)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPlaceBySlug",
		Method:      http.MethodGet,
		Path:        "/api/v1/places/{slug}",
		Summary:     "Get place by slug",
		Description: "Returns a place. Author and reviews are included only when requested.",
		Tags:        []string{"Places"},
	}, s.handleGetPlaceBySlug)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePlace",
		Method:      http.MethodPatch,
		Path:        "/api/v1/places/id/{id}",
		Summary:     "Update place",
		Description: "Updates a place. Only the owner may edit. Renaming re-derives the slug.",
		Tags:        []string{"Places"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePlace)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePlace",
		Method:      http.MethodDelete,
		Path:        "/api/v1/places/id/{id}",
		Summary:     "Delete place",
		Description: "Deletes a place. Only the owner may delete.",
		Tags:        []string{"Places"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeletePlace)

	huma.Register(s.api, huma.Operation{
		OperationID:  "uploadPlacePhoto",
		Method:       http.MethodPost,
		Path:         "/api/v1/places/id/{id}/photo",
		Summary:      "Upload place photo",
		Description:  "Replaces the place photo. Only the owner may upload.",
		Tags:         []string{"Places"},
		Security:     []map[string][]string{{"bearer": {}}},
		MaxBodyBytes: MaxUploadSize,
	}, s.handleUploadPlacePhoto)
}

// === DTOs ===

// LocationRequest carries a point and address from the client.
type LocationRequest struct {
	Lng     float64 `json:"lng" doc:"Longitude"`
	Lat     float64 `json:"lat" doc:"Latitude"`
	Address string  `json:"address" doc:"Street address"`
}

// PlaceRequest is the request body for creating or updating a place.
type PlaceRequest struct {
	Name        string           `json:"name" validate:"required,max=100" doc:"Place name"`
	Description string           `json:"description,omitempty" validate:"max=2000" doc:"Free-form description"`
	Tags        []string         `json:"tags,omitempty" validate:"max=20,dive,required,max=50" doc:"Tags"`
	Location    *LocationRequest `json:"location" doc:"Point location and address"`
}

// CreatePlaceInput wraps the create request for Huma.
type CreatePlaceInput struct {
	Body PlaceRequest
}

// UpdatePlaceInput wraps the update request for Huma.
type UpdatePlaceInput struct {
	ID   string `path:"id" doc:"Place ID"`
	Body PlaceRequest
}

// PlaceOutput wraps a single place for Huma.
type PlaceOutput struct {
	Body *domain.Place
}

// PlaceDetailOutput wraps a place with optional associations for Huma.
type PlaceDetailOutput struct {
	Body *service.PlaceDetail
}

// PlacePageOutput wraps a listing page for Huma.
type PlacePageOutput struct {
	Body *service.PlacePage
}

// ListPlacesInput carries the page number.
type ListPlacesInput struct {
	Page int `query:"page" default:"1" doc:"1-based page number"`
}

// GetPlaceBySlugInput carries the slug and include flags.
type GetPlaceBySlugInput struct {
	Slug           string `path:"slug" doc:"Place slug"`
	IncludeAuthor  bool   `query:"include_author" doc:"Include the author projection"`
	IncludeReviews bool   `query:"include_reviews" doc:"Include reviews with authors"`
}

// DeletePlaceInput carries the place ID.
type DeletePlaceInput struct {
	ID string `path:"id" doc:"Place ID"`
}

// UploadPhotoInput carries the raw image body.
type UploadPhotoInput struct {
	ID          string `path:"id" doc:"Place ID"`
	ContentType string `header:"Content-Type" doc:"Image content type"`
	RawBody     []byte
}

// === Handlers ===

func (s *Server) handleListPlaces(ctx context.Context, input *ListPlacesInput) (*PlacePageOutput, error) {
	page, err := s.services.Place.List(ctx, input.Page)
	if err != nil {
		return nil, err
	}

	return &PlacePageOutput{Body: page}, nil
}

func (s *Server) handleCreatePlace(ctx context.Context, input *CreatePlaceInput) (*PlaceOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	place, err := s.services.Place.Create(ctx, userID, service.CreatePlaceRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Tags:        input.Body.Tags,
		Location:    mapLocation(input.Body.Location),
	})
	if err != nil {
		return nil, err
	}

	return &PlaceOutput{Body: place}, nil
}

func (s *Server) handleGetPlaceBySlug(ctx context.Context, input *GetPlaceBySlugInput) (*PlaceDetailOutput, error) {
	detail, err := s.services.Place.GetBySlug(ctx, input.Slug, input.IncludeAuthor, input.IncludeReviews)
	if err != nil {
		return nil, err
	}

	return &PlaceDetailOutput{Body: detail}, nil
}

func (s *Server) handleUpdatePlace(ctx context.Context, input *UpdatePlaceInput) (*PlaceOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	place, err := s.services.Place.Update(ctx, userID, input.ID, service.UpdatePlaceRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Tags:        input.Body.Tags,
		Location:    mapLocation(input.Body.Location),
	})
	if err != nil {
		return nil, err
	}

	return &PlaceOutput{Body: place}, nil
}

func (s *Server) handleDeletePlace(ctx context.Context, input *DeletePlaceInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Place.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Place deleted"}}, nil
}

func (s *Server) handleUploadPlacePhoto(ctx context.Context, input *UploadPhotoInput) (*PlaceOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	place, err := s.services.Place.UploadPhoto(ctx, userID, input.ID, input.ContentType, bytes.NewReader(input.RawBody))
	if err != nil {
		return nil, err
	}

	return &PlaceOutput{Body: place}, nil
}

func mapLocation(loc *LocationRequest) *service.LocationInput {
	if loc == nil {
		return nil
	}
	return &service.LocationInput{
		Lng:     loc.Lng,
		Lat:     loc.Lat,
		Address: loc.Address,
	}
}
