package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tastemapapp/tastemap-server/internal/domain"
	"github.com/tastemapapp/tastemap-server/internal/service"
)

func (s *Server) registerDiscoverRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "Tag cloud",
		Description: "Returns tag usage counts, most used first",
		Tags:        []string{"Discover"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPlacesByTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{tag}/places",
		Summary:     "Places by tag",
		Description: "Returns places carrying the given tag, newest first",
		Tags:        []string{"Discover"},
	}, s.handleListPlacesByTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "topRatedPlaces",
		Method:      http.MethodGet,
		Path:        "/api/v1/places/top",
		Summary:     "Top rated places",
		Description: "Returns the best average ratings among places with at least two reviews",
		Tags:        []string{"Discover"},
	}, s.handleTopRatedPlaces)

	huma.Register(s.api, huma.Operation{
		OperationID: "nearbyPlaces",
		Method:      http.MethodGet,
		Path:        "/api/v1/places/near",
		Summary:     "Nearby places",
		Description: "Returns places within ten kilometers of the given point, nearest first",
		Tags:        []string{"Discover"},
	}, s.handleNearbyPlaces)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchPlaces",
		Method:      http.MethodGet,
		Path:        "/api/v1/places/search",
		Summary:     "Search places",
		Description: "Full text search over names, descriptions, tags, and addresses",
		Tags:        []string{"Discover"},
	}, s.handleSearchPlaces)
}

// === DTOs ===

// TagListResponse contains the tag cloud.
type TagListResponse struct {
	Tags []service.TagCount `json:"tags" doc:"Tag usage counts, most used first"`
}

// TagListOutput wraps the tag cloud for Huma.
type TagListOutput struct {
	Body TagListResponse
}

// ListPlacesByTagInput carries the tag.
type ListPlacesByTagInput struct {
	Tag string `path:"tag" doc:"Tag to filter by"`
}

// PlaceListResponse contains a flat list of places.
type PlaceListResponse struct {
	Places []*domain.Place `json:"places" doc:"Matching places"`
}

// PlaceListOutput wraps a place list for Huma.
type PlaceListOutput struct {
	Body PlaceListResponse
}

// TopPlacesResponse contains the top-rated view.
type TopPlacesResponse struct {
	Places []service.TopPlace `json:"places" doc:"Top rated places, best first"`
}

// TopPlacesOutput wraps the top-rated view for Huma.
type TopPlacesOutput struct {
	Body TopPlacesResponse
}

// NearbyPlacesInput carries the query point.
type NearbyPlacesInput struct {
	Lng float64 `query:"lng" required:"true" doc:"Longitude of the query point"`
	Lat float64 `query:"lat" required:"true" doc:"Latitude of the query point"`
}

// NearbyPlacesResponse contains the nearby view.
type NearbyPlacesResponse struct {
	Places []service.NearbyPlace `json:"places" doc:"Nearby places, nearest first"`
}

// NearbyPlacesOutput wraps the nearby view for Huma.
type NearbyPlacesOutput struct {
	Body NearbyPlacesResponse
}

// SearchPlacesInput carries the search query.
type SearchPlacesInput struct {
	Q string `query:"q" required:"true" minLength:"1" doc:"Search query"`
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*TagListOutput, error) {
	tags, err := s.services.Discover.TagCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &TagListOutput{Body: TagListResponse{Tags: tags}}, nil
}

func (s *Server) handleListPlacesByTag(ctx context.Context, input *ListPlacesByTagInput) (*PlaceListOutput, error) {
	places, err := s.services.Place.ListByTag(ctx, input.Tag)
	if err != nil {
		return nil, err
	}

	return &PlaceListOutput{Body: PlaceListResponse{Places: places}}, nil
}

func (s *Server) handleTopRatedPlaces(ctx context.Context, _ *struct{}) (*TopPlacesOutput, error) {
	top, err := s.services.Discover.TopRated(ctx)
	if err != nil {
		return nil, err
	}

	return &TopPlacesOutput{Body: TopPlacesResponse{Places: top}}, nil
}

func (s *Server) handleNearbyPlaces(ctx context.Context, input *NearbyPlacesInput) (*NearbyPlacesOutput, error) {
	nearby, err := s.services.Discover.Nearby(ctx, input.Lng, input.Lat)
	if err != nil {
		return nil, err
	}

	return &NearbyPlacesOutput{Body: NearbyPlacesResponse{Places: nearby}}, nil
}

func (s *Server) handleSearchPlaces(ctx context.Context, input *SearchPlacesInput) (*PlaceListOutput, error) {
	places, err := s.services.Discover.Search(ctx, input.Q)
	if err != nil {
		return nil, err
	}

	return &PlaceListOutput{Body: PlaceListResponse{Places: places}}, nil
}
