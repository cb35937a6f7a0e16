package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tastemapapp/tastemap-server/internal/domain"
	"github.com/tastemapapp/tastemap-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "addReview",
		Method:      http.MethodPost,
		Path:        "/api/v1/places/id/{id}/reviews",
		Summary:     "Add review",
		Description: "Adds a rating with optional text to a place",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/places/id/{id}/reviews",
		Summary:     "List reviews",
		Description: "Returns a place's reviews, newest first, with author names",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)
}

// === DTOs ===

// AddReviewRequest is the request body for adding a review.
type AddReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5" doc:"Star rating, 1 to 5"`
	Text   string `json:"text,omitempty" validate:"max=2000" doc:"Review text"`
}

// AddReviewInput wraps the review request for Huma.
type AddReviewInput struct {
	ID   string `path:"id" doc:"Place ID"`
	Body AddReviewRequest
}

// ReviewOutput wraps a created review for Huma.
type ReviewOutput struct {
	Body *domain.Review
}

// ListReviewsInput carries the place ID.
type ListReviewsInput struct {
	ID string `path:"id" doc:"Place ID"`
}

// ReviewListResponse contains a place's reviews.
type ReviewListResponse struct {
	Reviews []*service.ReviewDetail `json:"reviews" doc:"Reviews, newest first"`
}

// ReviewListOutput wraps the review list for Huma.
type ReviewListOutput struct {
	Body ReviewListResponse
}

// === Handlers ===

func (s *Server) handleAddReview(ctx context.Context, input *AddReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.Add(ctx, userID, input.ID, service.AddReviewRequest{
		Rating: input.Body.Rating,
		Text:   input.Body.Text,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: review}, nil
}

func (s *Server) handleListReviews(ctx context.Context, input *ListReviewsInput) (*ReviewListOutput, error) {
	reviews, err := s.services.Review.ListForPlace(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ReviewListOutput{Body: ReviewListResponse{Reviews: reviews}}, nil
}
