package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tastemapapp/tastemap-server/internal/domain"
	domainerrors "github.com/tastemapapp/tastemap-server/internal/errors"
	"github.com/tastemapapp/tastemap-server/internal/id"
	"github.com/tastemapapp/tastemap-server/internal/store"
	"github.com/tastemapapp/tastemap-server/internal/validation"
)

// ReviewService handles place reviews.
type ReviewService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	store *store.Store,
	validator *validation.Validator,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// AddReviewRequest contains a new review.
type AddReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text   string `json:"text" validate:"max=2000"`
}

// ReviewDetail is a review with its author projected.
type ReviewDetail struct {
	*domain.Review
	Author *AuthorSummary `json:"author,omitempty"`
}

// Add creates a review on a place. The place must exist.
func (s *ReviewService) Add(ctx context.Context, authorID, placeID string, req AddReviewRequest) (*domain.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetPlace(ctx, placeID); err != nil {
		if errors.Is(err, store.ErrPlaceNotFound) {
			return nil, domainerrors.NotFound("place not found")
		}
		return nil, fmt.Errorf("get place: %w", err)
	}

	reviewID, err := id.Generate("review")
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	review := &domain.Review{
		AuthorID: authorID,
		PlaceID:  placeID,
		Rating:   req.Rating,
		Text:     req.Text,
	}
	review.ID = reviewID
	review.InitTimestamps()

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.Info("Review added", "review_id", reviewID, "place_id", placeID, "rating", req.Rating)
	return review, nil
}

// ListForPlace returns a place's reviews, newest first, with author
// names projected.
func (s *ReviewService) ListForPlace(ctx context.Context, placeID string) ([]*ReviewDetail, error) {
	if _, err := s.store.GetPlace(ctx, placeID); err != nil {
		if errors.Is(err, store.ErrPlaceNotFound) {
			return nil, domainerrors.NotFound("place not found")
		}
		return nil, fmt.Errorf("get place: %w", err)
	}

	return hydrateReviews(ctx, s.store, placeID)
}

// hydrateReviews loads a place's reviews and attaches author summaries.
// Authors are fetched once per distinct user.
func hydrateReviews(ctx context.Context, st *store.Store, placeID string) ([]*ReviewDetail, error) {
	reviews, err := st.ListReviewsForPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	authors := make(map[string]*AuthorSummary)
	details := make([]*ReviewDetail, 0, len(reviews))

	for _, review := range reviews {
		detail := &ReviewDetail{Review: review}

		author, ok := authors[review.AuthorID]
		if !ok {
			user, err := st.GetUser(ctx, review.AuthorID)
			if err == nil {
				author = &AuthorSummary{ID: user.ID, Name: user.Name}
			}
			authors[review.AuthorID] = author
		}
		detail.Author = author

		details = append(details, detail)
	}

	return details, nil
}
