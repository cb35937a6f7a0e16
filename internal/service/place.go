package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tastemapapp/tastemap-server/internal/domain"
	domainerrors "github.com/tastemapapp/tastemap-server/internal/errors"
	"github.com/tastemapapp/tastemap-server/internal/id"
	"github.com/tastemapapp/tastemap-server/internal/media/images"
	"github.com/tastemapapp/tastemap-server/internal/store"
	"github.com/tastemapapp/tastemap-server/internal/util"
	"github.com/tastemapapp/tastemap-server/internal/validation"
)

// PageSize is the number of places per listing page.
const PageSize = 6

// PlaceService handles place listing CRUD, slugs, pagination, and photos.
type PlaceService struct {
	store     *store.Store
	photos    *images.Processor
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPlaceService creates a new place service.
func NewPlaceService(
	store *store.Store,
	photos *images.Processor,
	validator *validation.Validator,
	logger *slog.Logger,
) *PlaceService {
	return &PlaceService{
		store:     store,
		photos:    photos,
		validator: validator,
		logger:    logger,
	}
}

// LocationInput carries a point and address from the client.
type LocationInput struct {
	Lng     float64 `json:"lng" validate:"longitude"`
	Lat     float64 `json:"lat" validate:"latitude"`
	Address string  `json:"address" validate:"required,max=200"`
}

// CreatePlaceRequest contains new listing data. Every place has a
// location; a listing without coordinates and an address is rejected.
type CreatePlaceRequest struct {
	Name        string         `json:"name" validate:"required,max=100"`
	Description string         `json:"description" validate:"max=2000"`
	Tags        []string       `json:"tags" validate:"max=20,dive,required,max=50"`
	Location    *LocationInput `json:"location" validate:"required"`
}

// UpdatePlaceRequest contains editable listing fields.
type UpdatePlaceRequest struct {
	Name        string         `json:"name" validate:"required,max=100"`
	Description string         `json:"description" validate:"max=2000"`
	Tags        []string       `json:"tags" validate:"max=20,dive,required,max=50"`
	Location    *LocationInput `json:"location" validate:"required"`
}

// Create creates a place owned by the given user, deriving its slug
// from the name.
func (s *PlaceService) Create(ctx context.Context, authorID string, req CreatePlaceRequest) (*domain.Place, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	slug, err := s.deriveSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	placeID, err := id.Generate("place")
	if err != nil {
		return nil, fmt.Errorf("generate place ID: %w", err)
	}

	place := &domain.Place{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Tags:        req.Tags,
		AuthorID:    authorID,
	}
	place.ID = placeID
	place.InitTimestamps()
	applyLocation(place, req.Location)

	if err := s.store.CreatePlace(ctx, place); err != nil {
		if errors.Is(err, store.ErrSlugExists) {
			// Lost a race with a concurrent create; surface as conflict
			return nil, domainerrors.Conflict("a place with a similar name was just created, try again")
		}
		return nil, fmt.Errorf("create place: %w", err)
	}

	s.logger.Info("Place created", "place_id", placeID, "slug", slug, "author_id", authorID)
	return place, nil
}

// Get retrieves a place by ID.
func (s *PlaceService) Get(ctx context.Context, placeID string) (*domain.Place, error) {
	place, err := s.store.GetPlace(ctx, placeID)
	if err != nil {
		if errors.Is(err, store.ErrPlaceNotFound) {
			return nil, domainerrors.NotFound("place not found")
		}
		return nil, fmt.Errorf("get place: %w", err)
	}
	return place, nil
}

// AuthorSummary is the public projection of a place author.
type AuthorSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlaceDetail is a place with optionally included associations.
type PlaceDetail struct {
	Place   *domain.Place   `json:"place"`
	Author  *AuthorSummary  `json:"author,omitempty"`
	Reviews []*ReviewDetail `json:"reviews,omitempty"`
}

// GetBySlug retrieves a place by slug. Associations are included only
// when explicitly requested.
func (s *PlaceService) GetBySlug(ctx context.Context, slug string, includeAuthor, includeReviews bool) (*PlaceDetail, error) {
	place, err := s.store.GetPlaceBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrPlaceNotFound) {
			return nil, domainerrors.NotFound("place not found")
		}
		return nil, fmt.Errorf("get place by slug: %w", err)
	}

	detail := &PlaceDetail{Place: place}

	if includeAuthor {
		author, err := s.store.GetUser(ctx, place.AuthorID)
		if err == nil {
			detail.Author = &AuthorSummary{ID: author.ID, Name: author.Name}
		}
	}

	if includeReviews {
		reviews, err := hydrateReviews(ctx, s.store, place.ID)
		if err != nil {
			return nil, err
		}
		detail.Reviews = reviews
	}

	return detail, nil
}

// Update modifies a place. Only the owner may update; the slug is
// re-derived only when the name changes.
func (s *PlaceService) Update(ctx context.Context, userID, placeID string, req UpdatePlaceRequest) (*domain.Place, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	place, err := s.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}

	if place.AuthorID != userID {
		return nil, domainerrors.Forbidden("only the owner can update this place")
	}

	if req.Name != place.Name {
		slug, err := s.deriveSlug(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		place.Slug = slug
	}

	place.Name = req.Name
	place.Description = req.Description
	place.Tags = req.Tags
	applyLocation(place, req.Location)

	if err := s.store.UpdatePlace(ctx, place); err != nil {
		if errors.Is(err, store.ErrSlugExists) {
			return nil, domainerrors.Conflict("a place with a similar name was just created, try again")
		}
		return nil, fmt.Errorf("update place: %w", err)
	}

	s.logger.Info("Place updated", "place_id", place.ID)
	return place, nil
}

// Delete soft-deletes a place. Only the owner may delete.
func (s *PlaceService) Delete(ctx context.Context, userID, placeID string) error {
	place, err := s.Get(ctx, placeID)
	if err != nil {
		return err
	}

	if place.AuthorID != userID {
		return domainerrors.Forbidden("only the owner can delete this place")
	}

	if err := s.store.DeletePlace(ctx, placeID); err != nil {
		return fmt.Errorf("delete place: %w", err)
	}

	s.logger.Info("Place deleted", "place_id", placeID)
	return nil
}

// PlacePage is one page of the place listing.
type PlacePage struct {
	Places     []*domain.Place `json:"places"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
}

// List returns one page of places, newest first. Pages are 1-based;
// requests past the end are clamped to the last page, and the page
// actually served is reported back.
func (s *PlaceService) List(ctx context.Context, page int) (*PlacePage, error) {
	places, err := s.store.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	total := len(places)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &PlacePage{
		Places:     places[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// ListByTag returns places carrying the given tag, or every tagged place
// when tag is empty. Newest first.
func (s *PlaceService) ListByTag(ctx context.Context, tag string) ([]*domain.Place, error) {
	places, err := s.store.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	filtered := make([]*domain.Place, 0, len(places))
	for _, place := range places {
		if tag == "" {
			if len(place.Tags) > 0 {
				filtered = append(filtered, place)
			}
			continue
		}
		if place.HasTag(tag) {
			filtered = append(filtered, place)
		}
	}

	return filtered, nil
}

// UploadPhoto processes and attaches a photo to a place. Only the owner
// may upload. Replaces and removes any previous photo.
func (s *PlaceService) UploadPhoto(ctx context.Context, userID, placeID, contentType string, body io.Reader) (*domain.Place, error) {
	place, err := s.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}

	if place.AuthorID != userID {
		return nil, domainerrors.Forbidden("only the owner can upload photos for this place")
	}

	result, err := s.photos.Process(contentType, body)
	if err != nil {
		return nil, err
	}

	oldPhoto := place.Photo
	place.Photo = result.Filename
	place.PhotoBlurhash = result.BlurHash

	if err := s.store.UpdatePlace(ctx, place); err != nil {
		// Roll back the orphaned upload
		_ = s.photos.Remove(result.Filename)
		return nil, fmt.Errorf("update place photo: %w", err)
	}

	if oldPhoto != "" && oldPhoto != result.Filename {
		if err := s.photos.Remove(oldPhoto); err != nil {
			s.logger.Warn("Failed to remove replaced photo", "filename", oldPhoto, "error", err)
		}
	}

	s.logger.Info("Photo uploaded", "place_id", placeID, "filename", result.Filename)
	return place, nil
}

// deriveSlug normalizes a name into a slug and suffixes it when taken.
// Counting matches of base(-N)? and appending count+1 mirrors how slugs
// were assigned historically; the suffix is unique but not guaranteed
// to be the smallest free number.
func (s *PlaceService) deriveSlug(ctx context.Context, name string) (string, error) {
	base := util.NormalizeSlug(name)
	if base == "" {
		return "", domainerrors.Validation("name must contain at least one letter or digit")
	}

	count, err := s.store.CountSlugsMatching(ctx, util.SlugVariantPattern(base))
	if err != nil {
		return "", fmt.Errorf("count slug variants: %w", err)
	}
	if count == 0 {
		return base, nil
	}

	return fmt.Sprintf("%s-%d", base, count+1), nil
}

// applyLocation copies a location input onto a place. Validation has
// already guaranteed a non-nil input; the geometry type is always
// "Point" regardless of what callers send.
func applyLocation(place *domain.Place, loc *LocationInput) {
	place.Location = domain.Location{
		Type:        domain.GeometryPoint,
		Coordinates: [2]float64{loc.Lng, loc.Lat},
		Address:     loc.Address,
	}
}
