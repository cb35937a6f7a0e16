package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tastemapapp/tastemap-server/internal/domain"
	"github.com/tastemapapp/tastemap-server/internal/search"
	"github.com/tastemapapp/tastemap-server/internal/store"
)

const (
	topRatedLimit    = 10
	topRatedMinCount = 2 // A single review doesn't make a rating
	nearbyLimit      = 8
	nearbyMaxMeters  = 10000
	textSearchLimit  = 6
)

// DiscoverService serves the aggregate discovery views: tag counts,
// top rated places, nearby places, and full-text search.
type DiscoverService struct {
	store  *store.Store
	index  *search.PlaceIndex
	logger *slog.Logger
}

// NewDiscoverService creates a new discovery service.
func NewDiscoverService(store *store.Store, index *search.PlaceIndex, logger *slog.Logger) *DiscoverService {
	return &DiscoverService{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// TagCount is one entry of the tag cloud.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounts unwinds every place's tags and counts occurrences,
// most used first. Ties break alphabetically for a stable order.
func (s *DiscoverService) TagCounts(ctx context.Context) ([]TagCount, error) {
	places, err := s.store.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	counts := make(map[string]int)
	for _, place := range places {
		for _, tag := range place.Tags {
			counts[tag]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	return tags, nil
}

// TopPlace is one entry of the top-rated view.
type TopPlace struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Photo         string  `json:"photo,omitempty"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// TopRated joins reviews to places and returns the ten best average
// ratings among places with at least two reviews.
func (s *DiscoverService) TopRated(ctx context.Context) ([]TopPlace, error) {
	reviews, err := s.store.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	type ratingAgg struct {
		sum   int
		count int
	}
	byPlace := make(map[string]*ratingAgg)
	for _, review := range reviews {
		agg := byPlace[review.PlaceID]
		if agg == nil {
			agg = &ratingAgg{}
			byPlace[review.PlaceID] = agg
		}
		agg.sum += review.Rating
		agg.count++
	}

	top := make([]TopPlace, 0, len(byPlace))
	for placeID, agg := range byPlace {
		if agg.count < topRatedMinCount {
			continue
		}
		place, err := s.store.GetPlace(ctx, placeID)
		if err != nil {
			// Reviews may outlive a deleted place
			continue
		}
		top = append(top, TopPlace{
			ID:            place.ID,
			Slug:          place.Slug,
			Name:          place.Name,
			Photo:         place.Photo,
			ReviewCount:   agg.count,
			AverageRating: float64(agg.sum) / float64(agg.count),
		})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].AverageRating != top[j].AverageRating {
			return top[i].AverageRating > top[j].AverageRating
		}
		return top[i].Slug < top[j].Slug
	})

	if len(top) > topRatedLimit {
		top = top[:topRatedLimit]
	}

	return top, nil
}

// NearbyPlace is the projection served by the nearby view.
type NearbyPlace struct {
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Location    domain.Location `json:"location"`
	Photo       string          `json:"photo,omitempty"`
}

// Nearby returns up to eight places within ten kilometers of the given
// point, nearest first.
func (s *DiscoverService) Nearby(ctx context.Context, lng, lat float64) ([]NearbyPlace, error) {
	hits, err := s.index.Near(ctx, lng, lat, nearbyMaxMeters, nearbyLimit)
	if err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}

	nearby := make([]NearbyPlace, 0, len(hits))
	for _, hit := range hits {
		place, err := s.store.GetPlace(ctx, hit.ID)
		if err != nil {
			// Index can briefly lag behind deletes
			continue
		}
		nearby = append(nearby, NearbyPlace{
			Slug:        place.Slug,
			Name:        place.Name,
			Description: place.Description,
			Location:    place.Location,
			Photo:       place.Photo,
		})
	}

	return nearby, nil
}

// Search runs a full-text query and returns up to six places,
// most relevant first.
func (s *DiscoverService) Search(ctx context.Context, query string) ([]*domain.Place, error) {
	hits, err := s.index.TextSearch(ctx, query, textSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}

	places := make([]*domain.Place, 0, len(hits))
	for _, hit := range hits {
		place, err := s.store.GetPlace(ctx, hit.ID)
		if err != nil {
			continue
		}
		places = append(places, place)
	}

	return places, nil
}
