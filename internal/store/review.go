package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/tastemapapp/tastemap-server/internal/domain"
)

const (
	reviewPrefix        = "review:"
	reviewByPlacePrefix = "idx:reviews:place:" // idx:reviews:place:{placeID}:{reviewID} → empty
)

// ErrReviewNotFound is returned when a review cannot be found by ID.
var ErrReviewNotFound = errors.New("review not found")

// CreateReview creates a new review and indexes it by place.
func (s *Store) CreateReview(_ context.Context, review *domain.Review) error {
	key := []byte(reviewPrefix + review.ID)
	placeKey := []byte(reviewByPlacePrefix + review.PlaceID + ":" + review.ID)

	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(review)
		if err != nil {
			return fmt.Errorf("marshal review: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		return txn.Set(placeKey, nil)
	})
}

// GetReview retrieves a review by ID.
func (s *Store) GetReview(_ context.Context, id string) (*domain.Review, error) {
	key := []byte(reviewPrefix + id)

	var review domain.Review
	if err := s.get(key, &review); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	if review.IsDeleted() {
		return nil, ErrReviewNotFound
	}

	return &review, nil
}

// ListReviewsForPlace returns all reviews for a place, newest first.
func (s *Store) ListReviewsForPlace(ctx context.Context, placeID string) ([]*domain.Review, error) {
	prefix := []byte(reviewByPlacePrefix + placeID + ":")
	var reviewIDs []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			reviewIDs = append(reviewIDs, strings.TrimPrefix(key, string(prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list reviews for place: %w", err)
	}

	reviews := make([]*domain.Review, 0, len(reviewIDs))
	for _, reviewID := range reviewIDs {
		review, err := s.GetReview(ctx, reviewID)
		if err != nil {
			// Index entry without a live document; skip it
			continue
		}
		reviews = append(reviews, review)
	}

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	return reviews, nil
}

// ListReviews returns all non-deleted reviews.
// Used by the discovery aggregations to join reviews to places.
func (s *Store) ListReviews(_ context.Context) ([]*domain.Review, error) {
	prefix := []byte(reviewPrefix)
	var reviews []*domain.Review

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var review domain.Review
				if unmarshalErr := json.Unmarshal(val, &review); unmarshalErr != nil {
					// Skip malformed reviews
					return nil //nolint:nilerr // intentionally skip malformed entries
				}
				if review.IsDeleted() {
					return nil
				}
				reviews = append(reviews, &review)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}
