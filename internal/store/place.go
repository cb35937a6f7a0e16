package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/tastemapapp/tastemap-server/internal/domain"
)

const (
	placePrefix       = "place:"
	placeBySlugPrefix = "idx:places:slug:" // For URL lookups; also drives slug uniqueness
)

var (
	// ErrPlaceNotFound is returned when a place cannot be found by ID or slug.
	ErrPlaceNotFound = errors.New("place not found")
	// ErrPlaceExists is returned when attempting to create a place with an existing ID.
	ErrPlaceExists = errors.New("place already exists")
	// ErrSlugExists is returned when a slug collides with an existing place.
	ErrSlugExists = errors.New("slug already in use")
)

// CreatePlace creates a new place.
// Slug uniqueness is enforced via the slug index inside the write transaction.
func (s *Store) CreatePlace(_ context.Context, place *domain.Place) error {
	key := []byte(placePrefix + place.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check place exists: %w", err)
	}
	if exists {
		return ErrPlaceExists
	}

	slugKey := []byte(placeBySlugPrefix + place.Slug)

	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(slugKey)
		if err == nil {
			return ErrSlugExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check slug exists: %w", err)
		}

		data, err := json.Marshal(place)
		if err != nil {
			return fmt.Errorf("marshal place: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		return txn.Set(slugKey, []byte(place.ID))
	})
	if err != nil {
		return err
	}

	s.notifyIndex(place.ID, false)
	return nil
}

// GetPlace retrieves a place by ID.
func (s *Store) GetPlace(_ context.Context, id string) (*domain.Place, error) {
	key := []byte(placePrefix + id)

	var place domain.Place
	if err := s.get(key, &place); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("get place: %w", err)
	}

	if place.IsDeleted() {
		return nil, ErrPlaceNotFound
	}

	return &place, nil
}

// GetPlaceBySlug retrieves a place by its URL slug.
func (s *Store) GetPlaceBySlug(ctx context.Context, slug string) (*domain.Place, error) {
	slugKey := []byte(placeBySlugPrefix + slug)

	var placeID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slugKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			placeID = string(val)
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("lookup place by slug: %w", err)
	}

	return s.GetPlace(ctx, placeID)
}

// UpdatePlace updates an existing place, migrating the slug index if the
// slug changed.
func (s *Store) UpdatePlace(ctx context.Context, place *domain.Place) error {
	key := []byte(placePrefix + place.ID)

	oldPlace, err := s.GetPlace(ctx, place.ID)
	if err != nil {
		return err
	}

	place.Touch()

	err = s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(place)
		if err != nil {
			return fmt.Errorf("marshal place: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		if oldPlace.Slug != place.Slug {
			oldSlugKey := []byte(placeBySlugPrefix + oldPlace.Slug)
			if err := txn.Delete(oldSlugKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			newSlugKey := []byte(placeBySlugPrefix + place.Slug)
			_, err := txn.Get(newSlugKey)
			if err == nil {
				return ErrSlugExists
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check new slug: %w", err)
			}

			if err := txn.Set(newSlugKey, []byte(place.ID)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.notifyIndex(place.ID, false)
	return nil
}

// DeletePlace soft-deletes a place and removes its slug index entry.
// Idempotent: deleting an unknown place returns ErrPlaceNotFound.
func (s *Store) DeletePlace(ctx context.Context, id string) error {
	place, err := s.GetPlace(ctx, id)
	if err != nil {
		return err
	}

	place.MarkDeleted()
	key := []byte(placePrefix + place.ID)

	err = s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(place)
		if err != nil {
			return fmt.Errorf("marshal place: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		slugKey := []byte(placeBySlugPrefix + place.Slug)
		if err := txn.Delete(slugKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyIndex(place.ID, true)
	return nil
}

// ListPlaces returns all non-deleted places, newest first.
func (s *Store) ListPlaces(_ context.Context) ([]*domain.Place, error) {
	prefix := []byte(placePrefix)
	var places []*domain.Place

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var place domain.Place
				if unmarshalErr := json.Unmarshal(val, &place); unmarshalErr != nil {
					// Skip malformed places
					return nil //nolint:nilerr // intentionally skip malformed entries
				}
				if place.IsDeleted() {
					return nil
				}
				places = append(places, &place)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	sort.Slice(places, func(i, j int) bool {
		return places[i].CreatedAt.After(places[j].CreatedAt)
	})

	return places, nil
}

// ListPlacesByAuthor returns all non-deleted places created by a user.
func (s *Store) ListPlacesByAuthor(ctx context.Context, authorID string) ([]*domain.Place, error) {
	all, err := s.ListPlaces(ctx)
	if err != nil {
		return nil, err
	}

	var places []*domain.Place
	for _, place := range all {
		if place.AuthorID == authorID {
			places = append(places, place)
		}
	}
	return places, nil
}

// CountSlugsMatching counts live slugs matching the given pattern.
// Iterates slug index keys only, so it never touches documents.
func (s *Store) CountSlugsMatching(_ context.Context, pattern *regexp.Regexp) (int, error) {
	prefix := []byte(placeBySlugPrefix)
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			slug := strings.TrimPrefix(string(it.Item().Key()), placeBySlugPrefix)
			if pattern.MatchString(slug) {
				count++
			}
		}
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("count slugs: %w", err)
	}

	return count, nil
}
