package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tastemapapp/tastemap-server/internal/search"
	"github.com/tastemapapp/tastemap-server/internal/store"
)

// SearchService keeps the bleve index in sync with the place store.
// It implements store.SearchIndexer and is wired into the store after
// construction to break the store → search → store cycle.
type SearchService struct {
	store  *store.Store
	index  *search.PlaceIndex
	logger *slog.Logger
}

// NewSearchService creates a new search sync service.
func NewSearchService(store *store.Store, index *search.PlaceIndex, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// IndexPlace indexes a single place by ID. Implements store.SearchIndexer.
func (s *SearchService) IndexPlace(placeID string) error {
	place, err := s.store.GetPlace(context.Background(), placeID)
	if err != nil {
		return fmt.Errorf("load place for indexing: %w", err)
	}
	return s.index.IndexDocument(search.PlaceToDocument(place))
}

// RemovePlace removes a place from the index. Implements store.SearchIndexer.
func (s *SearchService) RemovePlace(placeID string) error {
	return s.index.DeleteDocument(placeID)
}

// EnsureIndexed reindexes everything when the index is empty but places
// exist. Covers index rebuilds after a mapping version change and
// recovery from a deleted index directory.
func (s *SearchService) EnsureIndexed(ctx context.Context) error {
	count, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if count > 0 {
		return nil
	}

	places, err := s.store.ListPlaces(ctx)
	if err != nil {
		return fmt.Errorf("list places: %w", err)
	}
	if len(places) == 0 {
		return nil
	}

	docs := make([]*search.PlaceDocument, 0, len(places))
	for _, place := range places {
		docs = append(docs, search.PlaceToDocument(place))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("reindex places: %w", err)
	}

	s.logger.Info("Rebuilt search index from store", "places", len(docs))
	return nil
}

// DocumentCount returns the number of indexed places.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Reindex drops and rebuilds the whole index from the store.
func (s *SearchService) Reindex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return err
	}
	return s.EnsureIndexed(ctx)
}
