// Package store provides persistence for TasteMap using BadgerDB.
//
// Entities are stored as JSON documents under typed key prefixes, with
// manually maintained secondary index keys for lookups (email, slug,
// refresh token). Index writes happen in the same transaction as the
// document write.
package store

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// SearchIndexer receives place changes for search indexing.
// Implemented by the search service; wired after construction to break
// the store → search → store cycle.
type SearchIndexer interface {
	IndexPlace(placeID string) error
	RemovePlace(placeID string) error
}

// NoopIndexer is a SearchIndexer that does nothing. Used in tests.
type NoopIndexer struct{}

// IndexPlace implements SearchIndexer.
func (NoopIndexer) IndexPlace(string) error { return nil }

// RemovePlace implements SearchIndexer.
func (NoopIndexer) RemovePlace(string) error { return nil }

// Store wraps BadgerDB with typed accessors for domain entities.
type Store struct {
	db            *badger.DB
	logger        *slog.Logger
	searchIndexer SearchIndexer
}

// New creates a new store at the given path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's logger is noisy; we log at the store level
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	return &Store{
		db:            db,
		logger:        logger,
		searchIndexer: NoopIndexer{},
	}, nil
}

// SetSearchIndexer wires the search indexer after construction.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	if indexer == nil {
		indexer = NoopIndexer{}
	}
	s.searchIndexer = indexer
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// get reads and unmarshals a single document.
func (s *Store) get(key []byte, out any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

// set marshals and writes a single document.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// exists reports whether a key is present.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if err == nil {
		return true, nil
	}
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	return false, err
}

// notifyIndex pushes a place change to the search indexer, best effort.
func (s *Store) notifyIndex(placeID string, deleted bool) {
	var err error
	if deleted {
		err = s.searchIndexer.RemovePlace(placeID)
	} else {
		err = s.searchIndexer.IndexPlace(placeID)
	}
	if err != nil {
		s.logger.Warn("search index update failed", "place_id", placeID, "error", err)
	}
}
