package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastemapapp/tastemap-server/internal/domain"
	"github.com/tastemapapp/tastemap-server/internal/id"
	"github.com/tastemapapp/tastemap-server/internal/util"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tastemap-store-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(tmpDir, logger)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func newTestPlace(t *testing.T, name, slug string) *domain.Place {
	t.Helper()

	place := &domain.Place{
		Name: name,
		Slug: slug,
		Location: domain.Location{
			Type:        domain.GeometryPoint,
			Coordinates: [2]float64{-122.4194, 37.7749},
			Address:     "San Francisco, CA",
		},
		AuthorID: "user-test",
	}
	place.ID = id.MustGenerate("place")
	place.InitTimestamps()
	return place
}

func TestCreateAndGetPlace(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	place := newTestPlace(t, "Golden Gate Grill", "golden-gate-grill")
	require.NoError(t, s.CreatePlace(ctx, place))

	got, err := s.GetPlace(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, place.Name, got.Name)
	assert.Equal(t, place.Slug, got.Slug)
	assert.Equal(t, place.AuthorID, got.AuthorID)

	bySlug, err := s.GetPlaceBySlug(ctx, "golden-gate-grill")
	require.NoError(t, err)
	assert.Equal(t, place.ID, bySlug.ID)
}

func TestCreatePlaceSlugConflict(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := newTestPlace(t, "Taco Town", "taco-town")
	require.NoError(t, s.CreatePlace(ctx, first))

	second := newTestPlace(t, "Taco Town", "taco-town")
	err := s.CreatePlace(ctx, second)
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestUpdatePlaceMigratesSlugIndex(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	place := newTestPlace(t, "Old Name", "old-name")
	require.NoError(t, s.CreatePlace(ctx, place))

	place.Name = "New Name"
	place.Slug = "new-name"
	require.NoError(t, s.UpdatePlace(ctx, place))

	_, err := s.GetPlaceBySlug(ctx, "old-name")
	assert.ErrorIs(t, err, ErrPlaceNotFound)

	got, err := s.GetPlaceBySlug(ctx, "new-name")
	require.NoError(t, err)
	assert.Equal(t, place.ID, got.ID)
}

func TestDeletePlace(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	place := newTestPlace(t, "Short Lived", "short-lived")
	require.NoError(t, s.CreatePlace(ctx, place))
	require.NoError(t, s.DeletePlace(ctx, place.ID))

	_, err := s.GetPlace(ctx, place.ID)
	assert.ErrorIs(t, err, ErrPlaceNotFound)

	_, err = s.GetPlaceBySlug(ctx, "short-lived")
	assert.ErrorIs(t, err, ErrPlaceNotFound)

	// Deleted places never show up in listings
	places, err := s.ListPlaces(ctx)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestListPlacesNewestFirst(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	older := newTestPlace(t, "Older", "older")
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, s.CreatePlace(ctx, older))

	newer := newTestPlace(t, "Newer", "newer")
	require.NoError(t, s.CreatePlace(ctx, newer))

	places, err := s.ListPlaces(ctx)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Newer", places[0].Name)
	assert.Equal(t, "Older", places[1].Name)
}

func TestCountSlugsMatching(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, slug := range []string{"cafe", "cafe-1", "cafe-2", "cafeteria"} {
		require.NoError(t, s.CreatePlace(ctx, newTestPlace(t, slug, slug)))
	}

	count, err := s.CountSlugsMatching(ctx, util.SlugVariantPattern("cafe"))
	require.NoError(t, err)
	// "cafeteria" must not match the anchored pattern
	assert.Equal(t, 3, count)
}
