package search

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
)

func setupTestIndex(t *testing.T) (*PlaceIndex, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tastemap-search-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	idx, err := NewPlaceIndex(Options{DataPath: tmpDir, Logger: logger})
	require.NoError(t, err)

	cleanup := func() {
		_ = idx.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return idx, cleanup
}

func indexTestPlace(t *testing.T, idx *PlaceIndex, id, name, description string, lng, lat float64) {
	t.Helper()

	place := &domain.Place{
		Name:        name,
		Slug:        id, // Slug mirrors the ID for easy assertions
		Description: description,
		Location: domain.Location{
			Type:        domain.GeometryPoint,
			Coordinates: [2]float64{lng, lat},
			Address:     "somewhere",
		},
	}
	place.ID = id
	place.CreatedAt = time.Now()

	require.NoError(t, idx.IndexDocument(PlaceToDocument(place)))
}

func TestTextSearchRanksNameAboveDescription(t *testing.T) {
	idx, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	indexTestPlace(t, idx, "place-1", "Burger Barn", "best patties in town", -122.4194, 37.7749)
	indexTestPlace(t, idx, "place-2", "Vegan Garden", "no burger here, only greens and a burger-shaped beet", -122.42, 37.77)
	indexTestPlace(t, idx, "place-3", "Noodle House", "ramen and dumplings", -122.43, 37.76)

	hits, err := idx.TextSearch(ctx, "burger", 6)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "place-1", hits[0].ID, "name match should outrank description match")
	assert.Equal(t, "place-2", hits[1].ID)
}

func TestTextSearchHonorsLimit(t *testing.T) {
	idx, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		id := "place-" + string(rune('a'+i))
		indexTestPlace(t, idx, id, "Taco Stand "+id, "tacos", -122.4, 37.7)
	}

	hits, err := idx.TextSearch(ctx, "taco", 6)
	require.NoError(t, err)
	assert.Len(t, hits, 6)
}

func TestNearFiltersAndSortsByDistance(t *testing.T) {
	idx, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	center := [2]float64{-122.4194, 37.7749} // San Francisco

	indexTestPlace(t, idx, "place-close", "Close Cafe", "", -122.4150, 37.7760)  // < 1 km
	indexTestPlace(t, idx, "place-mid", "Mid Cafe", "", -122.4700, 37.7500)     // ~ 5 km
	indexTestPlace(t, idx, "place-far", "Far Cafe", "", -122.2700, 37.8700)     // > 10 km, excluded
	indexTestPlace(t, idx, "place-center", "Center Cafe", "", center[0], center[1])

	hits, err := idx.Near(ctx, center[0], center[1], 10000, 8)
	require.NoError(t, err)
	require.Len(t, hits, 3, "places beyond 10km must be excluded")

	assert.Equal(t, "place-center", hits[0].ID)
	assert.Equal(t, "place-close", hits[1].ID)
	assert.Equal(t, "place-mid", hits[2].ID)
}

func TestDeleteDocumentRemovesFromResults(t *testing.T) {
	idx, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	indexTestPlace(t, idx, "place-1", "Ephemeral Eats", "", -122.4, 37.7)
	require.NoError(t, idx.DeleteDocument("place-1"))

	hits, err := idx.TextSearch(ctx, "ephemeral", 6)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
