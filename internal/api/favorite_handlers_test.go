package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastemapapp/tastemap-server/internal/service"
)

func TestToggleFavorite_RoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	user := ts.registerTestUser(t, "Ada Lovelace", "ada@example.com")
	place := ts.createTestPlace(t, user.AccessToken, map[string]any{"name": "Gelato Stop"})
	placeID, _ := place["id"].(string)

	// First toggle favorites the place.
	resp := ts.api.Post("/api/v1/places/id/"+placeID+"/favorite",
		"Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code, "Body: %s", resp.Body.String())

	var envelope testEnvelope[service.ToggleResult]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Data.Favorited)
	assert.Equal(t, []string{placeID}, envelope.Data.Favorites)

	// Second toggle removes it.
	resp = ts.api.Post("/api/v1/places/id/"+placeID+"/favorite",
		"Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	err = json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.False(t, envelope.Data.Favorited)
	assert.Empty(t, envelope.Data.Favorites)
}

func TestToggleFavorite_PlaceNotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	user := ts.registerTestUser(t, "Ada Lovelace", "ada@example.com")

	resp := ts.api.Post("/api/v1/places/id/place_missing/favorite",
		"Authorization: Bearer "+user.AccessToken)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListFavorites(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	user := ts.registerTestUser(t, "Ada Lovelace", "ada@example.com")

	first := ts.createTestPlace(t, user.AccessToken, map[string]any{"name": "Gelato Stop"})
	second := ts.createTestPlace(t, user.AccessToken, map[string]any{"name": "Pizza Palace"})
	firstID, _ := first["id"].(string)
	secondID, _ := second["id"].(string)

	for _, placeID := range []string{firstID, secondID} {
		resp := ts.api.Post("/api/v1/places/id/"+placeID+"/favorite",
			"Authorization: Bearer "+user.AccessToken)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/favorites", "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code, "Body: %s", resp.Body.String())

	var envelope testEnvelope[FavoriteListResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	require.Len(t, envelope.Data.Places, 2)

	ids := []string{envelope.Data.Places[0].ID, envelope.Data.Places[1].ID}
	assert.Contains(t, ids, firstID)
	assert.Contains(t, ids, secondID)
}

func TestListFavorites_SkipsDeletedPlaces(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	user := ts.registerTestUser(t, "Ada Lovelace", "ada@example.com")

	place := ts.createTestPlace(t, user.AccessToken, map[string]any{"name": "Gelato Stop"})
	placeID, _ := place["id"].(string)

	resp := ts.api.Post("/api/v1/places/id/"+placeID+"/favorite",
		"Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/places/id/"+placeID, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/favorites", "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[FavoriteListResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Empty(t, envelope.Data.Places)
}

func TestListFavorites_Empty(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	user := ts.registerTestUser(t, "Ada Lovelace", "ada@example.com")

	resp := ts.api.Get("/api/v1/favorites", "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[FavoriteListResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Empty(t, envelope.Data.Places)
}
