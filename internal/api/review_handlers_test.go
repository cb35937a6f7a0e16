package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastemapapp/tastemap-server/internal/domain"
)

func TestAddReview_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	owner := ts.registerTestUser(t, "Owner", "owner@example.com")
	reviewer := ts.registerTestUser(t, "Reviewer", "reviewer@example.com")

	place := ts.createTestPlace(t, owner.AccessToken, map[string]any{"name": "Curry Corner"})
	placeID, _ := place["id"].(string)

	resp := ts.api.Post("/api/v1/places/id/"+placeID+"/reviews",
		"Authorization: Bearer "+reviewer.AccessToken,
		map[string]any{"rating": 4, "text": "Solid vindaloo"})

	require.Equal(t, http.StatusOK, resp.Code, "Body: %s", resp.Body.String())

	var envelope testEnvelope[domain.Review]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, 4, envelope.Data.Rating)
	assert.Equal(t, "Solid vindaloo", envelope.Data.Text)
	assert.Equal(t, reviewer.User.ID, envelope.Data.AuthorID)
	assert.Equal(t, placeID, envelope.Data.PlaceID)
}

func TestAddReview_RatingOutOfRange(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	user := ts.registerTestUser(t, "Ada Lovelace", "ada@example.com")
	place := ts.createTestPlace(t, user.AccessToken, map[string]any{"name": "Curry Corner"})
	placeID, _ := place["id"].(string)

	for _, rating := range []int{0, 6, -1} {
		resp := ts.api.Post("/api/v1/places/id/"+placeID+"/reviews",
			"Authorization: Bearer "+user.AccessToken,
			map[string]any{"rating": rating})

		assert.GreaterOrEqual(t, resp.Code, 400, "Rating %d should be rejected", rating)
		assert.Less(t, resp.Code, 500)
	}
}

func TestAddReview_PlaceNotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	user := ts.registerTestUser(t, "Ada Lovelace", "ada@example.com")

	resp := ts.api.Post("/api/v1/places/id/place_missing/reviews",
		"Authorization: Bearer "+user.AccessToken,
		map[string]any{"rating": 5})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAddReview_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	user := ts.registerTestUser(t, "Ada Lovelace", "ada@example.com")
	place := ts.createTestPlace(t, user.AccessToken, map[string]any{"name": "Curry Corner"})
	placeID, _ := place["id"].(string)

	resp := ts.api.Post("/api/v1/places/id/"+placeID+"/reviews",
		map[string]any{"rating": 5})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestListReviews_NewestFirstWithAuthors(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	owner := ts.registerTestUser(t, "Owner", "owner@example.com")
	alice := ts.registerTestUser(t, "Alice", "alice@example.com")
	bob := ts.registerTestUser(t, "Bob", "bob@example.com")

	place := ts.createTestPlace(t, owner.AccessToken, map[string]any{"name": "Curry Corner"})
	placeID, _ := place["id"].(string)

	resp := ts.api.Post("/api/v1/places/id/"+placeID+"/reviews",
		"Authorization: Bearer "+alice.AccessToken,
		map[string]any{"rating": 5, "text": "Best curry in town"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/places/id/"+placeID+"/reviews",
		"Authorization: Bearer "+bob.AccessToken,
		map[string]any{"rating": 3, "text": "A bit salty"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/places/id/" + placeID + "/reviews")
	require.Equal(t, http.StatusOK, resp.Code, "Body: %s", resp.Body.String())

	var envelope testEnvelope[ReviewListResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	require.Len(t, envelope.Data.Reviews, 2)

	names := make(map[string]int)
	for _, review := range envelope.Data.Reviews {
		require.NotNil(t, review.Author, "Every review carries its author")
		names[review.Author.Name] = review.Rating
	}
	assert.Equal(t, 5, names["Alice"])
	assert.Equal(t, 3, names["Bob"])
}

func TestListReviews_PlaceNotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/places/id/place_missing/reviews")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListReviews_Empty(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	user := ts.registerTestUser(t, "Ada Lovelace", "ada@example.com")
	place := ts.createTestPlace(t, user.AccessToken, map[string]any{"name": "Curry Corner"})
	placeID, _ := place["id"].(string)

	resp := ts.api.Get("/api/v1/places/id/" + placeID + "/reviews")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ReviewListResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Empty(t, envelope.Data.Reviews)
}
