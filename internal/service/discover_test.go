package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCountsSortedByCountThenTag(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := registerTestUser(t, env, "Ada", "ada@example.com")
	createTestPlace(t, env, owner.User.ID, "Taco Stand", []string{"mexican", "cheap"}, nil)
	createTestPlace(t, env, owner.User.ID, "Burrito Bus", []string{"mexican", "cheap"}, nil)
	createTestPlace(t, env, owner.User.ID, "Sushi Bar", []string{"japanese"}, nil)

	tags, err := env.discover.TagCounts(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 3)

	// "cheap" and "mexican" tie at 2; alphabetical order breaks the tie
	assert.Equal(t, TagCount{Tag: "cheap", Count: 2}, tags[0])
	assert.Equal(t, TagCount{Tag: "mexican", Count: 2}, tags[1])
	assert.Equal(t, TagCount{Tag: "japanese", Count: 1}, tags[2])
}

func TestTopRatedRequiresTwoReviews(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	ada := registerTestUser(t, env, "Ada", "ada@example.com")
	grace := registerTestUser(t, env, "Grace", "grace@example.com")

	good := createTestPlace(t, env, ada.User.ID, "Good Spot", nil, nil)
	better := createTestPlace(t, env, ada.User.ID, "Better Spot", nil, nil)
	lonely := createTestPlace(t, env, ada.User.ID, "Lonely Spot", nil, nil)

	addReview := func(userID, placeID string, rating int) {
		t.Helper()
		_, err := env.reviews.Add(ctx, userID, placeID, AddReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	addReview(ada.User.ID, good.ID, 3)
	addReview(grace.User.ID, good.ID, 4)
	addReview(ada.User.ID, better.ID, 5)
	addReview(grace.User.ID, better.ID, 5)
	addReview(ada.User.ID, lonely.ID, 5) // Only one review, excluded

	top, err := env.discover.TopRated(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, "better-spot", top[0].Slug)
	assert.Equal(t, 5.0, top[0].AverageRating)
	assert.Equal(t, 2, top[0].ReviewCount)
	assert.Equal(t, "good-spot", top[1].Slug)
	assert.Equal(t, 3.5, top[1].AverageRating)
}

func TestTopRatedLimit(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	ada := registerTestUser(t, env, "Ada", "ada@example.com")
	grace := registerTestUser(t, env, "Grace", "grace@example.com")

	for i := 0; i < 12; i++ {
		place := createTestPlace(t, env, ada.User.ID, "Crowded Spot "+string(rune('A'+i)), nil, nil)
		for _, userID := range []string{ada.User.ID, grace.User.ID} {
			_, err := env.reviews.Add(ctx, userID, place.ID, AddReviewRequest{Rating: 4})
			require.NoError(t, err)
		}
	}

	top, err := env.discover.TopRated(ctx)
	require.NoError(t, err)
	assert.Len(t, top, 10)
}

func TestNearbyThroughIndex(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := registerTestUser(t, env, "Ada", "ada@example.com")

	createTestPlace(t, env, owner.User.ID, "Close Cafe", nil, &LocationInput{
		Lng: -122.4150, Lat: 37.7760, Address: "close by",
	})
	createTestPlace(t, env, owner.User.ID, "Far Cafe", nil, &LocationInput{
		Lng: -122.2700, Lat: 37.8700, Address: "across the bay",
	})

	nearby, err := env.discover.Nearby(ctx, -122.4194, 37.7749)
	require.NoError(t, err)
	require.Len(t, nearby, 1, "places beyond 10km are excluded")
	assert.Equal(t, "close-cafe", nearby[0].Slug)
	assert.Equal(t, "close by", nearby[0].Location.Address)
}

func TestSearchThroughIndex(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := registerTestUser(t, env, "Ada", "ada@example.com")
	createTestPlace(t, env, owner.User.ID, "Burger Barn", nil, nil)
	createTestPlace(t, env, owner.User.ID, "Sushi Bar", nil, nil)

	results, err := env.discover.Search(ctx, "burger")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "burger-barn", results[0].Slug)
}

func TestSearchDropsDeletedPlaces(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := registerTestUser(t, env, "Ada", "ada@example.com")
	place := createTestPlace(t, env, owner.User.ID, "Vanishing Venue", nil, nil)

	require.NoError(t, env.places.Delete(ctx, owner.User.ID, place.ID))

	results, err := env.discover.Search(ctx, "vanishing")
	require.NoError(t, err)
	assert.Empty(t, results)
}
