package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/tastemapapp/tastemap-server/internal/errors"
)

func TestAddReview(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := registerTestUser(t, env, "Ada", "ada@example.com")
	place := createTestPlace(t, env, owner.User.ID, "Noodle House", nil, nil)

	review, err := env.reviews.Add(ctx, owner.User.ID, place.ID, AddReviewRequest{
		Rating: 4,
		Text:   "solid bowls",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, place.ID, review.PlaceID)
}

func TestAddReviewRatingBounds(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	owner := registerTestUser(t, env, "Ada", "ada@example.com")
	place := createTestPlace(t, env, owner.User.ID, "Noodle House", nil, nil)

	for _, rating := range []int{0, 6, -1} {
		_, err := env.reviews.Add(ctx, owner.User.ID, place.ID, AddReviewRequest{Rating: rating})
		require.Error(t, err, "rating %d must be rejected", rating)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	}
}

func TestAddReviewUnknownPlace(t *testing.T) {
	env := setupServices(t)

	owner := registerTestUser(t, env, "Ada", "ada@example.com")

	_, err := env.reviews.Add(context.Background(), owner.User.ID, "place-missing", AddReviewRequest{Rating: 3})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestListReviewsNewestFirstWithAuthors(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	ada := registerTestUser(t, env, "Ada", "ada@example.com")
	grace := registerTestUser(t, env, "Grace", "grace@example.com")
	place := createTestPlace(t, env, ada.User.ID, "Noodle House", nil, nil)

	_, err := env.reviews.Add(ctx, ada.User.ID, place.ID, AddReviewRequest{Rating: 5, Text: "first"})
	require.NoError(t, err)
	_, err = env.reviews.Add(ctx, grace.User.ID, place.ID, AddReviewRequest{Rating: 3, Text: "second"})
	require.NoError(t, err)

	reviews, err := env.reviews.ListForPlace(ctx, place.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "second", reviews[0].Text)
	require.NotNil(t, reviews[0].Author)
	assert.Equal(t, "Grace", reviews[0].Author.Name)
	assert.Equal(t, "Ada", reviews[1].Author.Name)
}

func TestToggleFavorite(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	user := registerTestUser(t, env, "Ada", "ada@example.com")
	place := createTestPlace(t, env, user.User.ID, "Noodle House", nil, nil)

	// First toggle adds
	result, err := env.favs.Toggle(ctx, user.User.ID, place.ID)
	require.NoError(t, err)
	assert.True(t, result.Favorited)
	assert.Equal(t, []string{place.ID}, result.Favorites)

	// Second toggle removes
	result, err = env.favs.Toggle(ctx, user.User.ID, place.ID)
	require.NoError(t, err)
	assert.False(t, result.Favorited)
	assert.Empty(t, result.Favorites)
}

func TestToggleFavoriteNeverDuplicates(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	user := registerTestUser(t, env, "Ada", "ada@example.com")
	place := createTestPlace(t, env, user.User.ID, "Noodle House", nil, nil)

	for i := 0; i < 5; i++ {
		_, err := env.favs.Toggle(ctx, user.User.ID, place.ID)
		require.NoError(t, err)
	}

	// Odd number of toggles leaves exactly one entry
	result, err := env.favs.Toggle(ctx, user.User.ID, place.ID)
	require.NoError(t, err)
	assert.False(t, result.Favorited)
	assert.Empty(t, result.Favorites)
}

func TestToggleFavoriteUnknownPlace(t *testing.T) {
	env := setupServices(t)

	user := registerTestUser(t, env, "Ada", "ada@example.com")

	_, err := env.favs.Toggle(context.Background(), user.User.ID, "place-missing")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestListFavoritesHydratesAndSkipsDeleted(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	user := registerTestUser(t, env, "Ada", "ada@example.com")
	keep := createTestPlace(t, env, user.User.ID, "Keeper", nil, nil)
	gone := createTestPlace(t, env, user.User.ID, "Goner", nil, nil)

	_, err := env.favs.Toggle(ctx, user.User.ID, keep.ID)
	require.NoError(t, err)
	_, err = env.favs.Toggle(ctx, user.User.ID, gone.ID)
	require.NoError(t, err)

	require.NoError(t, env.places.Delete(ctx, user.User.ID, gone.ID))

	favorites, err := env.favs.List(ctx, user.User.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "keeper", favorites[0].Slug)
}
