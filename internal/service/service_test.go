package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tastemapapp/tastemap-server/internal/auth"
	"github.com/tastemapapp/tastemap-server/internal/domain"
	"github.com/tastemapapp/tastemap-server/internal/mail"
	"github.com/tastemapapp/tastemap-server/internal/search"
	"github.com/tastemapapp/tastemap-server/internal/store"
	"github.com/tastemapapp/tastemap-server/internal/validation"
)

const testTokenKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testEnv bundles everything the service tests need.
type testEnv struct {
	store    *store.Store
	index    *search.PlaceIndex
	auth     *AuthService
	sessions *SessionService
	reset    *PasswordResetService
	places   *PlaceService
	reviews  *ReviewService
	favs     *FavoriteService
	discover *DiscoverService
	mailer   *captureMailer
}

// captureMailer records outbound messages instead of sending them.
type captureMailer struct {
	messages []mail.Message
}

func (m *captureMailer) Send(_ context.Context, msg mail.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tastemap-service-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := store.New(filepath.Join(tmpDir, "db"), logger)
	require.NoError(t, err)

	idx, err := search.NewPlaceIndex(search.Options{
		DataPath: tmpDir,
		Logger:   logger,
	})
	require.NoError(t, err)

	// Wire the index so place writes flow into search
	searchService := NewSearchService(s, idx, logger)
	s.SetSearchIndexer(searchService)

	tokenService, err := auth.NewTokenService(testTokenKey, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	v := validation.New()
	mailer := &captureMailer{}

	sessionService := NewSessionService(s, tokenService, logger)

	env := &testEnv{
		store:    s,
		index:    idx,
		sessions: sessionService,
		auth:     NewAuthService(s, tokenService, sessionService, v, logger),
		reset:    NewPasswordResetService(s, mailer, v, logger, "TasteMap", "http://localhost:8080"),
		places:   NewPlaceService(s, nil, v, logger),
		reviews:  NewReviewService(s, v, logger),
		favs:     NewFavoriteService(s, logger),
		discover: NewDiscoverService(s, idx, logger),
		mailer:   mailer,
	}

	t.Cleanup(func() {
		_ = idx.Close()
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return env
}

// registerTestUser creates a user and returns it with its session.
func registerTestUser(t *testing.T, env *testEnv, name, email string) *AuthResponse {
	t.Helper()

	resp, err := env.auth.Register(context.Background(), RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return resp
}

// createTestPlace creates a place owned by the given user. Location is
// mandatory on every place, so callers that don't care get a default.
func createTestPlace(t *testing.T, env *testEnv, authorID, name string, tags []string, loc *LocationInput) *domain.Place {
	t.Helper()

	if loc == nil {
		loc = &LocationInput{Lng: -122.4194, Lat: 37.7749, Address: "1 Test St"}
	}

	place, err := env.places.Create(context.Background(), authorID, CreatePlaceRequest{
		Name:        name,
		Description: "a test place",
		Tags:        tags,
		Location:    loc,
	})
	require.NoError(t, err)
	return place
}
