// Package main provides a tool to seed the database with sample directory data.
//
// This creates a handful of test users, food places around San Francisco, and
// reviews so that discovery, search, and rating features have data to work with.
//
// Usage:
//
//	DATA_PATH=~/TasteMap/data go run ./cmd/seed
//	DATA_PATH=~/TasteMap/data go run ./cmd/seed --with-reviews=false
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/tastemapapp/tastemap-server/internal/auth"
	"github.com/tastemapapp/tastemap-server/internal/domain"
	"github.com/tastemapapp/tastemap-server/internal/id"
	"github.com/tastemapapp/tastemap-server/internal/store"
	"github.com/tastemapapp/tastemap-server/internal/util"
)

var withReviews = flag.Bool("with-reviews", true, "Create sample reviews for the seeded places")

// seedPassword is shared by all seeded accounts. Fine for local testing only.
const seedPassword = "TasteMap123!"

type seedUser struct {
	name  string
	email string
}

var seedUsers = []seedUser{
	{"Alex Rivera", "alex@example.com"},
	{"Jordan Chen", "jordan@example.com"},
	{"Sam Taylor", "sam@example.com"},
	{"Casey Morgan", "casey@example.com"},
}

type seedPlace struct {
	name        string
	description string
	tags        []string
	lng, lat    float64
	address     string
}

// Coordinates are real San Francisco locations so nearby queries behave sensibly.
var seedPlaces = []seedPlace{
	{
		name:        "Mission Tacos",
		description: "Late-night taqueria with al pastor straight off the trompo.",
		tags:        []string{"mexican", "tacos", "late-night"},
		lng:         -122.4194, lat: 37.7601,
		address: "2288 Mission St, San Francisco, CA",
	},
	{
		name:        "Golden Gate Pho",
		description: "Steaming bowls of pho and a self-serve herb station.",
		tags:        []string{"vietnamese", "noodles", "soup"},
		lng:         -122.4330, lat: 37.7850,
		address: "601 Larkin St, San Francisco, CA",
	},
	{
		name:        "Ferry Plaza Oysters",
		description: "Oysters shucked to order with a view of the bay.",
		tags:        []string{"seafood", "oysters"},
		lng:         -122.3933, lat: 37.7955,
		address: "1 Ferry Building, San Francisco, CA",
	},
	{
		name:        "Sunset Bánh Mì",
		description: "Crusty baguettes, house pâté, and strong iced coffee.",
		tags:        []string{"vietnamese", "sandwiches", "takeout"},
		lng:         -122.4750, lat: 37.7646,
		address: "1900 Irving St, San Francisco, CA",
	},
	{
		name:        "North Beach Slice House",
		description: "Thin-crust pizza by the slice until 2am on weekends.",
		tags:        []string{"pizza", "italian", "late-night"},
		lng:         -122.4097, lat: 37.7999,
		address: "1556 Stockton St, San Francisco, CA",
	},
	{
		name:        "Chinatown Dim Sum Palace",
		description: "Cart service on weekends, har gow worth the queue.",
		tags:        []string{"chinese", "dim-sum"},
		lng:         -122.4067, lat: 37.7941,
		address: "919 Grant Ave, San Francisco, CA",
	},
	{
		name:        "Haight Street Falafel",
		description: "Falafel wraps with house pickles and amba.",
		tags:        []string{"middle-eastern", "vegan", "takeout"},
		lng:         -122.4469, lat: 37.7692,
		address: "1600 Haight St, San Francisco, CA",
	},
	{
		name:        "Dogpatch Smokehouse",
		description: "Texas-style brisket that sells out by early afternoon.",
		tags:        []string{"bbq", "american"},
		lng:         -122.3893, lat: 37.7576,
		address: "2505 Third St, San Francisco, CA",
	},
}

var reviewTexts = []string{
	"Absolutely worth the wait.",
	"Solid spot, friendly staff.",
	"Portions are generous for the price.",
	"A bit crowded at peak hours but the food delivers.",
	"My new neighborhood regular.",
	"Good, not great. Would still come back.",
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/TasteMap/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := store.New(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	users := createUsers(ctx, s)
	places := createPlaces(ctx, s, users)

	if *withReviews {
		createReviews(ctx, s, users, places)
	}

	fmt.Println("\nSeeding complete!")
	fmt.Printf("All seeded accounts use the password: %s\n", seedPassword)
}

// createUsers creates the sample accounts, reusing any that already exist.
func createUsers(ctx context.Context, s *store.Store) []*domain.User {
	fmt.Println("\n=== Creating Users ===")

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var users []*domain.User
	for _, su := range seedUsers {
		user := &domain.User{
			Email:        su.email,
			PasswordHash: hash,
			Name:         su.name,
		}
		user.ID = id.MustGenerate("user")
		user.InitTimestamps()

		err := s.CreateUser(ctx, user)
		switch {
		case errors.Is(err, store.ErrEmailExists):
			existing, err := s.GetUserByEmail(ctx, su.email)
			if err != nil {
				log.Fatalf("Failed to load existing user %s: %v", su.email, err)
			}
			fmt.Printf("  Exists:  %s (%s)\n", su.name, su.email)
			users = append(users, existing)
		case err != nil:
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		default:
			fmt.Printf("  Created: %s (%s)\n", su.name, su.email)
			users = append(users, user)
		}
	}

	return users
}

// createPlaces creates the sample places, assigning authors round-robin.
func createPlaces(ctx context.Context, s *store.Store, users []*domain.User) []*domain.Place {
	fmt.Println("\n=== Creating Places ===")

	var places []*domain.Place
	for i, sp := range seedPlaces {
		place := &domain.Place{
			Name:        sp.name,
			Slug:        util.NormalizeSlug(sp.name),
			Description: sp.description,
			Tags:        sp.tags,
			Location: domain.Location{
				Type:        domain.GeometryPoint,
				Coordinates: [2]float64{sp.lng, sp.lat},
				Address:     sp.address,
			},
			AuthorID: users[i%len(users)].ID,
		}
		place.ID = id.MustGenerate("place")
		place.InitTimestamps()

		err := s.CreatePlace(ctx, place)
		switch {
		case errors.Is(err, store.ErrSlugExists):
			existing, err := s.GetPlaceBySlug(ctx, place.Slug)
			if err != nil {
				log.Fatalf("Failed to load existing place %s: %v", place.Slug, err)
			}
			fmt.Printf("  Exists:  %s\n", sp.name)
			places = append(places, existing)
		case err != nil:
			log.Fatalf("Failed to create place %s: %v", sp.name, err)
		default:
			fmt.Printf("  Created: %s (%s)\n", sp.name, place.Slug)
			places = append(places, place)
		}
	}

	return places
}

// createReviews creates 1-3 reviews per place from users other than the author.
func createReviews(ctx context.Context, s *store.Store, users []*domain.User, places []*domain.Place) {
	fmt.Println("\n=== Creating Reviews ===")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for _, place := range places {
		existing, err := s.ListReviewsForPlace(ctx, place.ID)
		if err != nil {
			log.Printf("Failed to list reviews for %s: %v", place.Name, err)
			continue
		}
		if len(existing) > 0 {
			fmt.Printf("  Skipping %s: already has %d reviews\n", place.Name, len(existing))
			continue
		}

		numReviews := 1 + rng.Intn(3)
		for range numReviews {
			reviewer := users[rng.Intn(len(users))]
			if reviewer.ID == place.AuthorID {
				continue
			}

			review := &domain.Review{
				AuthorID: reviewer.ID,
				PlaceID:  place.ID,
				Rating:   3 + rng.Intn(3),
				Text:     reviewTexts[rng.Intn(len(reviewTexts))],
			}
			review.ID = id.MustGenerate("review")
			review.InitTimestamps()

			if err := s.CreateReview(ctx, review); err != nil {
				log.Printf("Failed to create review for %s: %v", place.Name, err)
				continue
			}
			created++
		}
	}

	fmt.Printf("  Created %d reviews\n", created)
}
