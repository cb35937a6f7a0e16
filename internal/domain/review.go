package domain

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating and commentary for a place.
type Review struct {
	Syncable

	AuthorID string `json:"author_id"`
	PlaceID  string `json:"place_id"`
	Rating   int    `json:"rating"`
	Text     string `json:"text,omitempty"`
}
