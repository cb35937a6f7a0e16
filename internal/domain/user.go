package domain

import "time"

// User represents a registered account.
type User struct {
	Syncable

	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"` // Never expose in API responses
	Name         string `json:"name"`

	// Favorites holds place IDs with set semantics: no duplicates,
	// toggled by the favorites service.
	Favorites []string `json:"favorites,omitempty"`

	// Password reset state. The token is stored hashed and is single use:
	// both fields are cleared when the reset completes.
	ResetTokenHash string     `json:"reset_token_hash,omitempty"`
	ResetExpiresAt *time.Time `json:"reset_expires_at,omitempty"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// HasFavorite returns true if the place is in the user's favorites.
func (u *User) HasFavorite(placeID string) bool {
	for _, favoriteID := range u.Favorites {
		if favoriteID == placeID {
			return true
		}
	}
	return false
}

// ToggleFavorite adds the place if absent, removes it if present.
// Returns true if the place is favorited after the toggle.
func (u *User) ToggleFavorite(placeID string) bool {
	for i, favoriteID := range u.Favorites {
		if favoriteID == placeID {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return false
		}
	}
	u.Favorites = append(u.Favorites, placeID)
	return true
}

// ClearResetToken removes any outstanding password reset token.
func (u *User) ClearResetToken() {
	u.ResetTokenHash = ""
	u.ResetExpiresAt = nil
}

// Session represents an authenticated refresh-token session.
type Session struct {
	Syncable

	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"refresh_token_hash"`
	ExpiresAt        time.Time `json:"expires_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	IPAddress        string    `json:"ip_address,omitempty"`
	UserAgent        string    `json:"user_agent,omitempty"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
