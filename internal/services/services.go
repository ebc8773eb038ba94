// package services defines interface Service for interacting with the music catalog API
package services

import (
	"context"

	"github.com/lukee-d/friendify/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the interface for a music service provider that can report a
// user's profile and top tracks.
//
// Unlike a single-user CLI session, the web app serves many users concurrently,
// so methods take the caller's token instead of holding one on the service.
type Service interface {
	// AuthURL returns the OAuth2 authorization URL for user login.
	// The state token should be cryptographically random for CSRF protection.
	AuthURL(state string) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// UserProfile retrieves the profile of the user the token belongs to.
	UserProfile(ctx context.Context, token *oauth2.Token) (*Profile, error)

	// TopTracks retrieves the user's top tracks, most-listened first.
	// timeRange is service-specific (e.g. "short_term").
	TopTracks(ctx context.Context, token *oauth2.Token, limit int, timeRange string) ([]models.TrackInfo, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// Profile identifies an authenticated user.
type Profile struct {
	ID          string
	DisplayName string
}
