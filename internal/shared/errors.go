package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrInvalidState     = fmt.Errorf("invalid state parameter")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMalformedResponse  = fmt.Errorf("malformed API response")

	// Persistence errors
	ErrSnapshotNotFound = fmt.Errorf("snapshot not found")
	ErrStaleState       = fmt.Errorf("lobby state version conflict")

	// Game errors
	ErrLobbyNotFound  = fmt.Errorf("lobby not found")
	ErrCodeTaken      = fmt.Errorf("lobby code already in use")
	ErrEmptyTrackPool = fmt.Errorf("no users have saved tracks")
	ErrGameNotStarted = fmt.Errorf("game not started")
	ErrGameFinished   = fmt.Errorf("game finished")
	ErrStaleRound     = fmt.Errorf("round already advanced")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
