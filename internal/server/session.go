package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/lukee-d/friendify/internal/services"
	"github.com/lukee-d/friendify/internal/shared"
	"golang.org/x/oauth2"
)

const sessionName = "friendify_session"

// Session value keys.
const (
	keyToken       = "token"
	keyUserID      = "user_id"
	keyDisplayName = "display_name"
	keyOAuthState  = "oauth_state"
	keySoloTrack   = "solo_track"
)

// SessionManager wraps a cookie-backed session store. Tokens are stored as
// JSON so the whole oauth2.Token (refresh token and expiry included) survives
// round trips.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a SessionManager signing cookies with the given secret.
func NewSessionManager(secret string) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// session returns the request's session, falling back to a fresh one when the
// cookie fails to decode (e.g. after a secret rotation).
func (m *SessionManager) session(r *http.Request) *sessions.Session {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		session, _ = m.store.New(r, sessionName)
	}
	return session
}

// SetAuth stores the authenticated user's token and identity on the session.
func (m *SessionManager) SetAuth(w http.ResponseWriter, r *http.Request, token *oauth2.Token, profile *services.Profile) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	session := m.session(r)
	session.Values[keyToken] = string(data)
	session.Values[keyUserID] = profile.ID
	session.Values[keyDisplayName] = profile.DisplayName
	delete(session.Values, keyOAuthState)

	return session.Save(r, w)
}

// Token returns the session's OAuth token, or ErrNotAuthenticated when the
// session has none.
func (m *SessionManager) Token(r *http.Request) (*oauth2.Token, error) {
	raw, ok := m.session(r).Values[keyToken].(string)
	if !ok || raw == "" {
		return nil, shared.ErrNotAuthenticated
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return nil, fmt.Errorf("%w: corrupt session token", shared.ErrNotAuthenticated)
	}

	return &token, nil
}

// User returns the session's user id and display name.
func (m *SessionManager) User(r *http.Request) (id, displayName string, err error) {
	session := m.session(r)

	id, ok := session.Values[keyUserID].(string)
	if !ok || id == "" {
		return "", "", shared.ErrNotAuthenticated
	}

	displayName, _ = session.Values[keyDisplayName].(string)
	if displayName == "" {
		displayName = id
	}

	return id, displayName, nil
}

// SetOAuthState stores the login flow's CSRF nonce.
func (m *SessionManager) SetOAuthState(w http.ResponseWriter, r *http.Request, state string) error {
	session := m.session(r)
	session.Values[keyOAuthState] = state
	return session.Save(r, w)
}

// OAuthState returns the stored CSRF nonce, or empty when none is pending.
func (m *SessionManager) OAuthState(r *http.Request) string {
	state, _ := m.session(r).Values[keyOAuthState].(string)
	return state
}

// SetSoloTrack remembers which pool entry the solo player is currently
// guessing, keyed by exact name and artists.
func (m *SessionManager) SetSoloTrack(w http.ResponseWriter, r *http.Request, name, artists string) error {
	session := m.session(r)
	session.Values[keySoloTrack] = name + "\x00" + artists
	return session.Save(r, w)
}

// SoloTrack returns the solo question's name and artists, with ok false when
// no question is pending.
func (m *SessionManager) SoloTrack(r *http.Request) (name, artists string, ok bool) {
	raw, found := m.session(r).Values[keySoloTrack].(string)
	if !found {
		return "", "", false
	}

	for i := 0; i < len(raw); i++ {
		if raw[i] == 0 {
			return raw[:i], raw[i+1:], true
		}
	}
	return "", "", false
}
