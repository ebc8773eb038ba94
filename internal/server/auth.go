package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lukee-d/friendify/internal/services"
	"github.com/lukee-d/friendify/internal/shared"
)

// AuthHandler owns the OAuth2 login flow: /login redirects to the provider,
// /callback exchanges the authorization code and establishes the session.
type AuthHandler struct {
	mux      *http.ServeMux
	service  services.Service
	sessions *SessionManager
	views    *Views
	logger   *log.Logger
}

// NewAuthHandler creates the login flow handler.
func NewAuthHandler(service services.Service, sessions *SessionManager, views *Views, logger *log.Logger) *AuthHandler {
	h := &AuthHandler{
		mux:      http.NewServeMux(),
		service:  service,
		sessions: sessions,
		views:    views,
		logger:   logger,
	}
	h.mux.HandleFunc("GET /login", h.login)
	h.mux.HandleFunc("GET /callback", h.callback)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{"/login", "/callback"}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// login stores a fresh CSRF nonce on the session and redirects to the
// provider's consent page.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	state := shared.GenerateID()
	if err := h.sessions.SetOAuthState(w, r, state); err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	http.Redirect(w, r, h.service.AuthURL(state), http.StatusFound)
}

// callback validates the state nonce, exchanges the code, resolves the user's
// profile, and signs them in.
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" || state != h.sessions.OAuthState(r) {
		h.logger.Warn("oauth callback with bad state")
		h.views.RenderStatus(w, http.StatusBadRequest, "message.html", messagePage{
			Title:   "Login failed",
			Message: "The login attempt could not be verified. Please try again.",
			BackURL: "/login",
		})
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.logger.Warn("oauth callback denied",
			"error", r.URL.Query().Get("error"),
			"description", r.URL.Query().Get("error_description"))
		h.views.RenderStatus(w, http.StatusBadRequest, "message.html", messagePage{
			Title:   "Login failed",
			Message: "Authorization was denied by " + h.service.Name() + ".",
			BackURL: "/login",
		})
		return
	}

	token, err := h.service.Exchange(r.Context(), code)
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	profile, err := h.service.UserProfile(r.Context(), token)
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	if err := h.sessions.SetAuth(w, r, token, profile); err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	h.logger.Info("user signed in", "user", profile.ID)
	http.Redirect(w, r, "/", http.StatusFound)
}
