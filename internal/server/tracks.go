package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lukee-d/friendify/internal/models"
	"github.com/lukee-d/friendify/internal/repositories"
	"github.com/lukee-d/friendify/internal/services"
	"github.com/lukee-d/friendify/internal/shared"
)

// TrackHandler serves the home page, which refreshes the signed-in user's
// snapshot on every visit, and the shared saved-tracks listing.
type TrackHandler struct {
	mux       *http.ServeMux
	service   services.Service
	sessions  *SessionManager
	snapshots *repositories.SnapshotRepository
	config    shared.GameConfig
	views     *Views
	logger    *log.Logger
}

// NewTrackHandler creates the track pages handler.
func NewTrackHandler(service services.Service, sessions *SessionManager, snapshots *repositories.SnapshotRepository, config shared.GameConfig, views *Views, logger *log.Logger) *TrackHandler {
	h := &TrackHandler{
		mux:       http.NewServeMux(),
		service:   service,
		sessions:  sessions,
		snapshots: snapshots,
		config:    config,
		views:     views,
		logger:    logger,
	}
	h.mux.HandleFunc("GET /{$}", h.home)
	h.mux.HandleFunc("GET /saved_tracks", h.savedTracks)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *TrackHandler) Routes() []string {
	return []string{"/{$}", "/saved_tracks"}
}

func (h *TrackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type homePage struct {
	DisplayName string
	Tracks      []models.TrackInfo
}

// home fetches the user's current top tracks, replaces their stored snapshot,
// and greets them. An expired token sends them back through login.
func (h *TrackHandler) home(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessions.Token(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	userID, displayName, err := h.sessions.User(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	tracks, err := h.service.TopTracks(r.Context(), token, h.config.TopTracksLimit, h.config.TimeRange)
	if err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		fail(h.views, h.logger, w, err)
		return
	}

	if err := h.snapshots.Save(models.NewUser(0, userID, displayName), tracks); err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	h.views.Render(w, "home.html", homePage{DisplayName: displayName, Tracks: tracks})
}

type savedTracksPage struct {
	Snapshots []models.Snapshot
}

// savedTracks lists every registered user's snapshot.
func (h *TrackHandler) savedTracks(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshots.List()
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	h.views.Render(w, "saved_tracks.html", savedTracksPage{Snapshots: snapshots})
}
