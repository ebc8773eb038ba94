package server

import (
	"math/rand/v2"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lukee-d/friendify/internal/game"
	"github.com/lukee-d/friendify/internal/models"
)

// SoloHandler serves the single-player game: one random track from the pool
// across every registered user, with the full candidate list as choices.
type SoloHandler struct {
	mux      *http.ServeMux
	registry *game.Registry
	sessions *SessionManager
	views    *Views
	logger   *log.Logger
}

// NewSoloHandler creates the solo game handler.
func NewSoloHandler(registry *game.Registry, sessions *SessionManager, views *Views, logger *log.Logger) *SoloHandler {
	h := &SoloHandler{
		mux:      http.NewServeMux(),
		registry: registry,
		sessions: sessions,
		views:    views,
		logger:   logger,
	}
	h.mux.HandleFunc("GET /game", h.question)
	h.mux.HandleFunc("POST /game/guess", h.guess)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *SoloHandler) Routes() []string {
	return []string{"/game", "/game/guess"}
}

func (h *SoloHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type soloPage struct {
	Track   models.TrackInfo
	Choices []string
}

// question draws a random pool entry, remembers it on the session, and renders
// the choices.
func (h *SoloHandler) question(w http.ResponseWriter, r *http.Request) {
	pool, candidates, err := h.registry.GlobalPool()
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	entry := pool[rand.IntN(len(pool))]
	if err := h.sessions.SetSoloTrack(w, r, entry.Track.Name, entry.Track.Artists); err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	h.views.Render(w, "solo.html", soloPage{Track: entry.Track, Choices: candidates})
}

type soloVerdictPage struct {
	Correct bool
	Track   models.TrackInfo
	Owners  []string
}

// guess checks the submitted name against the session's pending question. The
// owners come from the stored pool, never from the request; if the pool no
// longer contains the question's track the player just gets a fresh one.
func (h *SoloHandler) guess(w http.ResponseWriter, r *http.Request) {
	name, artists, ok := h.sessions.SoloTrack(r)
	if !ok {
		http.Redirect(w, r, "/game", http.StatusFound)
		return
	}

	pool, _, err := h.registry.GlobalPool()
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	var entry *models.RoundEntry
	for i := range pool {
		if pool[i].Track.Name == name && pool[i].Track.Artists == artists {
			entry = &pool[i]
			break
		}
	}
	if entry == nil {
		http.Redirect(w, r, "/game", http.StatusFound)
		return
	}

	guess := r.FormValue("guess")
	h.views.Render(w, "solo_verdict.html", soloVerdictPage{
		Correct: entry.HasOwner(guess),
		Track:   entry.Track,
		Owners:  entry.Owners,
	})
}
