package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/lukee-d/friendify/internal/game"
	"github.com/lukee-d/friendify/internal/models"
	"github.com/lukee-d/friendify/internal/shared"
	qrcode "github.com/skip2/go-qrcode"
)

// LobbyHandler serves the multiplayer flow: create, join, lobby page with QR
// join link, round progression, guessing, and the final scoreboard.
type LobbyHandler struct {
	mux      *http.ServeMux
	registry *game.Registry
	sessions *SessionManager
	views    *Views
	logger   *log.Logger
}

// NewLobbyHandler creates the multiplayer lobby handler.
func NewLobbyHandler(registry *game.Registry, sessions *SessionManager, views *Views, logger *log.Logger) *LobbyHandler {
	h := &LobbyHandler{
		mux:      http.NewServeMux(),
		registry: registry,
		sessions: sessions,
		views:    views,
		logger:   logger,
	}
	h.mux.HandleFunc("GET /lobby/create", h.create)
	h.mux.HandleFunc("GET /lobby/join", h.joinForm)
	h.mux.HandleFunc("POST /lobby/join", h.join)
	h.mux.HandleFunc("GET /lobby/{code}", h.show)
	h.mux.HandleFunc("GET /lobby/{code}/qr.png", h.qr)
	h.mux.HandleFunc("GET /lobby/{code}/start", h.start)
	h.mux.HandleFunc("GET /lobby/{code}/round", h.round)
	h.mux.HandleFunc("POST /lobby/{code}/guess", h.guess)
	h.mux.HandleFunc("GET /lobby/{code}/end", h.end)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *LobbyHandler) Routes() []string {
	return []string{"/lobby/"}
}

func (h *LobbyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// create makes a new lobby with the signed-in user as host and first member.
func (h *LobbyHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, displayName, err := h.sessions.User(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	lobby, err := h.registry.Create(userID, displayName)
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	http.Redirect(w, r, "/lobby/"+lobby.Code(), http.StatusFound)
}

type joinPage struct {
	Code    string
	Message string
}

// joinForm renders the code entry form. A code query parameter (the QR join
// link) joins immediately.
func (h *LobbyHandler) joinForm(w http.ResponseWriter, r *http.Request) {
	if code := r.URL.Query().Get("code"); code != "" {
		h.joinLobby(w, r, code)
		return
	}
	h.views.Render(w, "join.html", joinPage{})
}

// join handles the submitted code form.
func (h *LobbyHandler) join(w http.ResponseWriter, r *http.Request) {
	h.joinLobby(w, r, r.FormValue("code"))
}

func (h *LobbyHandler) joinLobby(w http.ResponseWriter, r *http.Request, code string) {
	userID, displayName, err := h.sessions.User(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	lobby, err := h.registry.Join(code, userID, displayName)
	if err != nil {
		if errors.Is(err, shared.ErrLobbyNotFound) {
			h.views.RenderStatus(w, http.StatusNotFound, "join.html", joinPage{
				Code:    game.NormalizeCode(code),
				Message: "No lobby with that code exists. Check the code and try again.",
			})
			return
		}
		fail(h.views, h.logger, w, err)
		return
	}

	http.Redirect(w, r, "/lobby/"+lobby.Code(), http.StatusFound)
}

type lobbyPage struct {
	Code    string
	Members []models.Membership
	Started bool
}

// show renders the lobby page with its members and the join QR.
func (h *LobbyHandler) show(w http.ResponseWriter, r *http.Request) {
	lobby, members, err := h.registry.View(r.PathValue("code"))
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	h.views.Render(w, "lobby.html", lobbyPage{
		Code:    lobby.Code(),
		Members: members,
		Started: lobby.State() != nil && !lobby.State().Finished(),
	})
}

// qr serves a PNG QR code of the lobby's join link.
func (h *LobbyHandler) qr(w http.ResponseWriter, r *http.Request) {
	lobby, _, err := h.registry.View(r.PathValue("code"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	joinURL := fmt.Sprintf("%s://%s/lobby/join?code=%s", scheme, r.Host, url.QueryEscape(lobby.Code()))

	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// start initializes (or reinitializes) the lobby's game state and sends the
// player to the first round.
func (h *LobbyHandler) start(w http.ResponseWriter, r *http.Request) {
	lobby, err := h.registry.Start(r.PathValue("code"))
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	http.Redirect(w, r, "/lobby/"+lobby.Code()+"/round", http.StatusFound)
}

type roundPage struct {
	Code        string
	RoundIndex  int
	RoundNumber int
	Total       int
	Track       models.TrackInfo
	Choices     []string
}

// round shows the current round, or routes finished games to the scoreboard.
// Choices span every owner in the game, not just the current track's.
func (h *LobbyHandler) round(w http.ResponseWriter, r *http.Request) {
	lobby, _, err := h.registry.View(r.PathValue("code"))
	if err != nil {
		fail(h.views, h.logger, w, err)
		return
	}

	state := lobby.State()
	entry, err := game.CurrentRound(state)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrGameFinished):
			http.Redirect(w, r, "/lobby/"+lobby.Code()+"/end", http.StatusFound)
		case errors.Is(err, shared.ErrGameNotStarted):
			http.Redirect(w, r, "/lobby/"+lobby.Code(), http.StatusFound)
		default:
			fail(h.views, h.logger, w, err)
		}
		return
	}

	h.views.Render(w, "round.html", roundPage{
		Code:        lobby.Code(),
		RoundIndex:  state.Round,
		RoundNumber: state.Round + 1,
		Total:       len(state.Tracks),
		Track:       entry.Track,
		Choices:     game.Candidates(state.Tracks),
	})
}

type verdictPage struct {
	Code    string
	Correct bool
	Track   models.TrackInfo
	Owners  []string
}

// guess applies the player's answer for the round they were shown. Stale
// submissions (another player already advanced the round) bounce back to the
// current round instead of double-counting.
func (h *LobbyHandler) guess(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	userID, _, err := h.sessions.User(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	round, err := strconv.Atoi(r.FormValue("round"))
	if err != nil {
		http.Redirect(w, r, "/lobby/"+code+"/round", http.StatusFound)
		return
	}

	verdict, err := h.registry.Guess(code, userID, r.FormValue("guess"), round)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrStaleRound):
			http.Redirect(w, r, "/lobby/"+code+"/round", http.StatusFound)
		case errors.Is(err, shared.ErrGameFinished):
			http.Redirect(w, r, "/lobby/"+code+"/end", http.StatusFound)
		case errors.Is(err, shared.ErrGameNotStarted):
			http.Redirect(w, r, "/lobby/"+code, http.StatusFound)
		default:
			fail(h.views, h.logger, w, err)
		}
		return
	}

	h.views.Render(w, "verdict.html", verdictPage{
		Code:    game.NormalizeCode(code),
		Correct: verdict.Correct,
		Track:   verdict.Track,
		Owners:  verdict.Owners,
	})
}

type scoreboardPage struct {
	Code   string
	Scores []game.Score
}

// end renders the final scoreboard, including members who never scored.
func (h *LobbyHandler) end(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	scores, err := h.registry.End(code)
	if err != nil {
		if errors.Is(err, shared.ErrGameNotStarted) {
			http.Redirect(w, r, "/lobby/"+code, http.StatusFound)
			return
		}
		fail(h.views, h.logger, w, err)
		return
	}

	h.views.Render(w, "scoreboard.html", scoreboardPage{
		Code:   game.NormalizeCode(code),
		Scores: scores,
	})
}
