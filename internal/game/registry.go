package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lukee-d/friendify/internal/models"
	"github.com/lukee-d/friendify/internal/repositories"
	"github.com/lukee-d/friendify/internal/shared"
)

// Code space is large relative to live lobby count, so a handful of redraws is
// plenty before giving up.
const maxCodeAttempts = 5

// Guess retries cover the window between reading state and the version-checked
// write; each retry re-reads and re-validates the round.
const maxGuessAttempts = 3

// Registry maps lobby codes to lobbies and drives the game lifecycle: create,
// join, start, guess, end.
type Registry struct {
	lobbies   *repositories.LobbyRepository
	snapshots *repositories.SnapshotRepository
	config    shared.GameConfig
	logger    *log.Logger
}

// NewRegistry creates a Registry over the given repositories.
func NewRegistry(lobbies *repositories.LobbyRepository, snapshots *repositories.SnapshotRepository, config shared.GameConfig, logger *log.Logger) *Registry {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Registry{
		lobbies:   lobbies,
		snapshots: snapshots,
		config:    config,
		logger:    logger,
	}
}

// Create generates a fresh lobby code, persists the lobby, and registers the
// creator as its first member. Code collisions are retried with a new draw.
func (r *Registry) Create(hostID, hostName string) (*models.Lobby, error) {
	length := r.config.CodeLength
	if length <= 0 {
		length = DefaultCodeLength
	}

	var lobby *models.Lobby
	for attempt := range maxCodeAttempts {
		candidate := models.NewLobby(0, NewCode(length), hostID)

		err := r.lobbies.Create(candidate)
		if err == nil {
			lobby = candidate
			break
		}
		if !errors.Is(err, shared.ErrCodeTaken) {
			return nil, err
		}

		r.logger.Warn("lobby code collision, redrawing", "code", candidate.Code(), "attempt", attempt+1)
	}

	if lobby == nil {
		return nil, fmt.Errorf("%w: exhausted %d attempts", shared.ErrCodeTaken, maxCodeAttempts)
	}

	if err := r.lobbies.AddMember(models.Membership{
		LobbyCode:   lobby.Code(),
		UserID:      hostID,
		DisplayName: hostName,
	}); err != nil {
		return nil, err
	}

	r.logger.Info("lobby created", "code", lobby.Code(), "host", hostID)

	return lobby, nil
}

// Join adds a user to the lobby with the given code. The code is matched
// case-insensitively; joining twice is a no-op.
func (r *Registry) Join(code, userID, displayName string) (*models.Lobby, error) {
	code = NormalizeCode(code)

	lobby, err := r.lobbies.Get(code)
	if err != nil {
		return nil, err
	}

	if err := r.lobbies.AddMember(models.Membership{
		LobbyCode:   code,
		UserID:      userID,
		DisplayName: displayName,
	}); err != nil {
		return nil, err
	}

	return lobby, nil
}

// View returns a lobby and its member list for read-only display.
func (r *Registry) View(code string) (*models.Lobby, []models.Membership, error) {
	code = NormalizeCode(code)

	lobby, err := r.lobbies.Get(code)
	if err != nil {
		return nil, nil, err
	}

	members, err := r.lobbies.Members(code)
	if err != nil {
		return nil, nil, err
	}

	return lobby, members, nil
}

// Start builds the pool from the members' snapshots, selects the round
// sequence, and writes a fresh game state. Any previous state is fully
// overwritten, so a finished lobby can be replayed.
func (r *Registry) Start(code string) (*models.Lobby, error) {
	code = NormalizeCode(code)

	lobby, members, err := r.View(code)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(members))
	for _, member := range members {
		userIDs = append(userIDs, member.UserID)
	}

	snapshots, err := r.snapshots.GetMany(userIDs)
	if err != nil {
		return nil, err
	}

	pool := BuildPool(snapshots)
	if len(pool) == 0 {
		return nil, shared.ErrEmptyTrackPool
	}

	rounds := SelectRounds(pool, r.config.Rounds)
	state := NewGameState(rounds, members)

	if err := r.lobbies.UpdateState(code, lobby.Version(), state); err != nil {
		// A concurrent start won the write; its state is just as fresh.
		if errors.Is(err, shared.ErrStaleState) {
			return r.lobbies.Get(code)
		}
		return nil, err
	}

	r.logger.Info("game started", "code", code, "rounds", len(rounds), "members", len(members))

	lobby.SetState(state)
	return lobby, nil
}

// Guess applies one member's guess for the round they saw and persists the
// advanced state. Lost version races re-read and re-apply; if the round moved
// on in the meantime the guess is rejected as stale.
func (r *Registry) Guess(code, userID, guessedName string, round int) (*Verdict, error) {
	code = NormalizeCode(code)

	for range maxGuessAttempts {
		lobby, err := r.lobbies.Get(code)
		if err != nil {
			return nil, err
		}

		state := lobby.State()
		verdict, err := ApplyGuess(state, userID, guessedName, round)
		if err != nil {
			return nil, err
		}

		err = r.lobbies.UpdateState(code, lobby.Version(), state)
		if err == nil {
			return verdict, nil
		}
		if !errors.Is(err, shared.ErrStaleState) {
			return nil, err
		}
	}

	return nil, shared.ErrStaleRound
}

// End returns the scoreboard for a started lobby, including members who never
// scored.
func (r *Registry) End(code string) ([]Score, error) {
	code = NormalizeCode(code)

	lobby, members, err := r.View(code)
	if err != nil {
		return nil, err
	}

	state := lobby.State()
	if state == nil {
		return nil, shared.ErrGameNotStarted
	}

	return Scoreboard(state, members), nil
}

// GlobalPool builds the solo-mode pool across every registered user's
// snapshot, plus the full candidate name set for rendering choices.
func (r *Registry) GlobalPool() ([]models.RoundEntry, []string, error) {
	snapshots, err := r.snapshots.List()
	if err != nil {
		return nil, nil, err
	}

	pool := BuildPool(snapshots)
	if len(pool) == 0 {
		return nil, nil, shared.ErrEmptyTrackPool
	}

	return pool, Candidates(pool), nil
}

// Prune removes lobbies older than the configured TTL. Returns the number
// removed.
func (r *Registry) Prune() (int, error) {
	ttl := r.config.LobbyTTLHours
	if ttl <= 0 {
		ttl = 24
	}

	cutoff := time.Now().Add(-time.Duration(ttl) * time.Hour)
	removed, err := r.lobbies.DeleteBefore(cutoff)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		r.logger.Info("pruned stale lobbies", "count", removed, "ttl_hours", ttl)
	}

	return removed, nil
}
