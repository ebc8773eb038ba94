package models

import (
	"fmt"
	"time"
)

// TrackInfo is track metadata as it appears in game state and rendered views.
// Field names match the persisted state blob shape.
type TrackInfo struct {
	Name       string `json:"name"`
	Artists    string `json:"artists"`
	Image      string `json:"image"`
	PreviewURL string `json:"preview_url"`
}

// RoundEntry is a deduplicated track annotated with the display names of every
// user whose snapshot contains it.
type RoundEntry struct {
	Track  TrackInfo `json:"track"`
	Owners []string  `json:"owners"`
}

// HasOwner reports whether name is one of the entry's owners.
func (e RoundEntry) HasOwner(name string) bool {
	for _, owner := range e.Owners {
		if owner == name {
			return true
		}
	}
	return false
}

// GameState is the mutable per-lobby game blob. Round is a 0-based index into
// Tracks; Round == len(Tracks) means the game is over. Scores maps member user
// ids to their number of correct guesses.
type GameState struct {
	Tracks []RoundEntry   `json:"tracks"`
	Round  int            `json:"round"`
	Scores map[string]int `json:"scores"`
}

// Finished reports whether the round index has moved past the last track.
func (s *GameState) Finished() bool {
	return s.Round >= len(s.Tracks)
}

// Lobby is a joinable multiplayer session identified by a short human-enterable
// code. State is nil until the host starts a game; Version counts state writes
// and guards concurrent read-modify-write cycles.
type Lobby struct {
	code      string
	sequence  int
	hostID    string
	state     *GameState
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewLobby creates a lobby with the given code and host, with no game state.
func NewLobby(sequence int, code, hostID string) *Lobby {
	now := time.Now()
	return &Lobby{
		code:      code,
		sequence:  sequence,
		hostID:    hostID,
		createdAt: now,
		updatedAt: now,
	}
}

func (l *Lobby) ID() string           { return l.code }
func (l *Lobby) Code() string         { return l.code }
func (l *Lobby) Sequence() int        { return l.sequence }
func (l *Lobby) HostID() string       { return l.hostID }
func (l *Lobby) State() *GameState    { return l.state }
func (l *Lobby) Version() int         { return l.version }
func (l *Lobby) CreatedAt() time.Time { return l.createdAt }
func (l *Lobby) UpdatedAt() time.Time { return l.updatedAt }

func (l *Lobby) SetSequence(s int)          { l.sequence = s }
func (l *Lobby) SetState(state *GameState)  { l.state = state }
func (l *Lobby) SetVersion(v int)           { l.version = v }
func (l *Lobby) SetCreatedAt(t time.Time)   { l.createdAt = t }
func (l *Lobby) SetUpdatedAt(t time.Time)   { l.updatedAt = t }

// Validate checks that the lobby has a code and a host.
func (l *Lobby) Validate() error {
	if l.code == "" {
		return fmt.Errorf("lobby code is required")
	}
	if l.hostID == "" {
		return fmt.Errorf("lobby host id is required")
	}
	return nil
}

// Membership relates a user to a lobby. A user joins a lobby at most once.
type Membership struct {
	LobbyCode   string
	UserID      string
	DisplayName string
	JoinedAt    time.Time
}
