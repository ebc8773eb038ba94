package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lukee-d/friendify/internal/models"
	"github.com/lukee-d/friendify/internal/shared"
)

// LobbyRepository persists lobbies, their memberships, and the game state blob.
//
// State writes carry an optimistic version check so that two concurrent guesses
// for the same round produce at most one winning writer.
type LobbyRepository struct {
	db *sql.DB
}

// NewLobbyRepository creates a new [LobbyRepository] with the given database connection
func NewLobbyRepository(db *sql.DB) *LobbyRepository {
	return &LobbyRepository{db: db}
}

// Create inserts a new lobby. Returns [shared.ErrCodeTaken] when the code collides
// with an existing lobby so callers can regenerate and retry.
func (r *LobbyRepository) Create(lobby *models.Lobby) error {
	if err := validate(lobby); err != nil {
		return err
	}

	sequence, err := NextSequence(r.db, "lobbies")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	lobby.SetSequence(sequence)

	_, err = r.db.Exec(
		"INSERT INTO lobbies (code, sequence, host_id, state, version, created_at, updated_at) VALUES (?, ?, ?, NULL, 0, ?, ?)",
		lobby.Code(), sequence, lobby.HostID(), lobby.CreatedAt(), lobby.UpdatedAt(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", shared.ErrCodeTaken, lobby.Code())
		}
		return fmt.Errorf("failed to insert lobby: %w", err)
	}

	return nil
}

// Get retrieves a lobby by code, decoding the state blob when present.
func (r *LobbyRepository) Get(code string) (*models.Lobby, error) {
	query := `
		SELECT code, sequence, host_id, state, version, created_at, updated_at
		FROM lobbies
		WHERE code = ?
	`

	var (
		lobbyCode string
		sequence  int
		hostID    string
		state     sql.NullString
		version   int
		createdAt time.Time
		updatedAt time.Time
	)

	err := r.db.QueryRow(query, code).Scan(&lobbyCode, &sequence, &hostID, &state, &version, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrLobbyNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lobby: %w", err)
	}

	lobby := models.NewLobby(sequence, lobbyCode, hostID)
	lobby.SetVersion(version)
	lobby.SetCreatedAt(createdAt)
	lobby.SetUpdatedAt(updatedAt)

	if state.Valid && state.String != "" {
		var gameState models.GameState
		if err := json.Unmarshal([]byte(state.String), &gameState); err != nil {
			return nil, fmt.Errorf("failed to decode lobby state: %w", err)
		}
		lobby.SetState(&gameState)
	}

	return lobby, nil
}

// AddMember registers a user in a lobby. Joining twice is a no-op.
func (r *LobbyRepository) AddMember(member models.Membership) error {
	joinedAt := member.JoinedAt
	if joinedAt.IsZero() {
		joinedAt = time.Now()
	}

	_, err := r.db.Exec(
		"INSERT OR IGNORE INTO lobby_members (lobby_code, user_id, display_name, joined_at) VALUES (?, ?, ?, ?)",
		member.LobbyCode, member.UserID, member.DisplayName, joinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	return nil
}

// Members lists a lobby's memberships in join order.
func (r *LobbyRepository) Members(code string) ([]models.Membership, error) {
	rows, err := r.db.Query(
		"SELECT lobby_code, user_id, display_name, joined_at FROM lobby_members WHERE lobby_code = ? ORDER BY joined_at ASC, rowid ASC",
		code,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var members []models.Membership
	for rows.Next() {
		var member models.Membership
		if err := rows.Scan(&member.LobbyCode, &member.UserID, &member.DisplayName, &member.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return members, nil
}

// UpdateState writes the state blob iff the stored version still matches
// expectedVersion. A mismatch returns [shared.ErrStaleState]; the caller should
// re-read and reconcile.
func (r *LobbyRepository) UpdateState(code string, expectedVersion int, state *models.GameState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode lobby state: %w", err)
	}

	result, err := r.db.Exec(
		"UPDATE lobbies SET state = ?, version = version + 1, updated_at = ? WHERE code = ? AND version = ?",
		string(blob), time.Now(), code, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update lobby state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM lobbies WHERE code = ?)", code).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check lobby: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", shared.ErrLobbyNotFound, code)
		}
		return fmt.Errorf("%w: lobby %s", shared.ErrStaleState, code)
	}

	return nil
}

// DeleteBefore removes lobbies created before the cutoff, along with their
// memberships. Returns the number of lobbies removed.
func (r *LobbyRepository) DeleteBefore(cutoff time.Time) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"DELETE FROM lobby_members WHERE lobby_code IN (SELECT code FROM lobbies WHERE created_at < ?)",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete memberships: %w", err)
	}

	result, err := tx.Exec("DELETE FROM lobbies WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete lobbies: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}

	return int(rows), nil
}
