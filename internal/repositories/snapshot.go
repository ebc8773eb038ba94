package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lukee-d/friendify/internal/models"
	"github.com/lukee-d/friendify/internal/shared"
)

// SnapshotRepository persists per-user top-track snapshots.
//
// A snapshot is one users row plus its ordered tracks rows. Saving replaces the
// track list wholesale; snapshots are only ever removed by a bulk purge.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new [SnapshotRepository] with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save upserts the user and replaces their track rows in a single transaction.
// Each row is materialized as a [models.SavedTrack] and validated before insert;
// a bad row rolls back the whole snapshot.
func (r *SnapshotRepository) Save(user *models.User, tracks []models.TrackInfo) error {
	if err := validate(user); err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", user.ID()).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}

	if exists {
		_, err = tx.Exec(
			"UPDATE users SET display_name = ?, updated_at = ? WHERE id = ?",
			user.DisplayName(), now, user.ID(),
		)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
	} else {
		sequence, err := nextSequenceTx(tx, "users")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}
		user.SetSequence(sequence)

		_, err = tx.Exec(
			"INSERT INTO users (id, sequence, display_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			user.ID(), sequence, user.DisplayName(), user.CreatedAt(), now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
	}

	if _, err := tx.Exec("DELETE FROM tracks WHERE user_id = ?", user.ID()); err != nil {
		return fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	for position, track := range tracks {
		sequence, err := nextSequenceTx(tx, "tracks")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}

		row := models.NewSavedTrack(sequence, user.ID(), position, track.Name, track.Artists)
		row.SetID(shared.GenerateID())
		row.SetImageURL(track.Image)
		row.SetPreviewURL(track.PreviewURL)
		row.SetCreatedAt(now)

		if err := validate(row); err != nil {
			return err
		}

		_, err = tx.Exec(
			`INSERT INTO tracks (id, sequence, user_id, position, title, artists, image_url, preview_url, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.ID(), row.Sequence(), row.UserID(), row.Position(),
			row.Title(), row.Artists(), row.ImageURL(), row.PreviewURL(), row.CreatedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert track: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

// Get retrieves a single user's snapshot by their external user id.
func (r *SnapshotRepository) Get(userID string) (*models.Snapshot, error) {
	var displayName string
	err := r.db.QueryRow("SELECT display_name FROM users WHERE id = ?", userID).Scan(&displayName)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrSnapshotNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	tracks, err := r.userTracks(userID)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{UserID: userID, DisplayName: displayName, Tracks: tracks}, nil
}

// GetMany retrieves snapshots for the given user ids, skipping ids with no
// saved snapshot. Results follow the order of userIDs.
func (r *SnapshotRepository) GetMany(userIDs []string) ([]models.Snapshot, error) {
	snapshots := make([]models.Snapshot, 0, len(userIDs))

	for _, id := range userIDs {
		snapshot, err := r.Get(id)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}

	return snapshots, nil
}

// List retrieves every user's snapshot, in registration order.
func (r *SnapshotRepository) List() ([]models.Snapshot, error) {
	rows, err := r.db.Query("SELECT id, display_name FROM users ORDER BY sequence ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var snapshots []models.Snapshot
	for rows.Next() {
		var id, displayName string
		if err := rows.Scan(&id, &displayName); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		snapshots = append(snapshots, models.Snapshot{UserID: id, DisplayName: displayName})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range snapshots {
		tracks, err := r.userTracks(snapshots[i].UserID)
		if err != nil {
			return nil, err
		}
		snapshots[i].Tracks = tracks
	}

	return snapshots, nil
}

// PurgeAll deletes every snapshot. Admin operation.
func (r *SnapshotRepository) PurgeAll() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tracks"); err != nil {
		return fmt.Errorf("failed to purge tracks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to purge users: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purge: %w", err)
	}

	return nil
}

// userTracks loads a user's track rows in snapshot position order.
func (r *SnapshotRepository) userTracks(userID string) ([]models.TrackInfo, error) {
	rows, err := r.db.Query(
		"SELECT position, title, artists, image_url, preview_url FROM tracks WHERE user_id = ? ORDER BY position ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.TrackInfo
	for rows.Next() {
		var (
			position                             int
			title, artists, imageURL, previewURL string
		)
		if err := rows.Scan(&position, &title, &artists, &imageURL, &previewURL); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}

		row := models.NewSavedTrack(0, userID, position, title, artists)
		row.SetImageURL(imageURL)
		row.SetPreviewURL(previewURL)
		tracks = append(tracks, row.Info())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// IsNotFound reports whether err is a missing-snapshot error.
func IsNotFound(err error) bool {
	return errors.Is(err, shared.ErrSnapshotNotFound)
}
