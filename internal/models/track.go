package models

import (
	"fmt"
	"time"
)

// SavedTrack is one row of a user's top-track snapshot. Rows are replaced
// wholesale whenever the user's snapshot is refreshed.
type SavedTrack struct {
	id         string
	sequence   int
	userID     string
	position   int
	title      string
	artists    string
	imageURL   string
	previewURL string
	createdAt  time.Time
}

// NewSavedTrack creates a snapshot row for the given user at the given list position.
func NewSavedTrack(sequence int, userID string, position int, title, artists string) *SavedTrack {
	return &SavedTrack{
		sequence:  sequence,
		userID:    userID,
		position:  position,
		title:     title,
		artists:   artists,
		createdAt: time.Now(),
	}
}

func (t *SavedTrack) ID() string           { return t.id }
func (t *SavedTrack) Sequence() int        { return t.sequence }
func (t *SavedTrack) UserID() string       { return t.userID }
func (t *SavedTrack) Position() int        { return t.position }
func (t *SavedTrack) Title() string        { return t.title }
func (t *SavedTrack) Artists() string      { return t.artists }
func (t *SavedTrack) ImageURL() string     { return t.imageURL }
func (t *SavedTrack) PreviewURL() string   { return t.previewURL }
func (t *SavedTrack) CreatedAt() time.Time { return t.createdAt }
func (t *SavedTrack) UpdatedAt() time.Time { return t.createdAt }

func (t *SavedTrack) SetID(id string)            { t.id = id }
func (t *SavedTrack) SetSequence(s int)          { t.sequence = s }
func (t *SavedTrack) SetImageURL(url string)     { t.imageURL = url }
func (t *SavedTrack) SetPreviewURL(url string)   { t.previewURL = url }
func (t *SavedTrack) SetCreatedAt(ts time.Time)  { t.createdAt = ts }

// Validate checks that the track row belongs to a user and names a track.
func (t *SavedTrack) Validate() error {
	if t.userID == "" {
		return fmt.Errorf("track user id is required")
	}
	if t.title == "" {
		return fmt.Errorf("track title is required")
	}
	if t.position < 0 {
		return fmt.Errorf("track position must be non-negative")
	}
	return nil
}

// Info converts the snapshot row to its wire representation.
func (t *SavedTrack) Info() TrackInfo {
	return TrackInfo{
		Name:       t.title,
		Artists:    t.artists,
		Image:      t.imageURL,
		PreviewURL: t.previewURL,
	}
}

// Snapshot bundles a user's identity with their ordered top-track list.
type Snapshot struct {
	UserID      string
	DisplayName string
	Tracks      []TrackInfo
}
