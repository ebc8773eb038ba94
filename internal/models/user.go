package models

import (
	"fmt"
	"time"
)

// User represents a registered player. The id is the opaque user id reported by
// the external music service, so it is assigned at construction rather than generated.
type User struct {
	id          string
	sequence    int
	displayName string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUser creates a User keyed by its external service id.
func NewUser(sequence int, id, displayName string) *User {
	now := time.Now()
	if displayName == "" {
		displayName = id
	}
	return &User{
		id:          id,
		sequence:    sequence,
		displayName: displayName,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (u *User) ID() string            { return u.id }
func (u *User) Sequence() int         { return u.sequence }
func (u *User) DisplayName() string   { return u.displayName }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
func (u *User) SetSequence(s int)     { u.sequence = s }
func (u *User) SetCreatedAt(t time.Time) { u.createdAt = t }
func (u *User) SetUpdatedAt(t time.Time) { u.updatedAt = t }

func (u *User) SetDisplayName(name string) {
	if name != "" {
		u.displayName = name
	}
}

// Validate checks that the user has an external id and a display name.
func (u *User) Validate() error {
	if u.id == "" {
		return fmt.Errorf("user id is required")
	}
	if u.displayName == "" {
		return fmt.Errorf("user display name is required")
	}
	return nil
}
