// package models defines the data model for the Friendify web service
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the Friendify service.
// Implementations include User, SavedTrack, and Lobby. Repositories validate
// entities through this interface before writing rows.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}
