package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is the persisted author entity. The (FirstName, LastName) pair is
// unique in the database.
type Author struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Biography *string   `json:"biography,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the display name used by search and book listings.
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}
