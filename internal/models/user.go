package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the storage backend
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`           // Primary key
	FirstName    string    `json:"firstName" db:"first_name"` // Given name
	LastName     string    `json:"lastName" db:"last_name"`   // Family name
	Email        string    `json:"email" db:"email"`          // Unique, stored lower-cased
	PasswordHash string    `json:"-" db:"password_hash"`      // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"createdAt" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"` // Last update timestamp
}

// PublicUser is the credential-free view of a user returned by the API.
// swagger:model PublicUser
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the credential-free view of the user.
func (u UserDB) Public() PublicUser {
	return PublicUser{
		ID:        u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
