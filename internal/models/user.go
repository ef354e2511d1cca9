package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // Primary key
	FullName  string    `json:"full_name" db:"full_name"`   // Display name
	CreatedBy string    `json:"created_by" db:"created_by"` // Actor that created the record
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
