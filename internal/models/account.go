package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountDB represents a login account record in the database. The linked
// UserID is the payment-domain user created at registration.
type AccountDB struct {
	AccountID    uuid.UUID `json:"account_id" db:"account_id"`       // Primary key
	Username     string    `json:"username" db:"username"`           // Unique username
	Email        string    `json:"email" db:"email"`                 // Account email
	PasswordHash string    `json:"password_hash" db:"password_hash"` // Hashed password
	UserID       uuid.UUID `json:"user_id" db:"user_id"`             // Linked payment user
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`       // Last update timestamp
}
