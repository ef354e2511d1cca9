package models

import (
	"time"

	"github.com/google/uuid"
)

// FriendshipDB represents one directed friendship edge in the database
type FriendshipDB struct {
	FriendshipID uuid.UUID `json:"friendship_id" db:"friendship_id"` // Primary key
	UserID       uuid.UUID `json:"user_id" db:"user_id"`             // Owning user
	FriendID     uuid.UUID `json:"friend_id" db:"friend_id"`         // Referenced friend
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
}

// FriendRow is a friendship edge joined with the friend's display name,
// as read by the user repository.
type FriendRow struct {
	FriendshipID uuid.UUID `db:"friendship_id"`
	FriendID     uuid.UUID `db:"friend_id"`
	FullName     string    `db:"full_name"`
	CreatedAt    time.Time `db:"created_at"`
}
