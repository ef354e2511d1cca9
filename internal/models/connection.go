package models

import "github.com/google/uuid"

// Connection is one hop of a cached connection-list path.
type Connection struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
}
