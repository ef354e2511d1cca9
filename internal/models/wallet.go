package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletDB represents a wallet row in the database
type WalletDB struct {
	WalletID  uuid.UUID       `json:"wallet_id" db:"wallet_id"`   // Unique wallet identifier
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`       // Identifier of the wallet's owner
	Currency  string          `json:"currency" db:"currency"`     // Currency code of the owner balance, empty when unfunded
	Amount    decimal.Decimal `json:"amount" db:"amount"`         // Owner balance in major units
	CreatedBy string          `json:"created_by" db:"created_by"` // Actor that created the wallet
	CreatedAt time.Time       `json:"created_at" db:"created_at"` // Timestamp when the wallet was created
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"` // Timestamp of the last wallet update
}
