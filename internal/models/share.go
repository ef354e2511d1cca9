package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShareDB represents a share row in the database. One row exists per
// distinct (wallet, contributor, currency) triple.
type ShareDB struct {
	ShareID       uuid.UUID       `json:"share_id" db:"share_id"`             // Primary key
	WalletID      uuid.UUID       `json:"wallet_id" db:"wallet_id"`           // Owning wallet
	ContributorID uuid.UUID       `json:"contributor_id" db:"contributor_id"` // Contributing user
	Currency      string          `json:"currency" db:"currency"`             // Currency code of the share
	Amount        decimal.Decimal `json:"amount" db:"amount"`                 // Cumulative amount in major units
	CreatedBy     string          `json:"created_by" db:"created_by"`         // Actor of the first contribution
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`         // First contribution timestamp
	ModifiedBy    string          `json:"modified_by" db:"modified_by"`       // Actor of the latest contribution
	ModifiedAt    time.Time       `json:"modified_at" db:"modified_at"`       // Latest contribution timestamp
}
