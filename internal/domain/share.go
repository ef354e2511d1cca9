package domain

import (
	"time"

	"github.com/google/uuid"
)

// Share records one contributor's cumulative contribution, in one currency,
// toward one wallet. Shares are owned exclusively by their wallet; there is
// at most one share per (wallet, contributor, currency).
type Share struct {
	ID            uuid.UUID
	WalletID      uuid.UUID
	ContributorID uuid.UUID

	amount Money

	CreatedBy  string
	CreatedOn  time.Time
	ModifiedBy string
	ModifiedOn time.Time
}

// NewShare builds a share holding a contributor's first contribution.
func NewShare(id, walletID, contributorID uuid.UUID, amount Money, createdBy string, createdOn time.Time) (*Share, error) {
	if id == uuid.Nil {
		return nil, newError(ErrInvalidShareID, "the share id %s is invalid", id)
	}
	if amount.IsEmpty() {
		return nil, newError(ErrInvalidCurrencyCode, "share amount requires a currency")
	}
	return &Share{
		ID:            id,
		WalletID:      walletID,
		ContributorID: contributorID,
		amount:        amount,
		CreatedBy:     createdBy,
		CreatedOn:     createdOn,
	}, nil
}

// Amount returns the cumulative contribution recorded by the share.
func (s *Share) Amount() Money {
	return s.amount
}

// AddAmount accumulates a further contribution in place. The delta must be
// positive, in the share's currency, and keep the total within bounds.
func (s *Share) AddAmount(delta Money, modifiedBy string, modifiedOn time.Time) error {
	updated, err := s.amount.UpdateBy(delta)
	if err != nil {
		return err
	}
	s.amount = updated
	s.ModifiedBy = modifiedBy
	s.ModifiedOn = modifiedOn
	return nil
}
