package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is the aggregate root for a user's balance and the shares other
// users have contributed to it. The share collection is mutated only
// through Contribute; no operation ever removes a share.
type Wallet struct {
	ID      uuid.UUID
	OwnerID uuid.UUID

	// Amount is the owner's own balance, independent of shares.
	Amount Money

	shares []*Share

	CreatedBy  string
	CreatedOn  time.Time
	ModifiedBy string
	ModifiedOn time.Time
}

// NewWallet builds a wallet for an owner. An empty amount means the wallet
// starts unfunded.
func NewWallet(id, ownerID uuid.UUID, amount Money, createdBy string, createdOn time.Time) *Wallet {
	return &Wallet{
		ID:        id,
		OwnerID:   ownerID,
		Amount:    amount,
		CreatedBy: createdBy,
		CreatedOn: createdOn,
	}
}

// Contribute records a contribution toward the wallet. A repeat
// contribution by the same contributor in the same currency accumulates on
// the existing share; otherwise a new share is appended. Repeated calls
// always accumulate.
func (w *Wallet) Contribute(amount Money, contributorID uuid.UUID, actor string, when time.Time) error {
	if err := CheckPolicy(CannotContributeToOwnWallet{OwnerID: w.OwnerID, ContributorID: contributorID}); err != nil {
		return err
	}

	if s := w.findShare(contributorID, amount.Currency().Code); s != nil {
		if err := s.AddAmount(amount, actor, when); err != nil {
			return err
		}
		w.ModifiedBy = actor
		w.ModifiedOn = when
		return nil
	}

	share, err := NewShare(uuid.New(), w.ID, contributorID, amount, actor, when)
	if err != nil {
		return err
	}
	w.shares = append(w.shares, share)
	w.ModifiedBy = actor
	w.ModifiedOn = when
	return nil
}

// Shares returns a copied view of the wallet's shares. The backing slice is
// never exposed.
func (w *Wallet) Shares() []*Share {
	out := make([]*Share, len(w.shares))
	copy(out, w.shares)
	return out
}

// TotalShares sums all shares' major-unit amounts grouped by currency code.
// It is recomputed on every call, so it is always consistent with the
// current share collection.
func (w *Wallet) TotalShares() map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(w.shares))
	for _, s := range w.shares {
		code := s.Amount().Currency().Code
		totals[code] = totals[code].Add(s.Amount().InMajorUnits())
	}
	return totals
}

// AttachShare re-attaches a persisted share when assembling the aggregate
// from storage. No contribution policies run.
func (w *Wallet) AttachShare(s *Share) {
	w.shares = append(w.shares, s)
}

func (w *Wallet) findShare(contributorID uuid.UUID, currencyCode string) *Share {
	for _, s := range w.shares {
		if s.ContributorID == contributorID && s.Amount().Currency().Code == currencyCode {
			return s
		}
	}
	return nil
}
