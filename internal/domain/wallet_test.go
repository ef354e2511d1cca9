package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet(t *testing.T) *Wallet {
	t.Helper()
	return NewWallet(uuid.New(), uuid.New(), EmptyMoney(), "system", time.Now().UTC())
}

func TestWallet_Contribute_CreatesShare(t *testing.T) {
	w := newTestWallet(t)
	contributor := uuid.New()
	when := time.Now().UTC()

	err := w.Contribute(mustMoney(t, "62.52", "EUR"), contributor, "system", when)
	assert.NoError(t, err)

	shares := w.Shares()
	require.Len(t, shares, 1)
	assert.Equal(t, w.ID, shares[0].WalletID)
	assert.Equal(t, contributor, shares[0].ContributorID)
	assert.True(t, shares[0].Amount().InMajorUnits().Equal(decimal.RequireFromString("62.52")))
	assert.Equal(t, "system", shares[0].CreatedBy)
	assert.Equal(t, when, shares[0].CreatedOn)
}

func TestWallet_Contribute_AccumulatesSameCurrency(t *testing.T) {
	w := newTestWallet(t)
	contributor := uuid.New()

	require.NoError(t, w.Contribute(mustMoney(t, "62.52", "EUR"), contributor, "system", time.Now().UTC()))
	require.NoError(t, w.Contribute(mustMoney(t, "30.00", "EUR"), contributor, "system", time.Now().UTC()))

	shares := w.Shares()
	require.Len(t, shares, 1, "a repeat contribution in the same currency must not create a second share")
	assert.True(t, shares[0].Amount().InMajorUnits().Equal(decimal.RequireFromString("92.52")))
}

func TestWallet_Contribute_SeededShareAccumulates(t *testing.T) {
	w := newTestWallet(t)
	contributor := uuid.New()

	seeded, err := NewShare(uuid.New(), w.ID, contributor, mustMoney(t, "262.22", "TND"), "system", time.Now().UTC())
	require.NoError(t, err)
	w.AttachShare(seeded)

	require.NoError(t, w.Contribute(mustMoney(t, "30.00", "TND"), contributor, "system", time.Now().UTC()))

	shares := w.Shares()
	require.Len(t, shares, 1)
	assert.True(t, shares[0].Amount().InMajorUnits().Equal(decimal.RequireFromString("292.22")))
	assert.True(t, shares[0].Amount().InMinorUnits().Equal(decimal.RequireFromString("292220")))
}

func TestWallet_Contribute_NewCurrencyNewShare(t *testing.T) {
	w := newTestWallet(t)
	contributor := uuid.New()

	require.NoError(t, w.Contribute(mustMoney(t, "10", "EUR"), contributor, "system", time.Now().UTC()))
	require.NoError(t, w.Contribute(mustMoney(t, "20", "USD"), contributor, "system", time.Now().UTC()))

	assert.Len(t, w.Shares(), 2)
}

func TestWallet_Contribute_DistinctContributors(t *testing.T) {
	w := newTestWallet(t)

	require.NoError(t, w.Contribute(mustMoney(t, "10", "EUR"), uuid.New(), "system", time.Now().UTC()))
	require.NoError(t, w.Contribute(mustMoney(t, "20", "EUR"), uuid.New(), "system", time.Now().UTC()))

	assert.Len(t, w.Shares(), 2)
}

func TestWallet_Contribute_OwnerRejected(t *testing.T) {
	w := newTestWallet(t)

	err := w.Contribute(mustMoney(t, "10", "EUR"), w.OwnerID, "system", time.Now().UTC())
	assert.ErrorIs(t, err, ErrBusinessPolicyViolation)
	assert.Empty(t, w.Shares())
}

func TestWallet_Contribute_UpdatesModificationMetadata(t *testing.T) {
	w := newTestWallet(t)
	contributor := uuid.New()
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, w.Contribute(mustMoney(t, "10", "EUR"), contributor, "alice", first))
	require.NoError(t, w.Contribute(mustMoney(t, "5", "EUR"), contributor, "bob", second))

	share := w.Shares()[0]
	assert.Equal(t, "alice", share.CreatedBy)
	assert.Equal(t, "bob", share.ModifiedBy)
	assert.Equal(t, second, share.ModifiedOn)
}

func TestWallet_TotalShares(t *testing.T) {
	w := newTestWallet(t)

	require.NoError(t, w.Contribute(mustMoney(t, "62.52", "EUR"), uuid.New(), "system", time.Now().UTC()))
	require.NoError(t, w.Contribute(mustMoney(t, "30.00", "EUR"), uuid.New(), "system", time.Now().UTC()))
	require.NoError(t, w.Contribute(mustMoney(t, "100", "USD"), uuid.New(), "system", time.Now().UTC()))

	totals := w.TotalShares()
	require.Len(t, totals, 2)
	assert.True(t, totals["EUR"].Equal(decimal.RequireFromString("92.52")))
	assert.True(t, totals["USD"].Equal(decimal.NewFromInt(100)))

	// Recomputed on read: a further contribution is reflected immediately.
	require.NoError(t, w.Contribute(mustMoney(t, "1", "USD"), uuid.New(), "system", time.Now().UTC()))
	assert.True(t, w.TotalShares()["USD"].Equal(decimal.NewFromInt(101)))
}

func TestWallet_SharesReturnsCopy(t *testing.T) {
	w := newTestWallet(t)
	require.NoError(t, w.Contribute(mustMoney(t, "10", "EUR"), uuid.New(), "system", time.Now().UTC()))

	view := w.Shares()
	view[0] = nil

	require.Len(t, w.Shares(), 1)
	assert.NotNil(t, w.Shares()[0])
}

func TestNewShare_Validation(t *testing.T) {
	_, err := NewShare(uuid.Nil, uuid.New(), uuid.New(), mustMoney(t, "10", "EUR"), "system", time.Now().UTC())
	assert.ErrorIs(t, err, ErrInvalidShareID)

	_, err = NewShare(uuid.New(), uuid.New(), uuid.New(), EmptyMoney(), "system", time.Now().UTC())
	assert.Error(t, err)
}

func TestShare_AddAmount_CurrencyMismatch(t *testing.T) {
	s, err := NewShare(uuid.New(), uuid.New(), uuid.New(), mustMoney(t, "10", "EUR"), "system", time.Now().UTC())
	require.NoError(t, err)

	err = s.AddAmount(mustMoney(t, "5", "USD"), "system", time.Now().UTC())
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	assert.True(t, s.Amount().InMajorUnits().Equal(decimal.NewFromInt(10)))
}
