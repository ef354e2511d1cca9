package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moneyFor(t *testing.T, amount string, code string) domain.Money {
	t.Helper()
	currency, err := domain.ParseCurrency(code)
	require.NoError(t, err)
	m, err := domain.NewMoney(decimal.RequireFromString(amount), currency, domain.UnitsMajor)
	require.NoError(t, err)
	return m
}

func TestWalletRepository_SaveAndGetByID(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	userWriter := NewUserWriteRepository(db, nil)
	owner := seedUser(t, userWriter, "Wallet Owner")
	contributor := seedUser(t, userWriter, "Contributor")

	writer := NewWalletWriteRepository(db, nil)
	reader := NewWalletReadRepository(db)

	wallet := domain.NewWallet(uuid.New(), owner.ID, moneyFor(t, "125.50", "USD"), "test", time.Now().UTC())
	require.NoError(t, wallet.Contribute(moneyFor(t, "30.25", "EUR"), contributor.ID, "test", time.Now().UTC()))
	require.NoError(t, writer.Save(ctx, wallet))

	got, found, err := reader.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, wallet.ID, got.ID)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.Equal(t, "USD", got.Amount.Currency().Code)
	assert.True(t, got.Amount.InMajorUnits().Equal(decimal.RequireFromString("125.50")))

	shares := got.Shares()
	require.Len(t, shares, 1)
	assert.Equal(t, contributor.ID, shares[0].ContributorID)
	assert.Equal(t, "EUR", shares[0].Amount().Currency().Code)
	assert.True(t, shares[0].Amount().InMajorUnits().Equal(decimal.RequireFromString("30.25")))
}

func TestWalletRepository_GetByID_NotFound(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()

	reader := NewWalletReadRepository(db)

	got, found, err := reader.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestWalletRepository_Save_UnfundedWallet(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	userWriter := NewUserWriteRepository(db, nil)
	owner := seedUser(t, userWriter, "Wallet Owner")

	writer := NewWalletWriteRepository(db, nil)
	reader := NewWalletReadRepository(db)

	wallet := domain.NewWallet(uuid.New(), owner.ID, domain.EmptyMoney(), "test", time.Now().UTC())
	require.NoError(t, writer.Save(ctx, wallet))

	got, found, err := reader.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Amount.IsEmpty())
	assert.Empty(t, got.Shares())
}

func TestWalletRepository_Save_AccumulatesShare(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	userWriter := NewUserWriteRepository(db, nil)
	owner := seedUser(t, userWriter, "Wallet Owner")
	contributor := seedUser(t, userWriter, "Contributor")

	writer := NewWalletWriteRepository(db, nil)
	reader := NewWalletReadRepository(db)

	wallet := domain.NewWallet(uuid.New(), owner.ID, domain.EmptyMoney(), "test", time.Now().UTC())
	require.NoError(t, wallet.Contribute(moneyFor(t, "262.22", "TND"), contributor.ID, "test", time.Now().UTC()))
	require.NoError(t, writer.Save(ctx, wallet))

	// Second contribution in the same currency updates the same row
	loaded, found, err := reader.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, loaded.Contribute(moneyFor(t, "30.00", "TND"), contributor.ID, "test", time.Now().UTC()))
	require.NoError(t, writer.Save(ctx, loaded))

	got, found, err := reader.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	require.True(t, found)

	shares := got.Shares()
	require.Len(t, shares, 1)
	assert.True(t, shares[0].Amount().InMajorUnits().Equal(decimal.RequireFromString("292.22")))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM shares WHERE wallet_id = $1`, wallet.ID))
	assert.Equal(t, 1, count)
}
