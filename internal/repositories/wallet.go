package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
	"github.com/shopspring/decimal"
)

// WalletReadRepository handles wallet read operations.
type WalletReadRepository struct {
	db *sqlx.DB
}

func NewWalletReadRepository(db *sqlx.DB) *WalletReadRepository {
	return &WalletReadRepository{db: db}
}

// GetByID assembles a wallet aggregate with its shares.
func (r *WalletReadRepository) GetByID(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, bool, error) {
	const walletQuery = `
		SELECT wallet_id, user_id, currency, amount, created_by, created_at, updated_at
		FROM wallets
		WHERE wallet_id = $1
	`

	var row models.WalletDB
	err := r.db.GetContext(ctx, &row, walletQuery, walletID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(walletQuery), " "),
		"args", []any{walletID},
		"result", row,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	amount := domain.EmptyMoney()
	if row.Currency != "" {
		amount, err = moneyFromRow(row.Amount, row.Currency)
		if err != nil {
			return nil, false, err
		}
	}

	wallet := domain.NewWallet(row.WalletID, row.UserID, amount, row.CreatedBy, row.CreatedAt)

	const sharesQuery = `
		SELECT share_id, wallet_id, contributor_id, currency, amount,
		       created_by, created_at, modified_by, modified_at
		FROM shares
		WHERE wallet_id = $1
		ORDER BY created_at
	`

	var shareRows []models.ShareDB
	err = r.db.SelectContext(ctx, &shareRows, sharesQuery, walletID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(sharesQuery), " "),
		"args", []any{walletID},
		"result", len(shareRows),
		"error", err,
	)

	if err != nil {
		return nil, false, err
	}

	for _, sr := range shareRows {
		shareAmount, err := moneyFromRow(sr.Amount, sr.Currency)
		if err != nil {
			return nil, false, err
		}
		share, err := domain.NewShare(sr.ShareID, sr.WalletID, sr.ContributorID, shareAmount, sr.CreatedBy, sr.CreatedAt)
		if err != nil {
			return nil, false, err
		}
		share.ModifiedBy = sr.ModifiedBy
		share.ModifiedOn = sr.ModifiedAt
		wallet.AttachShare(share)
	}

	return wallet, true, nil
}

// WalletWriteRepository handles wallet write operations.
type WalletWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewWalletWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *WalletWriteRepository {
	return &WalletWriteRepository{db: db, txGetter: txGetter}
}

// Save performs an UPSERT on the wallet row and on each share. Shares are
// never deleted: the aggregate only accumulates them.
func (r *WalletWriteRepository) Save(ctx context.Context, wallet *domain.Wallet) error {
	executor := r.executor(ctx)

	currency := ""
	if !wallet.Amount.IsEmpty() {
		currency = wallet.Amount.Currency().Code
	}

	walletQuery := `
		INSERT INTO wallets (wallet_id, user_id, currency, amount, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (wallet_id) DO UPDATE
		SET currency = EXCLUDED.currency,
		    amount = EXCLUDED.amount,
		    updated_at = NOW()
	`
	args := []any{wallet.ID, wallet.OwnerID, currency, wallet.Amount.InMajorUnits(), wallet.CreatedBy, wallet.CreatedOn}

	res, err := executor.ExecContext(ctx, walletQuery, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(walletQuery), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}

	shareQuery := `
		INSERT INTO shares (share_id, wallet_id, contributor_id, currency, amount,
		                    created_by, created_at, modified_by, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (wallet_id, contributor_id, currency) DO UPDATE
		SET amount = EXCLUDED.amount,
		    modified_by = EXCLUDED.modified_by,
		    modified_at = EXCLUDED.modified_at
	`
	for _, s := range wallet.Shares() {
		shareArgs := []any{
			s.ID, s.WalletID, s.ContributorID,
			s.Amount().Currency().Code, s.Amount().InMajorUnits(),
			s.CreatedBy, s.CreatedOn, s.ModifiedBy, s.ModifiedOn,
		}
		_, err = executor.ExecContext(ctx, shareQuery, shareArgs...)

		logger.Log.Infow(
			"query", strings.Join(strings.Fields(shareQuery), " "),
			"args", shareArgs,
			"error", err,
		)

		if err != nil {
			return err
		}
	}

	return nil
}

func (r *WalletWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

func moneyFromRow(amount decimal.Decimal, currencyCode string) (domain.Money, error) {
	currency, err := domain.ParseCurrency(currencyCode)
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(amount, currency, domain.UnitsMajor)
}
