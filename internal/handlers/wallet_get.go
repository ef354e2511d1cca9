package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/services"
)

// WalletGetTokener defines only the methods needed by this handler.
type WalletGetTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// WalletGetter defines the interface that the service must implement.
type WalletGetter interface {
	GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error)
}

// ShareView represents one contributor's share inside a wallet response
// swagger:model ShareView
type ShareView struct {
	// Share identifier
	ShareID uuid.UUID `json:"share_id"`

	// Contributing member
	ContributorID uuid.UUID `json:"contributor_id"`

	// Currency code of the share
	Currency string `json:"currency"`

	// Cumulative amount in major units, as an exact decimal string
	Amount string `json:"amount"`
}

// WalletView represents a wallet with its shares
// swagger:model WalletView
type WalletView struct {
	// Wallet identifier
	WalletID uuid.UUID `json:"wallet_id"`

	// Owning member
	OwnerID uuid.UUID `json:"owner_id"`

	// Currency of the owner balance, empty when unfunded
	Currency string `json:"currency"`

	// Owner balance in major units, as an exact decimal string
	Amount string `json:"amount"`

	// Contributor shares
	Shares []ShareView `json:"shares"`

	// Share totals per currency, in major units
	TotalShares map[string]string `json:"total_shares"`
}

func toWalletView(wallet *domain.Wallet) WalletView {
	view := WalletView{
		WalletID:    wallet.ID,
		OwnerID:     wallet.OwnerID,
		Amount:      wallet.Amount.InMajorUnits().String(),
		Shares:      []ShareView{},
		TotalShares: map[string]string{},
	}
	if !wallet.Amount.IsEmpty() {
		view.Currency = wallet.Amount.Currency().Code
	}
	for _, s := range wallet.Shares() {
		view.Shares = append(view.Shares, ShareView{
			ShareID:       s.ID,
			ContributorID: s.ContributorID,
			Currency:      s.Amount().Currency().Code,
			Amount:        s.Amount().InMajorUnits().String(),
		})
	}
	for code, total := range wallet.TotalShares() {
		view.TotalShares[code] = total.String()
	}
	return view
}

// WalletGetErrorResponse represents an error response for wallet lookup
// swagger:model WalletGetErrorResponse
type WalletGetErrorResponse struct {
	// Error message
	// default: Wallet not found
	Error string `json:"error"`
}

// NewWalletGetHandler returns an HTTP handler that fetches a wallet.
// @Summary Get a wallet
// @Description Returns a wallet with the owner balance, all contributor shares, and per-currency share totals.
// @Tags wallets
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Success 200 {object} handlers.WalletView "Wallet"
// @Failure 400 {object} handlers.WalletGetErrorResponse "Invalid wallet id"
// @Failure 401 {object} handlers.WalletGetErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.WalletGetErrorResponse "Wallet not found"
// @Router /wallets/{walletID} [get]
// @Security BearerAuth
func NewWalletGetHandler(svc WalletGetter, tokenGetter WalletGetTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := authorize(ctx, w, r, tokenGetter); !ok {
			return
		}

		walletID, err := uuid.Parse(chi.URLParam(r, "walletID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WalletGetErrorResponse{Error: "Invalid wallet id"})
			return
		}

		wallet, err := svc.GetWallet(ctx, walletID)
		if err != nil {
			if errors.Is(err, services.ErrWalletNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(WalletGetErrorResponse{Error: "Wallet not found"})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(WalletGetErrorResponse{Error: "Internal server error"})
			return
		}

		json.NewEncoder(w).Encode(toWalletView(wallet))
	}
}
