package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/services"
	"github.com/shopspring/decimal"
)

// WalletCreateTokener defines only the methods needed by this handler.
type WalletCreateTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// WalletCreator defines the interface that the service must implement.
type WalletCreator interface {
	CreateWallet(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal, currency string, actor string) (*domain.Wallet, error)
}

// WalletCreateRequest represents the JSON body for creating a wallet
// swagger:model WalletCreateRequest
type WalletCreateRequest struct {
	// Owning member. Defaults to the authenticated member when omitted.
	OwnerID uuid.UUID `json:"owner_id"`

	// Initial owner balance in major units, as a decimal string
	// default: "0"
	Amount string `json:"amount"`

	// Currency code of the initial balance. Empty creates an unfunded wallet.
	// default: USD
	Currency string `json:"currency"`
}

// WalletCreateErrorResponse represents an error response for wallet creation
// swagger:model WalletCreateErrorResponse
type WalletCreateErrorResponse struct {
	// Error message
	// default: Invalid amount or currency
	Error string `json:"error"`
}

// NewWalletCreateHandler returns an HTTP handler that creates a wallet.
// @Summary Create a wallet
// @Description Creates a wallet for a member, optionally funded with an initial balance.
// @Tags wallets
// @Accept json
// @Produce json
// @Param request body handlers.WalletCreateRequest true "Wallet creation request"
// @Success 201 {object} handlers.WalletView "Wallet created"
// @Failure 400 {object} handlers.WalletCreateErrorResponse "Invalid amount or currency"
// @Failure 401 {object} handlers.WalletCreateErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.WalletCreateErrorResponse "User not found"
// @Router /wallets [post]
// @Security BearerAuth
func NewWalletCreateHandler(svc WalletCreator, tokenGetter WalletCreateTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := authorize(ctx, w, r, tokenGetter)
		if !ok {
			return
		}

		var req WalletCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WalletCreateErrorResponse{Error: "Invalid request body"})
			return
		}

		ownerID := req.OwnerID
		if ownerID == uuid.Nil {
			ownerID = claims.UserID
		}

		amount := decimal.Zero
		if req.Amount != "" {
			var err error
			amount, err = decimal.NewFromString(req.Amount)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(WalletCreateErrorResponse{Error: "Invalid amount or currency"})
				return
			}
		}

		wallet, err := svc.CreateWallet(ctx, ownerID, amount, req.Currency, claims.UserID.String())
		if err != nil {
			var domainErr *domain.Error
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(WalletCreateErrorResponse{Error: "User not found"})
			case errors.As(err, &domainErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(WalletCreateErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(WalletCreateErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toWalletView(wallet))
	}
}
