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
	"github.com/shopspring/decimal"
)

// WalletContributeTokener defines only the methods needed by this handler.
type WalletContributeTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// Contributor defines the interface that the service must implement.
type Contributor interface {
	Contribute(ctx context.Context, walletID, contributorID uuid.UUID, contributions []services.Contribution, actor string) (*domain.Wallet, error)
}

// ContributionRequest is one contribution inside a contribute request
// swagger:model ContributionRequest
type ContributionRequest struct {
	// Amount in the given units, as a decimal string
	// required: true
	// default: "30.25"
	Amount string `json:"amount"`

	// Currency code
	// required: true
	// default: EUR
	Currency string `json:"currency"`

	// Units of the amount: major or minor. Defaults to major.
	// default: major
	Units string `json:"units"`
}

// WalletContributeRequest represents the JSON body for contributing
// swagger:model WalletContributeRequest
type WalletContributeRequest struct {
	// Contributions to apply together
	// required: true
	Contributions []ContributionRequest `json:"contributions"`
}

// WalletContributeErrorResponse represents an error response for contributions
// swagger:model WalletContributeErrorResponse
type WalletContributeErrorResponse struct {
	// Error message
	// default: Invalid amount or currency
	Error string `json:"error"`
}

// NewWalletContributeHandler returns an HTTP handler that records contributions.
// @Summary Contribute to a wallet
// @Description Records one or more contributions by the authenticated member toward a wallet. Repeat contributions in the same currency accumulate on the existing share.
// @Tags wallets
// @Accept json
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Param request body handlers.WalletContributeRequest true "Contribution request"
// @Success 200 {object} handlers.WalletView "Wallet after the contributions"
// @Failure 400 {object} handlers.WalletContributeErrorResponse "Policy violation / invalid amount or currency"
// @Failure 401 {object} handlers.WalletContributeErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.WalletContributeErrorResponse "Wallet or user not found"
// @Router /wallets/{walletID}/contribute [post]
// @Security BearerAuth
func NewWalletContributeHandler(svc Contributor, tokenGetter WalletContributeTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := authorize(ctx, w, r, tokenGetter)
		if !ok {
			return
		}

		walletID, err := uuid.Parse(chi.URLParam(r, "walletID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WalletContributeErrorResponse{Error: "Invalid wallet id"})
			return
		}

		var req WalletContributeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Contributions) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(WalletContributeErrorResponse{Error: "Invalid request body"})
			return
		}

		contributions := make([]services.Contribution, 0, len(req.Contributions))
		for _, c := range req.Contributions {
			amount, err := decimal.NewFromString(c.Amount)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(WalletContributeErrorResponse{Error: "Invalid amount or currency"})
				return
			}
			contributions = append(contributions, services.Contribution{
				Amount:   amount,
				Currency: c.Currency,
				Units:    domain.Units(c.Units),
			})
		}

		wallet, err := svc.Contribute(ctx, walletID, claims.UserID, contributions, claims.UserID.String())
		if err != nil {
			var domainErr *domain.Error
			switch {
			case errors.Is(err, services.ErrWalletNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(WalletContributeErrorResponse{Error: "Wallet not found"})
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(WalletContributeErrorResponse{Error: "User not found"})
			case errors.As(err, &domainErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(WalletContributeErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(WalletContributeErrorResponse{Error: "Internal server error"})
			}
			return
		}

		json.NewEncoder(w).Encode(toWalletView(wallet))
	}
}
