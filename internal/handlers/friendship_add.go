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

// FriendshipAddTokener defines only the methods needed by this handler.
type FriendshipAddTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// FriendshipAdder defines the interface that the service must implement.
type FriendshipAdder interface {
	AddFriendship(ctx context.Context, userID, friendID uuid.UUID) error
}

// FriendshipAddRequest represents the JSON body for adding a friend
// swagger:model FriendshipAddRequest
type FriendshipAddRequest struct {
	// Identifier of the member to befriend
	// required: true
	FriendID uuid.UUID `json:"friend_id"`
}

// FriendshipAddResponse represents a successful friendship response
// swagger:model FriendshipAddResponse
type FriendshipAddResponse struct {
	// Success message
	// default: Friendship established
	Message string `json:"message"`
}

// FriendshipAddErrorResponse represents an error response for adding a friend
// swagger:model FriendshipAddErrorResponse
type FriendshipAddErrorResponse struct {
	// Error message
	// default: The user is already a friend
	Error string `json:"error"`
}

// NewFriendshipAddHandler returns an HTTP handler that befriends two members.
// @Summary Add a friend
// @Description Establishes a mutual friendship between the member in the path and the member in the body.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "Member ID"
// @Param request body handlers.FriendshipAddRequest true "Friendship request"
// @Success 200 {object} handlers.FriendshipAddResponse "Friendship established"
// @Failure 400 {object} handlers.FriendshipAddErrorResponse "Self friendship / invalid request"
// @Failure 401 {object} handlers.FriendshipAddErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.FriendshipAddErrorResponse "User not found"
// @Failure 409 {object} handlers.FriendshipAddErrorResponse "The user is already a friend"
// @Router /users/{userID}/friends [post]
// @Security BearerAuth
func NewFriendshipAddHandler(svc FriendshipAdder, tokenGetter FriendshipAddTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := authorize(ctx, w, r, tokenGetter); !ok {
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(FriendshipAddErrorResponse{Error: "Invalid member id"})
			return
		}

		var req FriendshipAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FriendID == uuid.Nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(FriendshipAddErrorResponse{Error: "Invalid request body"})
			return
		}

		if err := svc.AddFriendship(ctx, userID, req.FriendID); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(FriendshipAddErrorResponse{Error: "User not found"})
			case errors.Is(err, domain.ErrFriendAlreadyExists):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(FriendshipAddErrorResponse{Error: "The user is already a friend"})
			case errors.Is(err, domain.ErrBusinessPolicyViolation):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(FriendshipAddErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(FriendshipAddErrorResponse{Error: "Internal server error"})
			}
			return
		}

		json.NewEncoder(w).Encode(FriendshipAddResponse{Message: "Friendship established"})
	}
}
