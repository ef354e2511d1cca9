package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/services"
)

// UserDeleteTokener defines only the methods needed by this handler.
type UserDeleteTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// UserDeleter defines the interface that the service must implement.
type UserDeleter interface {
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserDeleteResponse represents a successful member removal response
// swagger:model UserDeleteResponse
type UserDeleteResponse struct {
	// Success message
	// default: User deleted successfully
	Message string `json:"message"`
}

// UserDeleteErrorResponse represents an error response for member removal
// swagger:model UserDeleteErrorResponse
type UserDeleteErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewUserDeleteHandler returns an HTTP handler that removes a member.
// @Summary Delete a member
// @Description Removes a member. Friendship edges pointing at the member and the member's wallets are removed as well.
// @Tags users
// @Produce json
// @Param userID path string true "Member ID"
// @Success 200 {object} handlers.UserDeleteResponse "Member deleted"
// @Failure 400 {object} handlers.UserDeleteErrorResponse "Invalid member id"
// @Failure 401 {object} handlers.UserDeleteErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.UserDeleteErrorResponse "User not found"
// @Router /users/{userID} [delete]
// @Security BearerAuth
func NewUserDeleteHandler(svc UserDeleter, tokenGetter UserDeleteTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := authorize(ctx, w, r, tokenGetter); !ok {
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserDeleteErrorResponse{Error: "Invalid member id"})
			return
		}

		if err := svc.DeleteUser(ctx, userID); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UserDeleteErrorResponse{Error: "User not found"})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserDeleteErrorResponse{Error: "Internal server error"})
			return
		}

		json.NewEncoder(w).Encode(UserDeleteResponse{Message: "User deleted successfully"})
	}
}
