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

// UserGetTokener defines only the methods needed by this handler.
type UserGetTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// UserGetter defines the interface that the service must implement.
type UserGetter interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserGetResponse represents a member with its direct friends
// swagger:model UserGetResponse
type UserGetResponse struct {
	// Member identifier
	UserID uuid.UUID `json:"user_id"`

	// Display name
	FullName string `json:"full_name"`

	// Direct friends
	Friends []FriendView `json:"friends"`
}

// UserGetErrorResponse represents an error response for member lookup
// swagger:model UserGetErrorResponse
type UserGetErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewUserGetHandler returns an HTTP handler that fetches a member.
// @Summary Get a member
// @Description Returns a member profile with its direct friends.
// @Tags users
// @Produce json
// @Param userID path string true "Member ID"
// @Success 200 {object} handlers.UserGetResponse "Member"
// @Failure 400 {object} handlers.UserGetErrorResponse "Invalid member id"
// @Failure 401 {object} handlers.UserGetErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.UserGetErrorResponse "User not found"
// @Router /users/{userID} [get]
// @Security BearerAuth
func NewUserGetHandler(svc UserGetter, tokenGetter UserGetTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := authorize(ctx, w, r, tokenGetter); !ok {
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserGetErrorResponse{Error: "Invalid member id"})
			return
		}

		user, err := svc.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UserGetErrorResponse{Error: "User not found"})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserGetErrorResponse{Error: "Internal server error"})
			return
		}

		json.NewEncoder(w).Encode(UserGetResponse{
			UserID:   user.ID,
			FullName: user.FullName,
			Friends:  toFriendViews(user.Friendships()),
		})
	}
}
