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

// CommonFriendsTokener defines only the methods needed by this handler.
type CommonFriendsTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// CommonFriendsFinder defines the interface that the service must implement.
type CommonFriendsFinder interface {
	CommonFriends(ctx context.Context, userID, otherID uuid.UUID) ([]*domain.User, error)
}

// CommonFriendsResponse represents the common friends of two members
// swagger:model CommonFriendsResponse
type CommonFriendsResponse struct {
	// Members befriended by both
	CommonFriends []FriendView `json:"common_friends"`
}

// CommonFriendsErrorResponse represents an error response for common friends
// swagger:model CommonFriendsErrorResponse
type CommonFriendsErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewCommonFriendsHandler returns an HTTP handler that intersects friend sets.
// @Summary Common friends
// @Description Returns the members that two members have as friends in common. Order is unspecified.
// @Tags users
// @Produce json
// @Param userID path string true "Member ID"
// @Param otherID path string true "Other member ID"
// @Success 200 {object} handlers.CommonFriendsResponse "Common friends"
// @Failure 400 {object} handlers.CommonFriendsErrorResponse "Invalid member id"
// @Failure 401 {object} handlers.CommonFriendsErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.CommonFriendsErrorResponse "User not found"
// @Router /users/{userID}/friends/common/{otherID} [get]
// @Security BearerAuth
func NewCommonFriendsHandler(svc CommonFriendsFinder, tokenGetter CommonFriendsTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := authorize(ctx, w, r, tokenGetter); !ok {
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CommonFriendsErrorResponse{Error: "Invalid member id"})
			return
		}
		otherID, err := uuid.Parse(chi.URLParam(r, "otherID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CommonFriendsErrorResponse{Error: "Invalid member id"})
			return
		}

		common, err := svc.CommonFriends(ctx, userID, otherID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(CommonFriendsErrorResponse{Error: "User not found"})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(CommonFriendsErrorResponse{Error: "Internal server error"})
			return
		}

		views := make([]FriendView, 0, len(common))
		for _, friend := range common {
			views = append(views, FriendView{UserID: friend.ID, FullName: friend.FullName})
		}

		json.NewEncoder(w).Encode(CommonFriendsResponse{CommonFriends: views})
	}
}
