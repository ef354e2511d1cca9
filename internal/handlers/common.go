package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
)

type claimsTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// authorize extracts and validates the bearer token, writing a 401 response
// on failure.
func authorize(ctx context.Context, w http.ResponseWriter, r *http.Request, tokenGetter claimsTokener) (*jwt.Claims, bool) {
	tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
	if err != nil {
		logger.Log.Errorw("failed to get token from request", "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
		return nil, false
	}

	claims, err := tokenGetter.GetClaims(ctx, tokenStr)
	if err != nil {
		logger.Log.Errorw("failed to get claims from token", "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
		return nil, false
	}

	return claims, true
}

// FriendView is a shallow member reference inside another response
// swagger:model FriendView
type FriendView struct {
	// Member identifier
	UserID uuid.UUID `json:"user_id"`

	// Display name
	FullName string `json:"full_name"`
}

func toFriendViews(friendships []*domain.Friendship) []FriendView {
	views := make([]FriendView, 0, len(friendships))
	for _, f := range friendships {
		views = append(views, FriendView{UserID: f.Friend.ID, FullName: f.Friend.FullName})
	}
	return views
}
