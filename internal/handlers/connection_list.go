package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
	"github.com/sbilibin2017/gw-social-wallet/internal/services"
)

// defaultMaxLevel bounds the BFS when the client does not ask for one.
const defaultMaxLevel = 100

// ConnectionListTokener defines only the methods needed by this handler.
type ConnectionListTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// ConnectionLister defines the interface that the service must implement.
type ConnectionLister interface {
	ConnectionList(ctx context.Context, userID, targetID uuid.UUID, maxLevel int) ([]models.Connection, error)
}

// ConnectionListResponse represents the shortest friendship path between two members
// swagger:model ConnectionListResponse
type ConnectionListResponse struct {
	// Hops from the first member to the target, inclusive. Empty when the
	// target is unreachable within the level bound.
	Connections []models.Connection `json:"connections"`
}

// ConnectionListErrorResponse represents an error response for connection lists
// swagger:model ConnectionListErrorResponse
type ConnectionListErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewConnectionListHandler returns an HTTP handler that finds friendship paths.
// @Summary Connection list
// @Description Finds the shortest friendship path from one member to another, bounded by max_level hops. An unreachable target yields an empty list.
// @Tags users
// @Produce json
// @Param userID path string true "Member ID"
// @Param targetID path string true "Target member ID"
// @Param max_level query int false "Maximum number of hops" default(100)
// @Success 200 {object} handlers.ConnectionListResponse "Connection path"
// @Failure 400 {object} handlers.ConnectionListErrorResponse "Invalid member id or level"
// @Failure 401 {object} handlers.ConnectionListErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ConnectionListErrorResponse "User not found"
// @Router /users/{userID}/connections/{targetID} [get]
// @Security BearerAuth
func NewConnectionListHandler(svc ConnectionLister, tokenGetter ConnectionListTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := authorize(ctx, w, r, tokenGetter); !ok {
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ConnectionListErrorResponse{Error: "Invalid member id"})
			return
		}
		targetID, err := uuid.Parse(chi.URLParam(r, "targetID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ConnectionListErrorResponse{Error: "Invalid member id"})
			return
		}

		maxLevel := defaultMaxLevel
		if raw := r.URL.Query().Get("max_level"); raw != "" {
			maxLevel, err = strconv.Atoi(raw)
			if err != nil || maxLevel < 0 {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ConnectionListErrorResponse{Error: "Invalid max_level"})
				return
			}
		}

		path, err := svc.ConnectionList(ctx, userID, targetID, maxLevel)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ConnectionListErrorResponse{Error: "User not found"})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ConnectionListErrorResponse{Error: "Internal server error"})
			return
		}

		json.NewEncoder(w).Encode(ConnectionListResponse{Connections: path})
	}
}
