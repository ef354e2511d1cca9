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
)

// UserCreateTokener defines only the methods needed by this handler.
type UserCreateTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// UserCreator defines the interface that the service must implement.
type UserCreator interface {
	CreateUser(ctx context.Context, fullName, createdBy string) (*domain.User, error)
}

// UserCreateRequest represents the JSON body for creating a member
// swagger:model UserCreateRequest
type UserCreateRequest struct {
	// Display name, 2 to 100 characters after trimming
	// required: true
	// default: John Doe
	FullName string `json:"full_name"`
}

// UserCreateResponse represents a successful member creation response
// swagger:model UserCreateResponse
type UserCreateResponse struct {
	// Identifier of the created member
	UserID uuid.UUID `json:"user_id"`

	// Display name
	FullName string `json:"full_name"`
}

// UserCreateErrorResponse represents an error response for member creation
// swagger:model UserCreateErrorResponse
type UserCreateErrorResponse struct {
	// Error message
	// default: Invalid full name
	Error string `json:"error"`
}

// NewUserCreateHandler returns an HTTP handler that creates a member.
// @Summary Create a member
// @Description Creates a member profile without a login account, e.g. for seeding the friendship graph.
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.UserCreateRequest true "Member creation request"
// @Success 201 {object} handlers.UserCreateResponse "Member created"
// @Failure 400 {object} handlers.UserCreateErrorResponse "Invalid full name"
// @Failure 401 {object} handlers.UserCreateErrorResponse "Unauthorized"
// @Router /users [post]
// @Security BearerAuth
func NewUserCreateHandler(svc UserCreator, tokenGetter UserCreateTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := authorize(ctx, w, r, tokenGetter)
		if !ok {
			return
		}

		var req UserCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode user create request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserCreateErrorResponse{Error: "Invalid request body"})
			return
		}

		user, err := svc.CreateUser(ctx, req.FullName, claims.UserID.String())
		if err != nil {
			if errors.Is(err, domain.ErrInvalidFullNameFormat) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(UserCreateErrorResponse{Error: err.Error()})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserCreateErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(UserCreateResponse{
			UserID:   user.ID,
			FullName: user.FullName,
		})
	}
}
