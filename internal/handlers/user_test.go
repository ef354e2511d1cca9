package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
	"github.com/sbilibin2017/gw-social-wallet/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGetHandler(t *testing.T) {
	alice := domain.NewUser(uuid.New(), "Alice Smith", "test", time.Now().UTC())
	bob := domain.NewUser(uuid.New(), "Bob Jones", "test", time.Now().UTC())
	require.NoError(t, alice.AddFriend(bob))

	svc := &fakeService{
		getUserFn: func(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
			if userID == alice.ID {
				return alice, nil
			}
			return nil, services.ErrUserNotFound
		},
	}

	router := chi.NewRouter()
	router.Get("/users/{userID}", NewUserGetHandler(svc, authedTokener()))

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/"+alice.ID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp UserGetResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, alice.ID, resp.UserID)
		assert.Equal(t, "Alice Smith", resp.FullName)
		require.Len(t, resp.Friends, 1)
		assert.Equal(t, bob.ID, resp.Friends[0].UserID)
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.NewString(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		deniedRouter := chi.NewRouter()
		deniedRouter.Get("/users/{userID}", NewUserGetHandler(svc, deniedTokener()))

		req := httptest.NewRequest(http.MethodGet, "/users/"+alice.ID.String(), nil)
		rr := httptest.NewRecorder()
		deniedRouter.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestFriendshipAddHandler(t *testing.T) {
	userID := uuid.New()
	friendID := uuid.New()

	tests := []struct {
		name           string
		addFn          func(ctx context.Context, userID, friendID uuid.UUID) error
		body           string
		expectedStatus int
	}{
		{
			name:           "Success",
			addFn:          func(ctx context.Context, userID, friendID uuid.UUID) error { return nil },
			body:           fmt.Sprintf(`{"friend_id":%q}`, friendID),
			expectedStatus: http.StatusOK,
		},
		{
			name: "AlreadyFriends",
			addFn: func(ctx context.Context, userID, friendID uuid.UUID) error {
				return domain.ErrFriendAlreadyExists
			},
			body:           fmt.Sprintf(`{"friend_id":%q}`, friendID),
			expectedStatus: http.StatusConflict,
		},
		{
			name: "SelfFriendship",
			addFn: func(ctx context.Context, userID, friendID uuid.UUID) error {
				return domain.ErrBusinessPolicyViolation
			},
			body:           fmt.Sprintf(`{"friend_id":%q}`, userID),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "FriendNotFound",
			addFn: func(ctx context.Context, userID, friendID uuid.UUID) error {
				return services.ErrUserNotFound
			},
			body:           fmt.Sprintf(`{"friend_id":%q}`, friendID),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "MissingFriendID",
			addFn:          nil,
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Post("/users/{userID}/friends",
				NewFriendshipAddHandler(&fakeService{addFriendshipFn: tt.addFn}, authedTokener()))

			req := httptest.NewRequest(http.MethodPost, "/users/"+userID.String()+"/friends",
				bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestConnectionListHandler(t *testing.T) {
	userID := uuid.New()
	targetID := uuid.New()

	path := []models.Connection{
		{UserID: userID, FullName: "Alice Smith"},
		{UserID: targetID, FullName: "Bob Jones"},
	}

	svc := &fakeService{
		connectionListFn: func(ctx context.Context, uID, tID uuid.UUID, maxLevel int) ([]models.Connection, error) {
			assert.Equal(t, userID, uID)
			assert.Equal(t, targetID, tID)
			return path, nil
		},
	}

	router := chi.NewRouter()
	router.Get("/users/{userID}/connections/{targetID}", NewConnectionListHandler(svc, authedTokener()))

	t.Run("DefaultLevel", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/users/"+userID.String()+"/connections/"+targetID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp ConnectionListResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, path, resp.Connections)
	})

	t.Run("ExplicitLevel", func(t *testing.T) {
		levelSeen := 0
		levelSvc := &fakeService{
			connectionListFn: func(ctx context.Context, uID, tID uuid.UUID, maxLevel int) ([]models.Connection, error) {
				levelSeen = maxLevel
				return []models.Connection{}, nil
			},
		}
		levelRouter := chi.NewRouter()
		levelRouter.Get("/users/{userID}/connections/{targetID}", NewConnectionListHandler(levelSvc, authedTokener()))

		req := httptest.NewRequest(http.MethodGet,
			"/users/"+userID.String()+"/connections/"+targetID.String()+"?max_level=3", nil)
		rr := httptest.NewRecorder()
		levelRouter.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 3, levelSeen)
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/users/"+userID.String()+"/connections/"+targetID.String()+"?max_level=abc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		notFoundSvc := &fakeService{
			connectionListFn: func(ctx context.Context, uID, tID uuid.UUID, maxLevel int) ([]models.Connection, error) {
				return nil, services.ErrUserNotFound
			},
		}
		notFoundRouter := chi.NewRouter()
		notFoundRouter.Get("/users/{userID}/connections/{targetID}", NewConnectionListHandler(notFoundSvc, authedTokener()))

		req := httptest.NewRequest(http.MethodGet,
			"/users/"+userID.String()+"/connections/"+targetID.String(), nil)
		rr := httptest.NewRecorder()
		notFoundRouter.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
