package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// UserReader defines read-only operations for user aggregates.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, bool, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
}

// UserWriter defines write operations for user aggregates.
type UserWriter interface {
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ConnectionCache caches computed connection-list paths.
type ConnectionCache interface {
	Get(ctx context.Context, userID, targetID uuid.UUID, maxLevel int) ([]models.Connection, bool, error)
	Set(ctx context.Context, userID, targetID uuid.UUID, maxLevel int, path []models.Connection) error
}

// UserService handles member profiles and the friendship graph.
type UserService struct {
	reader UserReader
	writer UserWriter
	cache  ConnectionCache
}

// NewUserService creates a new UserService. The cache may be nil, in which
// case every connection list is computed from storage.
func NewUserService(reader UserReader, writer UserWriter, cache ConnectionCache) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		cache:  cache,
	}
}

// CreateUser validates the display name and persists a new member.
func (s *UserService) CreateUser(ctx context.Context, fullName, createdBy string) (*domain.User, error) {
	parsedName, err := domain.ParseFullName(fullName)
	if err != nil {
		logger.Log.Errorw("invalid full name", "full_name", fullName, "error", err)
		return nil, err
	}

	user := domain.NewUser(uuid.New(), parsedName, createdBy, time.Now().UTC())
	if err := s.writer.Save(ctx, user); err != nil {
		logger.Log.Errorw("failed to save user", "userID", user.ID, "error", err)
		return nil, err
	}
	return user, nil
}

// GetUser loads a member with its direct friendships.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, found, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "error", err)
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// DeleteUser removes a member. Edges pointing at the member from other
// users are removed as well.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	_, found, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "error", err)
		return err
	}
	if !found {
		return ErrUserNotFound
	}

	if err := s.writer.Delete(ctx, userID); err != nil {
		logger.Log.Errorw("failed to delete user", "userID", userID, "error", err)
		return err
	}
	return nil
}

// AddFriendship establishes a mutual friendship: one edge per direction,
// both persisted.
func (s *UserService) AddFriendship(ctx context.Context, userID, friendID uuid.UUID) error {
	user, found, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "error", err)
		return err
	}
	if !found {
		return ErrUserNotFound
	}

	friend, found, err := s.reader.GetByID(ctx, friendID)
	if err != nil {
		logger.Log.Errorw("failed to get friend", "userID", friendID, "error", err)
		return err
	}
	if !found {
		return ErrUserNotFound
	}

	if err := user.AddFriend(friend); err != nil {
		return err
	}
	if err := friend.AddFriend(user); err != nil {
		return err
	}

	if err := s.writer.Save(ctx, user); err != nil {
		logger.Log.Errorw("failed to save user", "userID", userID, "error", err)
		return err
	}
	if err := s.writer.Save(ctx, friend); err != nil {
		logger.Log.Errorw("failed to save friend", "userID", friendID, "error", err)
		return err
	}
	return nil
}

// CommonFriends intersects the friend sets of two members.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID uuid.UUID) ([]*domain.User, error) {
	user, found, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "error", err)
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}

	other, found, err := s.reader.GetByID(ctx, otherID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", otherID, "error", err)
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}

	return user.CommonFriends(other), nil
}

// ConnectionList finds the shortest friendship path between two members,
// bounded by maxLevel hops. Results are served from cache when present;
// entries expire by TTL only, so a recent friendship change may not be
// reflected until the entry lapses.
func (s *UserService) ConnectionList(ctx context.Context, userID, targetID uuid.UUID, maxLevel int) ([]models.Connection, error) {
	if s.cache != nil {
		path, hit, err := s.cache.Get(ctx, userID, targetID, maxLevel)
		if err != nil {
			logger.Log.Warnw("connection cache read failed", "userID", userID, "targetID", targetID, "error", err)
		} else if hit {
			return path, nil
		}
	}

	// The whole graph is loaded so BFS can cross edges between shared
	// aggregate instances.
	users, err := s.reader.GetAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to load user graph", "error", err)
		return nil, err
	}

	var user, target *domain.User
	for _, u := range users {
		switch u.ID {
		case userID:
			user = u
		case targetID:
			target = u
		}
	}
	if userID == targetID && user != nil {
		target = user
	}
	if user == nil || target == nil {
		return nil, ErrUserNotFound
	}

	path := []models.Connection{}
	for _, node := range user.ConnectionList(target, maxLevel) {
		path = append(path, models.Connection{UserID: node.ID, FullName: node.FullName})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, targetID, maxLevel, path); err != nil {
			logger.Log.Warnw("connection cache write failed", "userID", userID, "targetID", targetID, "error", err)
		}
	}

	return path, nil
}
