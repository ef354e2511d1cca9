package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrUserDoesNotExist   = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AccountReader defines read-only operations for login accounts.
type AccountReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.AccountDB, bool, error)
}

// AccountWriter defines write operations for login accounts.
type AccountWriter interface {
	Save(ctx context.Context, account models.AccountDB) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService handles registration and login. Registration creates both a
// login account and the member profile it is linked to.
type AuthService struct {
	reader     AccountReader
	writer     AccountWriter
	userWriter UserWriter
	jwt        JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader AccountReader, writer AccountWriter, userWriter UserWriter, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader:     reader,
		writer:     writer,
		userWriter: userWriter,
		jwt:        jwt,
	}
}

// Register registers a new account and creates the linked user profile.
// It returns the new user's id.
func (svc *AuthService) Register(ctx context.Context, username, password, email, fullName string) (uuid.UUID, error) {
	_, found, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check account exists", "err", err)
		return uuid.Nil, err
	}
	if found {
		logger.Log.Errorw("account already exists", "username", username, "email", email)
		return uuid.Nil, ErrUserAlreadyExists
	}

	parsedName, err := domain.ParseFullName(fullName)
	if err != nil {
		logger.Log.Errorw("invalid full name", "full_name", fullName, "err", err)
		return uuid.Nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return uuid.Nil, err
	}

	user := domain.NewUser(uuid.New(), parsedName, username, time.Now().UTC())
	if err := svc.userWriter.Save(ctx, user); err != nil {
		logger.Log.Errorw("failed to save user profile", "err", err)
		return uuid.Nil, err
	}

	account := models.AccountDB{
		AccountID:    uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		UserID:       user.ID,
	}
	if err := svc.writer.Save(ctx, account); err != nil {
		logger.Log.Errorw("failed to save account", "err", err)
		return uuid.Nil, err
	}

	return user.ID, nil
}

// Login authenticates an account and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	account, found, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get account", "err", err)
		return "", err
	}
	if !found {
		logger.Log.Errorw("account does not exist", "username", username)
		return "", ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, account.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}
