package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockAccountReader(ctrl)
	writer := NewMockAccountWriter(ctrl)
	userWriter := NewMockUserWriter(ctrl)
	jwtGen := NewMockJWTGenerator(ctrl)

	reader.EXPECT().GetByUsernameOrEmail(ctx, gomock.Any(), gomock.Any()).Return(nil, false, nil)
	userWriter.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	writer.EXPECT().Save(ctx, gomock.Any()).Return(nil)

	svc := NewAuthService(reader, writer, userWriter, jwtGen)
	userID, err := svc.Register(ctx, "alice", "password123", "alice@example.com", "Alice Smith")

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, userID)
}

func TestAuthService_Register_AlreadyExists(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockAccountReader(ctrl)
	writer := NewMockAccountWriter(ctrl)
	userWriter := NewMockUserWriter(ctrl)
	jwtGen := NewMockJWTGenerator(ctrl)

	reader.EXPECT().GetByUsernameOrEmail(ctx, gomock.Any(), gomock.Any()).
		Return(&models.AccountDB{Username: "alice"}, true, nil)

	svc := NewAuthService(reader, writer, userWriter, jwtGen)
	_, err := svc.Register(ctx, "alice", "password123", "alice@example.com", "Alice Smith")

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Register_InvalidFullName(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockAccountReader(ctrl)
	writer := NewMockAccountWriter(ctrl)
	userWriter := NewMockUserWriter(ctrl)
	jwtGen := NewMockJWTGenerator(ctrl)

	reader.EXPECT().GetByUsernameOrEmail(ctx, gomock.Any(), gomock.Any()).Return(nil, false, nil)

	svc := NewAuthService(reader, writer, userWriter, jwtGen)
	_, err := svc.Register(ctx, "alice", "password123", "alice@example.com", " ")

	assert.Error(t, err)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockAccountReader(ctrl)
	writer := NewMockAccountWriter(ctrl)
	userWriter := NewMockUserWriter(ctrl)
	jwtGen := NewMockJWTGenerator(ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	reader.EXPECT().GetByUsernameOrEmail(ctx, gomock.Any(), nil).
		Return(&models.AccountDB{Username: "alice", PasswordHash: string(hash), UserID: userID}, true, nil)
	jwtGen.EXPECT().Generate(ctx, userID).Return("token123", nil)

	svc := NewAuthService(reader, writer, userWriter, jwtGen)
	token, err := svc.Login(ctx, "alice", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "token123", token)
}

func TestAuthService_Login_UserDoesNotExist(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockAccountReader(ctrl)
	writer := NewMockAccountWriter(ctrl)
	userWriter := NewMockUserWriter(ctrl)
	jwtGen := NewMockJWTGenerator(ctrl)

	reader.EXPECT().GetByUsernameOrEmail(ctx, gomock.Any(), nil).Return(nil, false, nil)

	svc := NewAuthService(reader, writer, userWriter, jwtGen)
	_, err := svc.Login(ctx, "ghost", "password123")

	assert.ErrorIs(t, err, ErrUserDoesNotExist)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockAccountReader(ctrl)
	writer := NewMockAccountWriter(ctrl)
	userWriter := NewMockUserWriter(ctrl)
	jwtGen := NewMockJWTGenerator(ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	reader.EXPECT().GetByUsernameOrEmail(ctx, gomock.Any(), nil).
		Return(&models.AccountDB{Username: "alice", PasswordHash: string(hash)}, true, nil)

	svc := NewAuthService(reader, writer, userWriter, jwtGen)
	_, err = svc.Login(ctx, "alice", "wrongpassword")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_ReaderError(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockAccountReader(ctrl)
	writer := NewMockAccountWriter(ctrl)
	userWriter := NewMockUserWriter(ctrl)
	jwtGen := NewMockJWTGenerator(ctrl)

	reader.EXPECT().GetByUsernameOrEmail(ctx, gomock.Any(), nil).
		Return(nil, false, errors.New("db down"))

	svc := NewAuthService(reader, writer, userWriter, jwtGen)
	_, err := svc.Login(ctx, "alice", "password123")

	assert.Error(t, err)
}
