package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
	"github.com/sbilibin2017/gw-social-wallet/internal/services"
	"github.com/shopspring/decimal"
)

// fakeTokener satisfies the per-handler tokener interfaces.
type fakeTokener struct {
	claims *jwt.Claims
	err    error
}

func (f *fakeTokener) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token", nil
}

func (f *fakeTokener) GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func authedTokener() *fakeTokener {
	return &fakeTokener{claims: &jwt.Claims{UserID: uuid.New()}}
}

func deniedTokener() *fakeTokener {
	return &fakeTokener{err: errors.New("authorization header missing")}
}

// fakeService satisfies the per-handler service interfaces through
// function fields, so each test plugs in only what it needs.
type fakeService struct {
	registerFn       func(ctx context.Context, username, password, email, fullName string) (uuid.UUID, error)
	loginFn          func(ctx context.Context, username, password string) (string, error)
	createUserFn     func(ctx context.Context, fullName, createdBy string) (*domain.User, error)
	getUserFn        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	deleteUserFn     func(ctx context.Context, userID uuid.UUID) error
	addFriendshipFn  func(ctx context.Context, userID, friendID uuid.UUID) error
	commonFriendsFn  func(ctx context.Context, userID, otherID uuid.UUID) ([]*domain.User, error)
	connectionListFn func(ctx context.Context, userID, targetID uuid.UUID, maxLevel int) ([]models.Connection, error)
	createWalletFn   func(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal, currency string, actor string) (*domain.Wallet, error)
	getWalletFn      func(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error)
	contributeFn     func(ctx context.Context, walletID, contributorID uuid.UUID, contributions []services.Contribution, actor string) (*domain.Wallet, error)
}

func (f *fakeService) Register(ctx context.Context, username, password, email, fullName string) (uuid.UUID, error) {
	return f.registerFn(ctx, username, password, email, fullName)
}

func (f *fakeService) Login(ctx context.Context, username, password string) (string, error) {
	return f.loginFn(ctx, username, password)
}

func (f *fakeService) CreateUser(ctx context.Context, fullName, createdBy string) (*domain.User, error) {
	return f.createUserFn(ctx, fullName, createdBy)
}

func (f *fakeService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return f.getUserFn(ctx, userID)
}

func (f *fakeService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return f.deleteUserFn(ctx, userID)
}

func (f *fakeService) AddFriendship(ctx context.Context, userID, friendID uuid.UUID) error {
	return f.addFriendshipFn(ctx, userID, friendID)
}

func (f *fakeService) CommonFriends(ctx context.Context, userID, otherID uuid.UUID) ([]*domain.User, error) {
	return f.commonFriendsFn(ctx, userID, otherID)
}

func (f *fakeService) ConnectionList(ctx context.Context, userID, targetID uuid.UUID, maxLevel int) ([]models.Connection, error) {
	return f.connectionListFn(ctx, userID, targetID, maxLevel)
}

func (f *fakeService) CreateWallet(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal, currency string, actor string) (*domain.Wallet, error) {
	return f.createWalletFn(ctx, ownerID, amount, currency, actor)
}

func (f *fakeService) GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	return f.getWalletFn(ctx, walletID)
}

func (f *fakeService) Contribute(ctx context.Context, walletID, contributorID uuid.UUID, contributions []services.Contribution, actor string) (*domain.Wallet, error) {
	return f.contributeFn(ctx, walletID, contributorID, contributions, actor)
}
