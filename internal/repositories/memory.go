package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
)

// MemoryUserRepository is an in-memory user store for tests and local runs.
// Last write wins; aggregates are stored by reference, so callers share
// instances and graph traversals work across levels.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	return user, ok, nil
}

func (r *MemoryUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *MemoryUserRepository) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	for _, u := range r.users {
		u.RemoveFriend(userID)
	}
	return nil
}

// MemoryWalletRepository is an in-memory wallet store.
type MemoryWalletRepository struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func NewMemoryWalletRepository() *MemoryWalletRepository {
	return &MemoryWalletRepository{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *MemoryWalletRepository) GetByID(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.wallets[walletID]
	return wallet, ok, nil
}

func (r *MemoryWalletRepository) Save(ctx context.Context, wallet *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[wallet.ID] = wallet
	return nil
}

// MemoryAccountRepository is an in-memory login account store.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.AccountDB
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[string]models.AccountDB)}
}

func (r *MemoryAccountRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.AccountDB, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if username != nil && account.Username != *username {
			continue
		}
		if email != nil && account.Email != *email {
			continue
		}
		found := account
		return &found, true, nil
	}
	return nil, false, nil
}

func (r *MemoryAccountRepository) Save(ctx context.Context, account models.AccountDB) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.Username] = account
	return nil
}
