package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *UserWriteRepository, fullName string) *domain.User {
	t.Helper()
	user := domain.NewUser(uuid.New(), fullName, "test", time.Now().UTC())
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func TestUserRepository_SaveAndGetByID(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewUserWriteRepository(db, nil)
	reader := NewUserReadRepository(db)

	alice := seedUser(t, writer, "Alice Smith")
	bob := seedUser(t, writer, "Bob Jones")

	require.NoError(t, alice.AddFriend(bob))
	require.NoError(t, writer.Save(ctx, alice))

	got, found, err := reader.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "Alice Smith", got.FullName)

	friendships := got.Friendships()
	require.Len(t, friendships, 1)
	assert.Equal(t, bob.ID, friendships[0].Friend.ID)
	assert.Equal(t, "Bob Jones", friendships[0].Friend.FullName)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()

	reader := NewUserReadRepository(db)

	got, found, err := reader.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestUserRepository_Save_UpdatesExisting(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewUserWriteRepository(db, nil)
	reader := NewUserReadRepository(db)

	user := seedUser(t, writer, "Original Name")

	user.FullName = "Renamed User"
	require.NoError(t, writer.Save(ctx, user))

	got, found, err := reader.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Renamed User", got.FullName)
}

func TestUserRepository_GetAll_SharedGraph(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewUserWriteRepository(db, nil)
	reader := NewUserReadRepository(db)

	// Chain: u1 - u2 - u3, mutual edges
	u1 := seedUser(t, writer, "User One")
	u2 := seedUser(t, writer, "User Two")
	u3 := seedUser(t, writer, "User Three")

	require.NoError(t, u1.AddFriend(u2))
	require.NoError(t, u2.AddFriend(u1))
	require.NoError(t, u2.AddFriend(u3))
	require.NoError(t, u3.AddFriend(u2))
	for _, u := range []*domain.User{u1, u2, u3} {
		require.NoError(t, writer.Save(ctx, u))
	}

	all, err := reader.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	byID := make(map[uuid.UUID]*domain.User, len(all))
	for _, u := range all {
		byID[u.ID] = u
	}

	// The rebuilt graph must support multi-level traversal
	path := byID[u1.ID].ConnectionList(byID[u3.ID], 100)
	require.Len(t, path, 3)
	assert.Equal(t, u1.ID, path[0].ID)
	assert.Equal(t, u2.ID, path[1].ID)
	assert.Equal(t, u3.ID, path[2].ID)
}

func TestUserRepository_Delete_Cascades(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewUserWriteRepository(db, nil)
	reader := NewUserReadRepository(db)

	alice := seedUser(t, writer, "Alice Smith")
	bob := seedUser(t, writer, "Bob Jones")

	require.NoError(t, alice.AddFriend(bob))
	require.NoError(t, bob.AddFriend(alice))
	require.NoError(t, writer.Save(ctx, alice))
	require.NoError(t, writer.Save(ctx, bob))

	walletWriter := NewWalletWriteRepository(db, nil)
	wallet := domain.NewWallet(uuid.New(), bob.ID, domain.EmptyMoney(), "test", time.Now().UTC())
	require.NoError(t, walletWriter.Save(ctx, wallet))

	require.NoError(t, writer.Delete(ctx, bob.ID))

	_, found, err := reader.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, found)

	// Reciprocal edge owned by alice is gone as well
	got, found, err := reader.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, got.Friendships())

	walletReader := NewWalletReadRepository(db)
	_, found, err = walletReader.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
