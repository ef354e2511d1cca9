package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-social-wallet/internal/domain"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
)

// UserReadRepository handles user read operations.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID loads a user with its direct friendship edges. Friends are
// attached as shallow users: their own edges are not loaded.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, bool, error) {
	const userQuery = `
		SELECT user_id, full_name, created_by, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var row models.UserDB
	err := r.db.GetContext(ctx, &row, userQuery, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(userQuery), " "),
		"args", []any{userID},
		"result", row,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	user := domain.NewUser(row.UserID, row.FullName, row.CreatedBy, row.CreatedAt)
	if err := r.attachFriends(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// GetAll loads every user and wires friendship edges between the shared
// aggregate instances, so graph traversals cross multiple levels.
func (r *UserReadRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	const usersQuery = `
		SELECT user_id, full_name, created_by, created_at, updated_at
		FROM users
	`

	var userRows []models.UserDB
	err := r.db.SelectContext(ctx, &userRows, usersQuery)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(usersQuery), " "),
		"result", len(userRows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(userRows))
	byID := make(map[uuid.UUID]*domain.User, len(userRows))
	for _, row := range userRows {
		u := domain.NewUser(row.UserID, row.FullName, row.CreatedBy, row.CreatedAt)
		users = append(users, u)
		byID[u.ID] = u
	}

	const edgesQuery = `
		SELECT friendship_id, user_id, friend_id, created_at
		FROM friendships
	`

	var edgeRows []models.FriendshipDB
	err = r.db.SelectContext(ctx, &edgeRows, edgesQuery)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(edgesQuery), " "),
		"result", len(edgeRows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	for _, e := range edgeRows {
		owner, ok := byID[e.UserID]
		if !ok {
			continue
		}
		friend, ok := byID[e.FriendID]
		if !ok {
			continue
		}
		owner.AttachFriendship(&domain.Friendship{
			ID:        e.FriendshipID,
			UserID:    e.UserID,
			Friend:    friend,
			CreatedOn: e.CreatedAt,
		})
	}

	return users, nil
}

func (r *UserReadRepository) attachFriends(ctx context.Context, user *domain.User) error {
	const query = `
		SELECT f.friendship_id, f.friend_id, u.full_name, f.created_at
		FROM friendships f
		JOIN users u ON u.user_id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY f.created_at
	`

	var rows []models.FriendRow
	err := r.db.SelectContext(ctx, &rows, query, user.ID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.ID},
		"result", len(rows),
		"error", err,
	)

	if err != nil {
		return err
	}

	for _, row := range rows {
		user.AttachFriendship(&domain.Friendship{
			ID:        row.FriendshipID,
			UserID:    user.ID,
			Friend:    domain.NewUser(row.FriendID, row.FullName, "", time.Time{}),
			CreatedOn: row.CreatedAt,
		})
	}
	return nil
}

// UserWriteRepository handles user write operations.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save performs an UPSERT on the user row and rewrites its friendship
// edges to match the aggregate.
func (r *UserWriteRepository) Save(ctx context.Context, user *domain.User) error {
	executor := r.executor(ctx)

	userQuery := `
		INSERT INTO users (user_id, full_name, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    updated_at = NOW()
	`
	args := []any{user.ID, user.FullName, user.CreatedBy, user.CreatedOn}

	res, err := executor.ExecContext(ctx, userQuery, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(userQuery), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}

	deleteQuery := `DELETE FROM friendships WHERE user_id = $1`
	_, err = executor.ExecContext(ctx, deleteQuery, user.ID)

	logger.Log.Infow(
		"query", deleteQuery,
		"args", []any{user.ID},
		"error", err,
	)

	if err != nil {
		return err
	}

	edgeQuery := `
		INSERT INTO friendships (friendship_id, user_id, friend_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`
	for _, f := range user.Friendships() {
		edgeArgs := []any{f.ID, user.ID, f.Friend.ID, f.CreatedOn}
		_, err = executor.ExecContext(ctx, edgeQuery, edgeArgs...)

		logger.Log.Infow(
			"query", strings.Join(strings.Fields(edgeQuery), " "),
			"args", edgeArgs,
			"error", err,
		)

		if err != nil {
			return err
		}
	}

	return nil
}

// Delete removes the user, its edges in both directions, and cascades to
// its wallets and shares.
func (r *UserWriteRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	executor := r.executor(ctx)

	queries := []string{
		`DELETE FROM friendships WHERE user_id = $1 OR friend_id = $1`,
		`DELETE FROM shares WHERE contributor_id = $1
		   OR wallet_id IN (SELECT wallet_id FROM wallets WHERE user_id = $1)`,
		`DELETE FROM wallets WHERE user_id = $1`,
		`DELETE FROM users WHERE user_id = $1`,
	}

	for _, query := range queries {
		_, err := executor.ExecContext(ctx, query, userID)

		logger.Log.Infow(
			"query", strings.Join(strings.Fields(query), " "),
			"args", []any{userID},
			"error", err,
		)

		if err != nil {
			return err
		}
	}
	return nil
}

func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}
