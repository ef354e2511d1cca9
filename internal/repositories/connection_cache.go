package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-social-wallet/internal/logger"
	"github.com/sbilibin2017/gw-social-wallet/internal/models"
)

// ConnectionCacheRepository caches computed connection-list paths in Redis.
// Entries expire by TTL only; friendship writes do not invalidate them.
type ConnectionCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewConnectionCacheRepository creates a new repository instance with optional TTL
func NewConnectionCacheRepository(client *redis.Client, expiration time.Duration) *ConnectionCacheRepository {
	return &ConnectionCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func connectionKey(userID, targetID uuid.UUID, maxLevel int) string {
	return fmt.Sprintf("connections:%s:%s:%d", userID, targetID, maxLevel)
}

// Get fetches a cached path. The second return reports a cache hit; an
// empty cached path (unreachable target) is still a hit.
func (r *ConnectionCacheRepository) Get(ctx context.Context, userID, targetID uuid.UUID, maxLevel int) ([]models.Connection, bool, error) {
	key := connectionKey(userID, targetID, maxLevel)

	val, err := r.client.Get(ctx, key).Result()

	logger.Log.Infow(
		"key", key,
		"result", val,
		"error", err,
	)

	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var path []models.Connection
	if err := json.Unmarshal([]byte(val), &path); err != nil {
		return nil, false, err
	}
	return path, true, nil
}

// Set caches a computed path with expiration.
func (r *ConnectionCacheRepository) Set(ctx context.Context, userID, targetID uuid.UUID, maxLevel int, path []models.Connection) error {
	key := connectionKey(userID, targetID, maxLevel)

	data, err := json.Marshal(path)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}
