package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	snapshotKeyPrefix  = "connect4:game:"
	DefaultSnapshotTTL = time.Hour
)

// SnapshotCache stores the latest snapshot of each game as JSON with a TTL,
// so any server instance can answer snapshot reads.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(gameID string) string {
	return snapshotKeyPrefix + gameID
}

func (c *SnapshotCache) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("redis: marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, snapshotKey(snapshot.GameID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: save snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns nil, nil when the key has expired or was never set.
func (c *SnapshotCache) GetSnapshot(ctx context.Context, gameID string) (*domain.Snapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("redis: unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

func (c *SnapshotCache) DeleteSnapshot(ctx context.Context, gameID string) error {
	if err := c.client.Del(ctx, snapshotKey(gameID)).Err(); err != nil {
		return fmt.Errorf("redis: delete snapshot: %w", err)
	}
	return nil
}
