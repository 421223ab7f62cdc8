// Package rediscache layers a read-through push-address cache over the
// directory. The directory is eventually consistent anyway, so a short TTL
// cache does not change its contract.
package rediscache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/strogmv/chatpush/internal/domain"
	"github.com/strogmv/chatpush/internal/pkg/logger"
	"github.com/strogmv/chatpush/internal/port"
)

const addressKeyPrefix = "chatpush:pushaddr:"

type Cache struct {
	next port.Directory
	rdb  *redis.Client
	ttl  time.Duration
}

func New(next port.Directory, rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{next: next, rdb: rdb, ttl: ttl}
}

// PushAddress serves from Redis when possible and falls back to the
// underlying directory on a miss or any cache failure. Negative results are
// not cached: a user registering a device must become reachable within one
// event, not one TTL.
func (c *Cache) PushAddress(ctx context.Context, userID string) (string, bool, error) {
	key := addressKeyPrefix + userID
	val, err := c.rdb.Get(ctx, key).Result()
	if err == nil && val != "" {
		return val, true, nil
	}
	if err != nil && err != redis.Nil {
		logger.From(ctx).Warn("directory cache read failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	addr, found, err := c.next.PushAddress(ctx, userID)
	if err != nil || !found {
		return addr, found, err
	}
	if setErr := c.rdb.Set(ctx, key, addr, c.ttl).Err(); setErr != nil {
		logger.From(ctx).Warn("directory cache write failed",
			slog.String("user_id", userID),
			slog.Any("error", setErr),
		)
	}
	return addr, true, nil
}

// ListAdmins is not cached: the admin set drives the recipient policy and a
// stale set would widen or narrow the fan-out.
func (c *Cache) ListAdmins(ctx context.Context) ([]domain.DirectoryEntry, error) {
	return c.next.ListAdmins(ctx)
}
