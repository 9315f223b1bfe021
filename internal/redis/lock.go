package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct {
	Client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{Client: client}
}

const (
	inventoryLockTTL = 30 * time.Second
	sessionTTL       = 24 * time.Hour
)

// AcquireEventLock takes a short-lived lock on one event's inventory. Used
// only when inventory locking is enabled; with it off, concurrent bookings
// race on tickets_available exactly like the unlocked system.
func (r *Redis) AcquireEventLock(ctx context.Context, eventID, token string) (bool, error) {
	key := "inventory_lock:" + eventID
	ok, err := r.Client.SetNX(ctx, key, token, inventoryLockTTL).Result()
	return ok, err
}

// ReleaseEventLock releases the lock only if this holder still owns it.
func (r *Redis) ReleaseEventLock(ctx context.Context, eventID, token string) error {
	key := fmt.Sprintf("inventory_lock:%s", eventID)
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already released or expired
	}
	if err != nil {
		return err
	}
	if val == token {
		_, err := r.Client.Del(ctx, key).Result()
		return err
	}
	return nil // do not release a lock owned by someone else
}

// SaveSession stores an opaque login token against the user id with a TTL.
func (r *Redis) SaveSession(ctx context.Context, token string, userID int64) error {
	key := "session:" + token
	return r.Client.Set(ctx, key, userID, sessionTTL).Err()
}

// GetSession resolves a token back to the user id; redis.Nil maps to a
// plain not-found error for the caller.
func (r *Redis) GetSession(ctx context.Context, token string) (int64, error) {
	key := "session:" + token
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, fmt.Errorf("session not found")
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
