package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the notification queue and the agent's daily notify log.
// Both degrade to in-memory fallbacks, so startup never blocks on it.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds a client with timeouts short enough that a dead Redis
// turns into a fallback instead of a hung request. MaxRetries stays low
// for the same reason: the worker's blocking pop already loops.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		MaxRetries:   1,
	})
	return &Redis{Client: client}
}

// Healthy reports whether Redis answers a ping.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}
