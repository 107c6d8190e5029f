package geofence

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryNotifyLog keeps the daily notification flag in memory. Used by
// tests and by the agent when Redis is not configured.
type MemoryNotifyLog struct {
	mu   sync.Mutex
	days map[string]bool
}

// NewMemoryNotifyLog creates an empty log.
func NewMemoryNotifyLog() *MemoryNotifyLog {
	return &MemoryNotifyLog{days: make(map[string]bool)}
}

// AlreadyNotified reports whether the flag is set for the day.
func (l *MemoryNotifyLog) AlreadyNotified(_ context.Context, day string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.days[day], nil
}

// MarkNotified sets the flag for the day.
func (l *MemoryNotifyLog) MarkNotified(_ context.Context, day string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.days[day] = true
	return nil
}

// RedisNotifyLog persists the daily flag in Redis so the agent survives
// restarts without renotifying.
type RedisNotifyLog struct {
	client *redis.Client
	prefix string
}

// NewRedisNotifyLog creates a log under the given key prefix.
func NewRedisNotifyLog(client *redis.Client, prefix string) *RedisNotifyLog {
	if prefix == "" {
		prefix = "ponto:geofence:notified"
	}
	return &RedisNotifyLog{client: client, prefix: prefix}
}

func (l *RedisNotifyLog) key(day string) string { return l.prefix + ":" + day }

// AlreadyNotified reports whether the flag exists for the day.
func (l *RedisNotifyLog) AlreadyNotified(ctx context.Context, day string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(day)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkNotified sets the flag with a 48h expiry; the key is day-scoped so
// a longer TTL only wastes a little space.
func (l *RedisNotifyLog) MarkNotified(ctx context.Context, day string) error {
	return l.client.Set(ctx, l.key(day), "1", 48*time.Hour).Err()
}
