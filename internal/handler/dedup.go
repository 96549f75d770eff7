package handler

import (
	"context"
	"sync"
	"time"

	"github.com/voiceflow-ai/voice-service/pkg/logger"
	"github.com/voiceflow-ai/voice-service/pkg/redis"
	"go.uber.org/zap"
)

// dedupWindow is how long an event key blocks redelivery of the same event.
const dedupWindow = 30 * time.Second

// EventDeduper suppresses duplicate webhook deliveries. MarkProcessed
// reports true when the key was not seen within the window and records it.
type EventDeduper interface {
	MarkProcessed(ctx context.Context, key string) bool
}

// MemoryDeduper tracks processed event keys in process memory. Suitable for
// a single instance; multi-instance deployments use RedisDeduper.
type MemoryDeduper struct {
	mu        sync.Mutex
	processed map[string]time.Time
}

// NewMemoryDeduper creates an in-memory deduper and starts a background
// cleanup loop.
func NewMemoryDeduper() *MemoryDeduper {
	d := &MemoryDeduper{
		processed: make(map[string]time.Time),
	}
	go d.cleanupLoop()
	return d
}

// MarkProcessed records the key and reports whether it was new.
func (d *MemoryDeduper) MarkProcessed(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seen, exists := d.processed[key]; exists && time.Since(seen) < dedupWindow {
		return false
	}
	d.processed[key] = time.Now()
	return true
}

// cleanupLoop evicts entries older than the window so the map stays small.
func (d *MemoryDeduper) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		d.mu.Lock()
		for key, seen := range d.processed {
			if time.Since(seen) >= dedupWindow {
				delete(d.processed, key)
			}
		}
		d.mu.Unlock()
	}
}

// RedisDeduper tracks processed event keys in Redis so deduplication holds
// across instances.
type RedisDeduper struct {
	redisSvc redis.RedisServiceInterface
}

// NewRedisDeduper creates a Redis-backed deduper.
func NewRedisDeduper(redisSvc redis.RedisServiceInterface) *RedisDeduper {
	return &RedisDeduper{redisSvc: redisSvc}
}

// MarkProcessed records the key with SETNX and reports whether it was new.
// Redis failures fall open: the event is treated as new rather than dropped.
func (d *RedisDeduper) MarkProcessed(ctx context.Context, key string) bool {
	redisKey := d.redisSvc.GenerateKey(redis.WEBHOOK_EVENT, key)
	ok, err := d.redisSvc.SetIfAbsent(ctx, redisKey, "1", dedupWindow)
	if err != nil {
		logger.Base().Warn("dedup check failed, processing event anyway",
			zap.String("key", key), zap.Error(err))
		return true
	}
	return ok
}
