package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mikey/scam-triage/internal/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "scam-triage:last-analysis:"

// RedisCache is a Redis implementation of the AnalysisCache interface.
// Records are stored as JSON with the configured TTL, so expiry is handled
// by Redis itself.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a new Redis-backed last-analysis cache
func NewRedisCache(addr, password string, db int, ttl time.Duration, logger *zap.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves the last analysis for a conversation
func (c *RedisCache) Get(ctx context.Context, conversationID string) (*core.AnalysisRecord, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+conversationID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Error("Failed to read cache entry from Redis", zap.Error(err))
		}
		return nil, false
	}

	var record core.AnalysisRecord
	if err := json.Unmarshal(data, &record); err != nil {
		c.logger.Error("Failed to decode cached analysis record", zap.Error(err))
		return nil, false
	}
	return &record, true
}

// Set stores the last analysis for a conversation, replacing any previous
// entry
func (c *RedisCache) Set(ctx context.Context, conversationID string, record *core.AnalysisRecord) {
	data, err := json.Marshal(record)
	if err != nil {
		c.logger.Error("Failed to encode analysis record", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+conversationID, data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to write cache entry to Redis", zap.Error(err))
	}
}

// Delete removes the entry for a conversation
func (c *RedisCache) Delete(ctx context.Context, conversationID string) error {
	return c.client.Del(ctx, redisKeyPrefix+conversationID).Err()
}

// Stop closes the Redis connection
func (c *RedisCache) Stop() {
	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis client", zap.Error(err))
	}
}
