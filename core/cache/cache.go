package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"tutorhub-api/core/config"
	"tutorhub-api/core/constants"
	"tutorhub-api/core/logger"
)

// Cache wraps the redis client used for token blacklisting and read-side
// caching.
type Cache struct {
	client *redis.Client
}

func New(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Cache:Connected", "addr", cfg.Addr, "db", cfg.DB)
	return &Cache{client: client}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// ===================== Token blacklist =====================

func (c *Cache) AddToTokenBlacklist(ctx context.Context, token string) error {
	return c.client.Set(ctx, constants.RedisKeyTokenBlacklist+token, "1", constants.BlockDuration).Err()
}

func (c *Cache) IsTokenBlacklisted(ctx context.Context, token string) bool {
	n, err := c.client.Exists(ctx, constants.RedisKeyTokenBlacklist+token).Result()
	if err != nil {
		// Redis being down must not lock every user out.
		logger.Warn("Cache:IsTokenBlacklisted:Error", "error", err)
		return false
	}
	return n > 0
}

// ===================== Generic JSON cache =====================

func (c *Cache) GetJSON(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache:GetJSON:Error", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (c *Cache) SetJSON(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Warn("Cache:SetJSON:Error", "key", key, "error", err)
	}
}

// InvalidatePrefix removes every key under the given prefix. Used when a
// write makes cached search pages stale.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Cache:InvalidatePrefix:Del:Error", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Cache:InvalidatePrefix:Scan:Error", "prefix", prefix, "error", err)
	}
}
