package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sandeshm/portfolio-backend/config"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client. Redis is optional: when
// REDIS_ADDR is unset the app runs without caching and with in-memory
// rate limiting.
func InitRedis(cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		log.Println("ℹ️ REDIS_ADDR not set, running without Redis")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Println("✅ Redis connected")
	return nil
}

// RedisClient returns the shared client, or nil when Redis is disabled
func RedisClient() *redis.Client {
	return redisClient
}

// CacheJSON stores a JSON-encoded value with a TTL. Failures are logged only.
func CacheJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if redisClient == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("⚠️ Redis SET %s failed: %v", key, err)
	}
}

// GetCachedJSON loads a cached value into dest. Returns false on miss or error.
func GetCachedJSON(ctx context.Context, key string, dest interface{}) bool {
	if redisClient == nil {
		return false
	}
	data, err := redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// InvalidateCache removes cached keys after a mutation
func InvalidateCache(ctx context.Context, keys ...string) {
	if redisClient == nil || len(keys) == 0 {
		return
	}
	if err := redisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ Redis DEL failed: %v", err)
	}
}
