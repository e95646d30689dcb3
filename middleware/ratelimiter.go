package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/sandeshm/portfolio-backend/utils"
)

// RateLimiter returns a Gin middleware that limits requests per IP.
// Uses the shared Redis store when available so limits survive restarts
// and hold across replicas; falls back to an in-memory store otherwise.
func RateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	var store limiter.Store
	if client := utils.RedisClient(); client != nil {
		redisStore, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: "portfolio:ratelimit",
		})
		if err != nil {
			log.Printf("⚠️ Redis limiter store unavailable, using memory store: %v", err)
			store = memory.NewStore()
		} else {
			store = redisStore
		}
	} else {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
