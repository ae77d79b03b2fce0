package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/farahcakes/bakery-engine/internal/config"
	"github.com/farahcakes/bakery-engine/internal/utils"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

// RateLimitMiddleware throttles requests with Redis counters. A nil Redis
// client disables throttling entirely; the storefront must keep serving when
// Redis is down, so every Redis error fails open.
type RateLimitMiddleware struct {
	redis  *redis.Client
	config *config.Config
	logger *logger.Logger
}

func NewRateLimitMiddleware(redis *redis.Client, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		config: config,
		logger: logger,
	}
}

// SiteRateLimit implements per-boutique rate limiting for manager endpoints.
func (m *RateLimitMiddleware) SiteRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.redis == nil {
			c.Next()
			return
		}

		siteID, _ := c.Get(string(utils.SiteIDKey))
		siteIDStr, ok := siteID.(string)
		if !ok || siteIDStr == "" {
			c.Next()
			return
		}

		limit := m.config.DefaultRateLimit
		if limit <= 0 {
			limit = 1000 // requests per minute
		}

		key := fmt.Sprintf("rate_limit:site:%s", siteIDStr)
		m.limit(c, key, limit)
	}
}

// GlobalRateLimit implements global rate limiting based on IP. The limit
// comes from GLOBAL_RATE_LIMIT.
func (m *RateLimitMiddleware) GlobalRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.redis == nil {
			c.Next()
			return
		}

		limit := m.config.GlobalRateLimit
		if limit <= 0 {
			limit = 10000 // requests per minute
		}

		key := fmt.Sprintf("rate_limit:global:%s", c.ClientIP())
		m.limit(c, key, limit)
	}
}

func (m *RateLimitMiddleware) limit(c *gin.Context, key string, limit int) {
	reset := time.Now().Add(time.Minute).Unix()

	current, err := m.redis.Get(c.Request.Context(), key).Int()
	if err != nil && err != redis.Nil {
		m.logger.Error("Redis error in rate limiting", err)
		c.Next()
		return
	}

	if current >= limit {
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Rate limit exceeded",
			"limit": limit,
			"reset": reset,
		})
		c.Abort()
		return
	}

	pipe := m.redis.Pipeline()
	pipe.Incr(c.Request.Context(), key)
	pipe.Expire(c.Request.Context(), key, time.Minute)
	if _, err := pipe.Exec(c.Request.Context()); err != nil {
		m.logger.Error("Redis pipeline error in rate limiting", err)
	}

	remaining := limit - (current + 1)
	if remaining < 0 {
		remaining = 0
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

	c.Next()
}
