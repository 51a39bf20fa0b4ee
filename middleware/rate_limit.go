package middleware

import (
	"context"
	"fmt"
	"lifetag/models"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Redis        *redis.Client
	Requests     int           // Number of requests allowed
	Window       time.Duration // Time window
	KeyPrefix    string        // Redis key prefix
	SkipPaths    []string      // Paths to skip rate limiting
	ErrorMessage string        // Custom error message
}

// RateLimitStrategy defines how requests are bucketed
type RateLimitStrategy string

const (
	StrategyIP       RateLimitStrategy = "ip"
	StrategyUser     RateLimitStrategy = "user"
	StrategyUserOrIP RateLimitStrategy = "user_or_ip"
)

// RateLimiter provides sliding-window rate limiting backed by Redis
type RateLimiter struct {
	config   RateLimitConfig
	strategy RateLimitStrategy
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(config RateLimitConfig, strategy RateLimitStrategy) *RateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rate_limit"
	}
	if config.ErrorMessage == "" {
		config.ErrorMessage = "Rate limit exceeded"
	}
	return &RateLimiter{config: config, strategy: strategy}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		if rl.shouldSkipPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		key := rl.getKey(c)
		if key == "" {
			c.Next()
			return
		}

		allowed, resetTime, remaining, err := rl.checkRateLimit(key)
		if err != nil {
			logrus.Errorf("Rate limit check failed: %v", err)
			// Allow request to proceed on error
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rl.handleRateLimitExceeded(c, resetTime)
			return
		}

		c.Next()
	})
}

// checkRateLimit implements a sliding window log over a Redis sorted set
func (rl *RateLimiter) checkRateLimit(key string) (allowed bool, resetTime time.Time, remaining int, err error) {
	ctx := context.Background()
	now := time.Now()
	window := rl.config.Window

	pipe := rl.config.Redis.Pipeline()

	expiredBefore := now.Add(-window).UnixNano()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", expiredBefore))
	pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, &redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	pipe.Expire(ctx, key, window+time.Minute)

	results, err := pipe.Exec(ctx)
	if err != nil {
		return false, time.Time{}, 0, err
	}

	currentCount := results[1].(*redis.IntCmd).Val()

	remaining = rl.config.Requests - int(currentCount) - 1
	if remaining < 0 {
		remaining = 0
	}

	resetTime = now.Add(window)
	allowed = currentCount < int64(rl.config.Requests)

	if !allowed {
		rl.config.Redis.ZRem(ctx, key, fmt.Sprintf("%d", now.UnixNano()))
	}

	return allowed, resetTime, remaining, nil
}

func (rl *RateLimiter) getKey(c *gin.Context) string {
	prefix := rl.config.KeyPrefix

	switch rl.strategy {
	case StrategyIP:
		return fmt.Sprintf("%s:ip:%s", prefix, c.ClientIP())
	case StrategyUser:
		userID := c.GetString("userID")
		if userID == "" {
			return ""
		}
		return fmt.Sprintf("%s:user:%s", prefix, userID)
	case StrategyUserOrIP:
		if userID := c.GetString("userID"); userID != "" {
			return fmt.Sprintf("%s:user:%s", prefix, userID)
		}
		return fmt.Sprintf("%s:ip:%s", prefix, c.ClientIP())
	default:
		return fmt.Sprintf("%s:ip:%s", prefix, c.ClientIP())
	}
}

func (rl *RateLimiter) handleRateLimitExceeded(c *gin.Context, resetTime time.Time) {
	retryAfter := time.Until(resetTime).Seconds()
	if retryAfter < 0 {
		retryAfter = 0
	}

	c.Header("Retry-After", strconv.Itoa(int(retryAfter)))

	logrus.WithFields(logrus.Fields{
		"client_ip": c.ClientIP(),
		"user_id":   c.GetString("userID"),
		"path":      c.Request.URL.Path,
	}).Warn("Rate limit exceeded")

	c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
		Error:     "RATE_LIMIT_EXCEEDED",
		Message:   rl.config.ErrorMessage,
		Code:      "TOO_MANY_REQUESTS",
		RequestID: c.GetString("request_id"),
		Details: map[string]interface{}{
			"retry_after": int(retryAfter),
			"reset_time":  resetTime.Unix(),
		},
	})
	c.Abort()
}

func (rl *RateLimiter) shouldSkipPath(path string) bool {
	for _, skipPath := range rl.config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}

// Predefined rate limiters

// DefaultRateLimit creates the global per-IP rate limiter. Requests and
// window come from RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW_MINUTES; zero or
// negative values fall back to 100 requests per minute.
func DefaultRateLimit(redis *redis.Client, requests int, window time.Duration) gin.HandlerFunc {
	return newDefaultLimiter(redis, requests, window).Middleware()
}

func newDefaultLimiter(redis *redis.Client, requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return NewRateLimiter(RateLimitConfig{
		Redis:        redis,
		Requests:     requests,
		Window:       window,
		ErrorMessage: "Too many requests. Please try again later.",
		SkipPaths:    []string{"/health"},
	}, StrategyIP)
}

// AuthRateLimit creates a rate limiter for authentication endpoints
func AuthRateLimit(redis *redis.Client) gin.HandlerFunc {
	limiter := NewRateLimiter(RateLimitConfig{
		Redis:        redis,
		Requests:     5,
		Window:       time.Minute,
		KeyPrefix:    "auth_rate_limit",
		ErrorMessage: "Too many authentication attempts. Please try again later.",
	}, StrategyIP)
	return limiter.Middleware()
}

// QRGenerateRateLimit bounds QR regeneration per user; the cache makes
// repeat calls cheap but the PNG render is not free
func QRGenerateRateLimit(redis *redis.Client) gin.HandlerFunc {
	limiter := NewRateLimiter(RateLimitConfig{
		Redis:        redis,
		Requests:     30,
		Window:       time.Minute,
		KeyPrefix:    "qr_rate_limit",
		ErrorMessage: "QR generation rate limit exceeded.",
	}, StrategyUserOrIP)
	return limiter.Middleware()
}

// AdminRateLimit creates a lenient rate limiter for admin operations
func AdminRateLimit(redis *redis.Client) gin.HandlerFunc {
	limiter := NewRateLimiter(RateLimitConfig{
		Redis:        redis,
		Requests:     500,
		Window:       time.Minute,
		KeyPrefix:    "admin_rate_limit",
		ErrorMessage: "Admin rate limit exceeded.",
	}, StrategyUser)
	return limiter.Middleware()
}
