package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"github.com/ritik0027/SnapTube-Backend/internal/metrics"
	"github.com/ritik0027/SnapTube-Backend/pkg/hash"
)

// RateLimitConfig defines the limit for a specific route or group.
type RateLimitConfig struct {
	Name   string                   // Label used in metrics and Redis keys
	Max    int                      // Maximum requests allowed in the window
	Window time.Duration            // Time window for the limit
	KeyFn  func(c fiber.Ctx) string // Returns the key to rate limit on (IP, userID, etc.)
}

// entry tracks request count and window end for a single key.
type entry struct {
	count     int
	windowEnd time.Time
}

// RateLimiter is a fixed-window rate limiter. With a Redis client the window
// is shared across instances; without one, or while Redis fails, counting
// falls back to process memory.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	config  RateLimitConfig
	rdb     *redis.Client
}

// NewRateLimiter creates a rate limiter with the given config. rdb may be nil.
func NewRateLimiter(cfg RateLimitConfig, rdb *redis.Client) *RateLimiter {
	rl := &RateLimiter{
		entries: make(map[string]*entry),
		config:  cfg,
		rdb:     rdb,
	}
	// Background cleanup every 5 minutes
	go rl.cleanup()
	return rl
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		count, windowEnd := rl.hit(c.Context(), rl.config.KeyFn(c))
		remaining := rl.config.Max - count

		setRateLimitHeaders(c, rl.config.Max, remaining, windowEnd)

		if remaining < 0 {
			metrics.RateLimited.WithLabelValues(rl.config.Name).Inc()
			retryAfter := int(time.Until(windowEnd).Seconds()) + 1
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":       "RATE_LIMITED",
					"message":    fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
					"retryAfter": retryAfter,
				},
			})
		}

		return c.Next()
	}
}

// Allow records one request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	count, _ := rl.hit(ctx, key)
	return count <= rl.config.Max
}

func (rl *RateLimiter) hit(ctx context.Context, key string) (int, time.Time) {
	if rl.rdb != nil {
		count, windowEnd, err := rl.hitRedis(ctx, key)
		if err == nil {
			return count, windowEnd
		}
		Logger.Warn().Err(err).Str("limiter", rl.config.Name).Msg("redis rate limit failed, counting locally")
	}
	return rl.hitLocal(key)
}

func (rl *RateLimiter) hitLocal(key string) (int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	e, exists := rl.entries[key]
	if !exists || now.After(e.windowEnd) {
		e = &entry{windowEnd: now.Add(rl.config.Window)}
		rl.entries[key] = e
	}
	e.count++
	return e.count, e.windowEnd
}

// hitRedis increments the shared counter; the first hit of a window sets its expiry.
func (rl *RateLimiter) hitRedis(ctx context.Context, key string) (int, time.Time, error) {
	rkey := "ratelimit:" + rl.config.Name + ":" + key

	count, err := rl.rdb.Incr(ctx, rkey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("incr %s: %w", rkey, err)
	}
	if count == 1 {
		if err := rl.rdb.PExpire(ctx, rkey, rl.config.Window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("expire %s: %w", rkey, err)
		}
	}

	ttl, err := rl.rdb.PTTL(ctx, rkey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("pttl %s: %w", rkey, err)
	}
	if ttl < 0 {
		// key lost its expiry; start a new window rather than limit forever
		if err := rl.rdb.PExpire(ctx, rkey, rl.config.Window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("expire %s: %w", rkey, err)
		}
		ttl = rl.config.Window
	}
	return int(count), time.Now().Add(ttl), nil
}

func setRateLimitHeaders(c fiber.Ctx, limit, remaining int, resetAt time.Time) {
	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(remaining, 0)))
	c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, e := range rl.entries {
			if now.After(e.windowEnd) {
				delete(rl.entries, key)
			}
		}
		rl.mu.Unlock()
	}
}

// KeyByIP returns a hash of the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + hash.Fingerprint(c.IP())
}

// KeyByUserID keys on the resolved caller. Falls back to IP for anonymous requests.
func KeyByUserID(c fiber.Ctx) string {
	if uid := CallerID(c); uid != nil {
		return "user:" + *uid
	}
	return KeyByIP(c)
}

// NewReactionRateLimiter limits reaction writes per caller.
func NewReactionRateLimiter(perWindow int, window time.Duration, rdb *redis.Client) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Name:   "reactions",
		Max:    perWindow,
		Window: window,
		KeyFn:  KeyByUserID,
	}, rdb)
}

// NewReadRateLimiter limits feed and engagement reads per IP.
func NewReadRateLimiter(perWindow int, window time.Duration, rdb *redis.Client) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Name:   "reads",
		Max:    perWindow,
		Window: window,
		KeyFn:  KeyByIP,
	}, rdb)
}
