package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewRedis returns a connected client, or nil when redisURL is empty or the
// server is unreachable. Callers treat a nil client as "Redis disabled".
func NewRedis(ctx context.Context, redisURL string, log zerolog.Logger) *redis.Client {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, shared rate limiting disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, shared rate limiting disabled")
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, shared rate limiting disabled")
		_ = rdb.Close()
		return nil
	}

	log.Info().Str("addr", opts.Addr).Msg("redis connected")
	return rdb
}
