package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect dials the server described by cfg and pings it, retrying up to
// cfg.RetryAttempts times with cfg.RetryInterval in between. The whole
// attempt is bounded by cfg.ConnectTimeout.
//
// It returns ErrEmptyConnectionURL or ErrFailedToParseRedisConnString for a
// bad URL, and ErrRedisNotReady when no ping succeeded.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for range attempts {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		t := time.NewTimer(cfg.RetryInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-t.C:
		}
	}

	return nil, errors.Join(ErrRedisNotReady, lastErr)
}
