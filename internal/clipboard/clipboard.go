package clipboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sentinel errors for clipboard access.
var (
	ErrUnavailable = errors.New("clipboard unavailable")
	ErrEmpty       = errors.New("clipboard empty")
)

// Redis is a shared clipboard stored under a single Redis key.
// Every write is also published on a channel of the same name so
// other sessions can pick the text up as soon as it is copied.
type Redis struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedis creates a Redis clipboard. A nil client yields a clipboard
// whose operations all fail with ErrUnavailable.
func NewRedis(rdb *redis.Client, key string, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, key: key, ttl: ttl}
}

// Write replaces the clipboard content with text.
func (c *Redis) Write(ctx context.Context, text string) error {
	if c.rdb == nil {
		return ErrUnavailable
	}

	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, c.key, text, c.ttl)
	pipe.Publish(ctx, c.key, text)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Read returns the last text written, or ErrEmpty once it has expired.
func (c *Redis) Read(ctx context.Context) (string, error) {
	if c.rdb == nil {
		return "", ErrUnavailable
	}

	text, err := c.rdb.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrEmpty
	}
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}
