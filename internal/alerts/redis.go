package alerts

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "carepath/pkg/domain-errors"
)

// RedisDeduper suppresses duplicate alerts across scanner instances using
// SET NX with a TTL. If the key lands, this instance owns the send.
type RedisDeduper struct {
	client *redis.Client
}

// NewRedisDeduper wraps an existing redis client.
func NewRedisDeduper(client *redis.Client) *RedisDeduper {
	return &RedisDeduper{client: client}
}

// MarkSent claims the key. Returns false when another instance already sent
// this alert within the TTL.
func (d *RedisDeduper) MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	claimed, err := d.client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "dedupe claim")
	}
	return claimed, nil
}
