package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of the librescoot Redis wrapper the bridge
// needs: publish a delivery, and block-pop an outbound command. Trimmed
// from the scooter-wide client down to the two operations this daemon
// actually performs.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient connects to addr and verifies the connection with a Ping,
// the same fail-fast pattern the wider fleet's Redis wrapper uses.
func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("bridge: connecting to redis at %s: %w", addr, err)
	}

	return &RedisClient{client: client, ctx: ctx}, nil
}

// Publish publishes message on channel.
func (c *RedisClient) Publish(channel, message string) error {
	return c.client.Publish(c.ctx, channel, message).Err()
}

// BRPop blocks indefinitely waiting for an entry on key, returning the
// popped value. A redis.Nil from the underlying client (a spurious wakeup
// with nothing to pop) is reported as an empty string and nil error rather
// than propagated as a failure.
func (c *RedisClient) BRPop(key string) (string, error) {
	result, err := c.client.BRPop(c.ctx, 0*time.Second, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("bridge: BRPOP on %s: %w", key, err)
	}
	if len(result) != 2 {
		return "", fmt.Errorf("bridge: unexpected BRPOP result on %s: %v", key, result)
	}
	return result[1], nil
}

// Close closes the underlying connection.
func (c *RedisClient) Close() error {
	return c.client.Close()
}
