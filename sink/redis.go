package sink

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Redis stores each collection as a Redis set.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a client; no connection is made until first use.
func NewRedis(opts Options) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})}
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", r.client.Options().Addr, err)
	}
	return nil
}

// ReplaceSet deletes name and re-adds items inside MULTI/EXEC. An empty items
// slice leaves the key absent.
func (r *Redis) ReplaceSet(ctx context.Context, name string, items []string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, name)
		if len(items) > 0 {
			members := make([]any, len(items))
			for i, it := range items {
				members[i] = it
			}
			pipe.SAdd(ctx, name, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis replace %q: %w", name, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
