package ratelimit

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Redis shares counters between instances with INCR + EXPIRE.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// NewRedisClient builds a client and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

var _ Limiter = (*Redis)(nil)

func (r *Redis) Allow(ctx context.Context, rule Rule, key string) (Decision, error) {
	k := keyFor(rule, key)

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("incr %s: %w", k, err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, rule.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("expire %s: %w", k, err)
		}
	}

	ttl, err := r.client.TTL(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ttl %s: %w", k, err)
	}
	if ttl < 0 {
		// key lost its expiry (e.g. crash between INCR and EXPIRE)
		if err := r.client.Expire(ctx, k, rule.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("expire %s: %w", k, err)
		}
		ttl = rule.Window
	}
	return decide(rule, int(n), ttl), nil
}

func (r *Redis) Reset(ctx context.Context, rule Rule, key string) error {
	if err := r.client.Del(ctx, keyFor(rule, key)).Err(); err != nil {
		return fmt.Errorf("reset %s: %w", rule.Name, err)
	}
	return nil
}
