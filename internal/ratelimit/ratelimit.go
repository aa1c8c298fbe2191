// Package ratelimit implements fixed-window attempt counters for the
// registration and sign-in endpoints.
package ratelimit

import (
	"context"
	"time"
)

// Rule allows Limit attempts per Window for a key.
type Rule struct {
	Name   string
	Limit  int
	Window time.Duration
}

type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, rule Rule, key string) (Decision, error)
	// Reset forgets the key, e.g. after a successful sign-in.
	Reset(ctx context.Context, rule Rule, key string) error
}

func keyFor(rule Rule, key string) string {
	return "saferail:rl:" + rule.Name + ":" + key
}

func decide(rule Rule, count int, ttl time.Duration) Decision {
	if count > rule.Limit {
		return Decision{Allowed: false, Remaining: 0, RetryAfter: ttl}
	}
	return Decision{Allowed: true, Remaining: rule.Limit - count}
}
