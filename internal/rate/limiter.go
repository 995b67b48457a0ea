package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Policy holds the tuning parameters for one fixed-window counter class.
type Policy struct {
	Window         time.Duration
	Limit          int
	SkipSuccessful bool
	SkipIfNoKey    bool
}

// Decision reports one check outcome.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

const forgetSuccessScript = `
local count = redis.call("GET", KEYS[1])
if not count then
  return 0
end
count = tonumber(count)
if count > 0 then
  redis.call("DECR", KEYS[1])
end
return count
`

var forgetSuccessLua = redis.NewScript(forgetSuccessScript)

// Limiter enforces named fixed-window policies using Redis counters.
type Limiter struct {
	redis    redis.UniversalClient
	prefix   string
	policies map[string]Policy
}

// New creates a rate [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, prefix string, policies map[string]Policy) *Limiter {
	return &Limiter{
		redis:    redisClient,
		prefix:   prefix,
		policies: policies,
	}
}

func (l *Limiter) key(policyName, key string) string {
	return l.prefix + ":" + policyName + ":" + key
}

// Policy returns the configured policy by name.
func (l *Limiter) Policy(policyName string) (Policy, bool) {
	p, ok := l.policies[policyName]
	return p, ok
}

// Check increments the counter for (policy, key) and compares against the
// policy limit. The increment precedes the comparison: the request that
// pushes the counter past the limit is the one denied, with a retry hint
// taken from the key's remaining TTL.
func (l *Limiter) Check(ctx context.Context, policyName, key string) (Decision, error) {
	policy, ok := l.policies[policyName]
	if !ok {
		return Decision{}, ErrUnknownPolicy
	}

	if key == "" && policy.SkipIfNoKey {
		return Decision{Allowed: true, Limit: policy.Limit, Remaining: policy.Limit}, nil
	}

	counterKey := l.key(policyName, key)

	count, err := l.redis.Incr(ctx, counterKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, counterKey, policy.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	remaining := policy.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	if count > int64(policy.Limit) {
		retryAfter, err := l.redis.PTTL(ctx, counterKey).Result()
		if err != nil {
			return Decision{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		if retryAfter < 0 {
			retryAfter = policy.Window
		}
		return Decision{
			Allowed:    false,
			Limit:      policy.Limit,
			Remaining:  0,
			RetryAfter: retryAfter,
		}, ErrRateLimited
	}

	return Decision{Allowed: true, Limit: policy.Limit, Remaining: remaining}, nil
}

// ForgetSuccess decrements the counter for (policy, key) after a request the
// host reports as successful. No-op unless the policy sets SkipSuccessful.
// The decrement is guarded by a Lua script so an expired or absent key is
// never driven negative.
func (l *Limiter) ForgetSuccess(ctx context.Context, policyName, key string) error {
	policy, ok := l.policies[policyName]
	if !ok {
		return ErrUnknownPolicy
	}
	if !policy.SkipSuccessful || key == "" {
		return nil
	}

	if err := forgetSuccessLua.Run(ctx, l.redis, []string{l.key(policyName, key)}).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Attempts returns the current counter for (policy, key). Missing keys
// return zero.
func (l *Limiter) Attempts(ctx context.Context, policyName, key string) (int, error) {
	if _, ok := l.policies[policyName]; !ok {
		return 0, ErrUnknownPolicy
	}

	count, err := l.redis.Get(ctx, l.key(policyName, key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}
	return int(count), nil
}
