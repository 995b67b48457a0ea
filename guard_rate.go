package goShield

import (
	"context"
	"errors"

	"github.com/MrEthical07/goShield/internal/rate"
)

// CheckRate runs one fixed-window check for (policy, key). An empty key falls
// back to the caller's network address from the context, so a client that
// strips its device cookie still lands on a counter.
//
// An unreachable counter store degrades to allow: rate limiting protects
// against abuse, it must not turn a Redis outage into a full login outage.
// Every degraded decision is marked on the [RateDecision] and emitted as a
// security event.
//
// CheckRate may return an error when input validation, dependency calls, or security checks fail.
// CheckRate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) CheckRate(ctx context.Context, policyName string, key CorrelationKey) (RateDecision, error) {
	if g == nil || g.rateLimiter == nil {
		return RateDecision{}, ErrGuardNotReady
	}

	counterKey := key.String()
	if counterKey == "" {
		counterKey = clientIPFromContext(ctx)
	}

	decision, err := g.rateLimiter.Check(ctx, policyName, counterKey)

	switch {
	case err == nil:
		return RateDecision{
			Allowed:   true,
			Limit:     decision.Limit,
			Remaining: decision.Remaining,
		}, nil

	case errors.Is(err, rate.ErrRateLimited):
		g.metricInc(MetricRateLimitHit)
		g.emitAudit(ctx, EventRateLimitDenied, "", "", map[string]string{
			"policy": policyName,
			"key":    counterKey,
		})
		return RateDecision{
			Allowed:    false,
			Limit:      decision.Limit,
			Remaining:  0,
			RetryAfter: decision.RetryAfter,
		}, ErrRateLimited

	case errors.Is(err, rate.ErrUnknownPolicy):
		return RateDecision{}, ErrRatePolicyUnknown

	default:
		g.metricInc(MetricRateLimitDegraded)
		g.emitAudit(ctx, EventRateLimitDegraded, "", "", map[string]string{
			"policy": policyName,
		})

		limit := 0
		if policy, ok := g.rateLimiter.Policy(policyName); ok {
			limit = policy.Limit
		}

		return RateDecision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			Degraded:  true,
		}, nil
	}
}

// ReportRateSuccess excludes a completed successful request from its policy
// counter. No-op unless the policy sets SkipSuccessful. Counter-store faults
// are swallowed on the same fail-open grounds as [Guard.CheckRate]: losing a
// decrement only makes the gate marginally stricter.
//
// ReportRateSuccess may return an error when input validation, dependency calls, or security checks fail.
// ReportRateSuccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) ReportRateSuccess(ctx context.Context, policyName string, key CorrelationKey) error {
	if g == nil || g.rateLimiter == nil {
		return ErrGuardNotReady
	}

	counterKey := key.String()
	if counterKey == "" {
		counterKey = clientIPFromContext(ctx)
	}

	err := g.rateLimiter.ForgetSuccess(ctx, policyName, counterKey)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rate.ErrUnknownPolicy):
		return ErrRatePolicyUnknown
	default:
		return nil
	}
}

// RateAttempts returns the live counter for (policy, key). Intended for
// admin dashboards; zero for keys with no window open.
func (g *Guard) RateAttempts(ctx context.Context, policyName string, key CorrelationKey) (int, error) {
	if g == nil || g.rateLimiter == nil {
		return 0, ErrGuardNotReady
	}

	attempts, err := g.rateLimiter.Attempts(ctx, policyName, key.String())
	if err != nil {
		if errors.Is(err, rate.ErrUnknownPolicy) {
			return 0, ErrRatePolicyUnknown
		}
		return 0, err
	}
	return attempts, nil
}

// RatePolicy returns the configured policy by name, including the denial
// message shown to throttled clients.
func (g *Guard) RatePolicy(name string) (RatePolicy, bool) {
	if g == nil {
		return RatePolicy{}, false
	}
	policy, ok := g.config.RateLimit.Policies[name]
	return policy, ok
}
