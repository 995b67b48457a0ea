package goShield

import (
	"context"
	"errors"
	"testing"
	"time"
)

func rateTestConfig() Config {
	cfg := guardTestConfig()
	cfg.RateLimit.Policies = map[string]RatePolicy{
		PolicyRegistration: {
			Window:  time.Hour,
			Limit:   10,
			Message: "Too many registration attempts from this device, please try again after an hour",
		},
		PolicyAuthentication: {
			Window:         time.Hour,
			Limit:          5,
			SkipSuccessful: true,
			Message:        "Too many login attempts from this device, please try again after an hour",
		},
	}
	return cfg
}

func TestCheckRateDeniesRequestPastLimit(t *testing.T) {
	sink := newCaptureSink(32)
	guard, _, done := buildTestGuard(t, rateTestConfig(), sink)
	defer done()

	ctx := context.Background()
	key := CorrelationKey("device-1")

	for i := 0; i < 5; i++ {
		decision, err := guard.CheckRate(ctx, PolicyAuthentication, key)
		if err != nil {
			t.Fatalf("check %d failed: %v", i+1, err)
		}
		if !decision.Allowed {
			t.Fatalf("check %d unexpectedly denied", i+1)
		}
		if decision.Remaining != 5-(i+1) {
			t.Fatalf("check %d: expected remaining %d, got %d", i+1, 5-(i+1), decision.Remaining)
		}
	}

	decision, err := guard.CheckRate(ctx, PolicyAuthentication, key)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited on 6th check, got %v", err)
	}
	if decision.Allowed || decision.Remaining != 0 {
		t.Fatalf("unexpected denial decision: %+v", decision)
	}
	if decision.RetryAfter <= 0 || decision.RetryAfter > time.Hour {
		t.Fatalf("expected retry hint within the window, got %v", decision.RetryAfter)
	}

	ev := waitForEvent(t, sink, EventRateLimitDenied)
	if ev.Details["policy"] != PolicyAuthentication {
		t.Fatalf("unexpected event details: %+v", ev.Details)
	}
	if got := guard.metrics.Value(MetricRateLimitHit); got != 1 {
		t.Fatalf("expected exactly one denial recorded, got %d", got)
	}
}

func TestCheckRateWindowReset(t *testing.T) {
	guard, mr, done := buildTestGuard(t, rateTestConfig(), NoOpSink{})
	defer done()

	ctx := context.Background()
	key := CorrelationKey("device-1")

	for i := 0; i < 6; i++ {
		_, _ = guard.CheckRate(ctx, PolicyAuthentication, key)
	}

	mr.FastForward(time.Hour + time.Second)

	decision, err := guard.CheckRate(ctx, PolicyAuthentication, key)
	if err != nil || !decision.Allowed {
		t.Fatalf("expected fresh window to allow, got %+v %v", decision, err)
	}
	if decision.Remaining != 4 {
		t.Fatalf("expected remaining 4 after window reset, got %d", decision.Remaining)
	}
}

func TestCheckRateSkipSuccessfulNeverDeniesSuccesses(t *testing.T) {
	guard, _, done := buildTestGuard(t, rateTestConfig(), NoOpSink{})
	defer done()

	ctx := context.Background()
	key := CorrelationKey("device-1")

	// N successes, one failure, N more successes: the successful checks are
	// refunded and never contribute to a denial.
	for i := 0; i < 4; i++ {
		if _, err := guard.CheckRate(ctx, PolicyAuthentication, key); err != nil {
			t.Fatalf("success %d denied: %v", i+1, err)
		}
		if err := guard.ReportRateSuccess(ctx, PolicyAuthentication, key); err != nil {
			t.Fatalf("ReportRateSuccess failed: %v", err)
		}
	}

	if _, err := guard.CheckRate(ctx, PolicyAuthentication, key); err != nil {
		t.Fatalf("failed attempt unexpectedly denied: %v", err)
	}

	for i := 0; i < 4; i++ {
		if _, err := guard.CheckRate(ctx, PolicyAuthentication, key); err != nil {
			t.Fatalf("post-failure success %d denied: %v", i+1, err)
		}
		if err := guard.ReportRateSuccess(ctx, PolicyAuthentication, key); err != nil {
			t.Fatalf("ReportRateSuccess failed: %v", err)
		}
	}

	attempts, err := guard.RateAttempts(ctx, PolicyAuthentication, key)
	if err != nil {
		t.Fatalf("RateAttempts failed: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected only the failed attempt to remain counted, got %d", attempts)
	}
}

func TestCheckRateFailsOpenOnStoreOutage(t *testing.T) {
	sink := newCaptureSink(16)
	guard, mr, done := buildTestGuard(t, rateTestConfig(), sink)
	defer done()

	mr.Close()

	decision, err := guard.CheckRate(context.Background(), PolicyAuthentication, CorrelationKey("device-1"))
	if err != nil {
		t.Fatalf("expected fail-open decision, got %v", err)
	}
	if !decision.Allowed || !decision.Degraded {
		t.Fatalf("expected allowed degraded decision, got %+v", decision)
	}

	waitForEvent(t, sink, EventRateLimitDegraded)
	if got := guard.metrics.Value(MetricRateLimitDegraded); got != 1 {
		t.Fatalf("expected MetricRateLimitDegraded=1, got %d", got)
	}
}

func TestCheckRateUnknownPolicy(t *testing.T) {
	guard, _, done := buildTestGuard(t, rateTestConfig(), NoOpSink{})
	defer done()

	if _, err := guard.CheckRate(context.Background(), "no-such-policy", "device-1"); !errors.Is(err, ErrRatePolicyUnknown) {
		t.Fatalf("expected ErrRatePolicyUnknown, got %v", err)
	}
}

func TestCheckRateFallsBackToClientIP(t *testing.T) {
	guard, _, done := buildTestGuard(t, rateTestConfig(), NoOpSink{})
	defer done()

	ctx := WithClientIP(context.Background(), "203.0.113.9")

	if _, err := guard.CheckRate(ctx, PolicyRegistration, ""); err != nil {
		t.Fatalf("CheckRate failed: %v", err)
	}

	attempts, err := guard.RateAttempts(ctx, PolicyRegistration, CorrelationKey("203.0.113.9"))
	if err != nil {
		t.Fatalf("RateAttempts failed: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected the check keyed by client IP, got %d attempts", attempts)
	}
}

func TestRatePolicyLookup(t *testing.T) {
	guard, _, done := buildTestGuard(t, rateTestConfig(), NoOpSink{})
	defer done()

	policy, ok := guard.RatePolicy(PolicyAuthentication)
	if !ok || !policy.SkipSuccessful || policy.Limit != 5 {
		t.Fatalf("unexpected policy: %+v ok=%v", policy, ok)
	}
	if _, ok := guard.RatePolicy("no-such-policy"); ok {
		t.Fatal("expected lookup miss for unknown policy")
	}
}
