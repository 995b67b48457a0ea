package goShield

import (
	"context"
	"errors"
	"testing"

	"github.com/MrEthical07/goShield/sanitize"
)

func TestInspectPayloadFlagsInjection(t *testing.T) {
	sink := newCaptureSink(16)
	guard, _, done := buildTestGuard(t, guardTestConfig(), sink)
	defer done()

	ctx := context.Background()

	if err := guard.InspectPayload(ctx, map[string]any{"name": "Espresso Beans"}); err != nil {
		t.Fatalf("expected clean payload accepted, got %v", err)
	}

	err := guard.InspectPayload(ctx, map[string]any{"q": "DROP TABLE users"})
	if !errors.Is(err, ErrInjectionSuspected) {
		t.Fatalf("expected ErrInjectionSuspected, got %v", err)
	}

	waitForEvent(t, sink, EventInjectionBlocked)
	if got := guard.metrics.Value(MetricInjectionBlocked); got != 1 {
		t.Fatalf("expected MetricInjectionBlocked=1, got %d", got)
	}
}

func TestValidateFieldsCollectsAllFailures(t *testing.T) {
	sink := newCaptureSink(16)
	guard, _, done := buildTestGuard(t, guardTestConfig(), sink)
	defer done()

	ctx := context.Background()

	errs, err := guard.ValidateFields(ctx,
		sanitize.Field{Name: "email", Rule: sanitize.RuleEmail, Value: "nope"},
		sanitize.Field{Name: "quantity", Rule: sanitize.RuleQuantity, Value: -1},
	)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected both failures collected, got %v", errs)
	}

	ev := waitForEvent(t, sink, EventValidationFailed)
	if ev.Details["fields"] != "email,quantity" {
		t.Fatalf("unexpected event details: %+v", ev.Details)
	}

	if _, err := guard.ValidateFields(ctx,
		sanitize.Field{Name: "email", Rule: sanitize.RuleEmail, Value: "alice@example.com"},
	); err != nil {
		t.Fatalf("expected valid input accepted, got %v", err)
	}
}
