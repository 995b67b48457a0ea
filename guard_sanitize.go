package goShield

import (
	"context"
	"strings"

	"github.com/MrEthical07/goShield/sanitize"
)

// InspectPayload runs the injection heuristic over a decoded request tree
// (body, query, or path parameters). A match anywhere condemns the whole
// request: one security event is recorded and [ErrInjectionSuspected] is
// returned. Callers must reject with a generic 403 carrying no field detail.
//
// InspectPayload may return an error when input validation, dependency calls, or security checks fail.
// InspectPayload does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) InspectPayload(ctx context.Context, tree any) error {
	if g == nil {
		return ErrGuardNotReady
	}
	if !sanitize.DetectInjection(tree) {
		return nil
	}

	g.metricInc(MetricInjectionBlocked)
	g.emitAudit(ctx, EventInjectionBlocked, "", "", nil)

	return ErrInjectionSuspected
}

// ValidateFields evaluates the named rules and collects every failure; the
// client fixes all fields in one round trip. A non-empty result records one
// security event and returns [ErrValidationFailed] alongside the field list.
//
// ValidateFields may return an error when input validation, dependency calls, or security checks fail.
// ValidateFields does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) ValidateFields(ctx context.Context, fields ...sanitize.Field) ([]sanitize.FieldError, error) {
	if g == nil || g.rules == nil {
		return nil, ErrGuardNotReady
	}

	errs := g.rules.Check(fields...)
	if errs == nil {
		return nil, nil
	}

	names := make([]string, len(errs))
	for i, fe := range errs {
		names[i] = fe.Field
	}

	g.metricInc(MetricValidationFailed)
	g.emitAudit(ctx, EventValidationFailed, "", "", map[string]string{
		"fields": strings.Join(names, ","),
	})

	return errs, ErrValidationFailed
}
