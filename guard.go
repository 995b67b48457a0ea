package goShield

import (
	"context"
	"time"

	"github.com/MrEthical07/goShield/internal/audit"
	"github.com/MrEthical07/goShield/internal/rate"
	"github.com/MrEthical07/goShield/sanitize"
	"github.com/MrEthical07/goShield/session"
)

// Guard defines a public type used by goShield APIs.
//
// Guard instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Guard struct {
	config       Config
	sessionStore *session.Store
	rateLimiter  *rate.Limiter
	rules        *sanitize.Rules
	audit        *audit.Dispatcher
	metrics      *Metrics

	// now is swapped in tests to drive expiry deterministically.
	now func() time.Time
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) Close() {
	if g == nil {
		return
	}
	if g.audit != nil {
		g.audit.Close()
	}
}

// Config returns a copy of the active configuration.
//
// Config does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) Config() Config {
	if g == nil {
		return Config{}
	}
	return cloneConfig(g.config)
}

// Rules returns the shared field-validation rule set.
//
// Rules does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) Rules() *sanitize.Rules {
	if g == nil {
		return nil
	}
	return g.rules
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) AuditDropped() uint64 {
	if g == nil || g.audit == nil {
		return 0
	}
	return g.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) MetricsSnapshot() MetricsSnapshot {
	if g == nil || g.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return g.metrics.Snapshot()
}

func (g *Guard) metricInc(id MetricID) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Inc(id)
}

func (g *Guard) emitAudit(
	ctx context.Context,
	eventType string,
	userID string,
	sessionID string,
	details map[string]string,
) {
	if g == nil || g.audit == nil {
		return
	}

	g.audit.Emit(ctx, AuditEvent{
		Timestamp: g.now().UTC(),
		EventType: eventType,
		UserID:    userID,
		SessionID: sessionID,
		IP:        clientIPFromContext(ctx),
		UserAgent: userAgentFromContext(ctx),
		Details:   details,
	})
}

// Record appends one structured security event. Recording never fails from
// the caller's perspective: a full buffer or sink fault is absorbed by the
// dispatcher and the triggering request proceeds untouched.
func (g *Guard) Record(ctx context.Context, eventType string, details map[string]string) {
	g.emitAudit(ctx, eventType, "", "", details)
}

// RecordAuth records an authentication-related event. The event type is
// prefixed with AUTH_ so log consumers can filter the class without parsing
// details.
func (g *Guard) RecordAuth(ctx context.Context, eventType, userID string, details map[string]string) {
	g.emitAudit(ctx, "AUTH_"+eventType, userID, "", details)
}

// RecordAccess records a resource-access event, prefixed with ACCESS_.
func (g *Guard) RecordAccess(ctx context.Context, action, userID, resource string, details map[string]string) {
	merged := make(map[string]string, len(details)+1)
	for k, v := range details {
		merged[k] = v
	}
	merged["resource"] = resource

	g.emitAudit(ctx, "ACCESS_"+action, userID, "", merged)
}
