package goShield

import (
	"io"

	"github.com/MrEthical07/goShield/internal/audit"
)

// Security event types emitted by the guard. Session lifecycle transitions,
// rate-gate outcomes, and sanitizer rejections each produce exactly one event.
const (
	// EventSessionInitialized is an exported constant or variable used by the request-security guard.
	EventSessionInitialized = "SESSION_INITIALIZED"
	// EventSessionExpired is an exported constant or variable used by the request-security guard.
	EventSessionExpired = "SESSION_EXPIRED"
	// EventSessionUserAgentMismatch is an exported constant or variable used by the request-security guard.
	EventSessionUserAgentMismatch = "SESSION_USER_AGENT_MISMATCH"
	// EventSessionIPChanged is an exported constant or variable used by the request-security guard.
	EventSessionIPChanged = "SESSION_IP_CHANGED"
	// EventSessionInactivityTimeout is an exported constant or variable used by the request-security guard.
	EventSessionInactivityTimeout = "SESSION_INACTIVITY_TIMEOUT"
	// EventSessionCleaned is an exported constant or variable used by the request-security guard.
	EventSessionCleaned = "SESSION_CLEANED"
	// EventSessionRegenerationFailed is an exported constant or variable used by the request-security guard.
	EventSessionRegenerationFailed = "SESSION_REGENERATION_FAILED"
	// EventRateLimitDenied is an exported constant or variable used by the request-security guard.
	EventRateLimitDenied = "RATE_LIMIT_DENIED"
	// EventRateLimitDegraded is an exported constant or variable used by the request-security guard.
	EventRateLimitDegraded = "RATE_LIMIT_DEGRADED"
	// EventInjectionBlocked is an exported constant or variable used by the request-security guard.
	EventInjectionBlocked = "INJECTION_ATTEMPT_BLOCKED"
	// EventValidationFailed is an exported constant or variable used by the request-security guard.
	EventValidationFailed = "VALIDATION_FAILED"
)

// AuditEvent defines a public type used by goShield APIs.
//
// AuditEvent instances are append-only records: the running system never
// mutates or deletes an emitted event.
type AuditEvent = audit.Event

// AuditSink defines a public type used by goShield APIs.
//
// Sinks must not panic; a sink failure is swallowed by the dispatcher and
// never aborts the request that triggered the event.
type AuditSink = audit.Sink

// NoOpSink defines a public type used by goShield APIs.
type NoOpSink = audit.NoOpSink

// ChannelSink defines a public type used by goShield APIs.
type ChannelSink = audit.ChannelSink

// NewChannelSink describes the newchannelsink operation and its observable behavior.
//
// NewChannelSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// JSONWriterSink defines a public type used by goShield APIs.
type JSONWriterSink = audit.JSONWriterSink

// NewJSONWriterSink describes the newjsonwritersink operation and its observable behavior.
//
// NewJSONWriterSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}
