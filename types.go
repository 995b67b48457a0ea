package goShield

import "time"

// CorrelationKey groups related requests without implying trust. Device
// identifiers and network addresses are correlation keys; they are never
// accepted as proof of identity.
//
// CorrelationKey instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CorrelationKey string

// String describes the string operation and its observable behavior.
//
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (k CorrelationKey) String() string {
	return string(k)
}

// Principal is the verified user identity supplied by the host's credential
// verification layer after a successful login. goShield never produces a
// Principal on its own.
//
// Principal instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Principal struct {
	UserID string
	Role   string
	Email  string
}

// SessionInfo is the read-only view of a live session returned by
// [Guard.ValidateSession] and [Guard.InitializeSession].
//
// SessionInfo instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionInfo struct {
	SessionID    string
	UserID       string
	Role         string
	Email        string
	CreatedAt    time.Time
	LastActiveAt time.Time
}

// RateDecision reports the outcome of a single rate-gate check.
//
// RateDecision instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RateDecision struct {
	Allowed bool
	// Limit and Remaining feed the standard X-RateLimit response headers.
	Limit     int
	Remaining int
	// RetryAfter is the time until the fixed window resets. Zero when allowed.
	RetryAfter time.Duration
	// Degraded marks a fail-open decision taken because the counter store was
	// unreachable.
	Degraded bool
}
