// Package goShield provides a request-security core for cookie-session web
// backends: device-identity correlation, Redis-backed fixed-window rate
// limiting, recursive input sanitization, session lifecycle enforcement, and
// structured security audit logging.
//
// The package is designed for concurrent server workloads: Guard methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goShield is the public surface. It exposes [Guard], [Builder], [Config], and
// value types (Principal, RateDecision, SessionInfo, etc.). All internal
// coordination (counter semantics, audit dispatch, identifier generation)
// lives under internal/ and is never exported. The sanitize and session
// sub-packages are importable on their own for hosts that only need one
// concern.
//
// # What this package must NOT do
//
//   - Verify credentials. The host authenticates; goShield governs what happens
//     before (rate gate, sanitization) and after (session lifecycle, audit).
//   - Treat device identifiers or IP addresses as trust signals. They are
//     correlation keys, never principals.
//   - Expose Redis clients, internal stores, or encoding details in its public
//     API.
//
// # Availability contract
//
// The rate gate fails open: an unreachable counter store degrades to allow and
// records a degraded-mode audit event. The session store fails closed:
// authentication state is never assumed when the store is unreachable, and the
// condition surfaces distinctly as [ErrSessionStoreUnavailable] rather than as
// a logged-out session.
package goShield
