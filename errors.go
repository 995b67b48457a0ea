package goShield

import "errors"

var (
	// ErrRateLimited is an exported constant or variable used by the request-security guard.
	ErrRateLimited = errors.New("rate limited")
	// ErrRatePolicyUnknown is an exported constant or variable used by the request-security guard.
	ErrRatePolicyUnknown = errors.New("unknown rate policy")
	// ErrInjectionSuspected is an exported constant or variable used by the request-security guard.
	ErrInjectionSuspected = errors.New("suspected injection payload")
	// ErrValidationFailed is an exported constant or variable used by the request-security guard.
	ErrValidationFailed = errors.New("request validation failed")
	// ErrSessionNotFound is an exported constant or variable used by the request-security guard.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a session exceeds its absolute lifetime.
	ErrSessionExpired = errors.New("session expired")
	// ErrSessionInactive is returned when a session exceeds the inactivity window.
	ErrSessionInactive = errors.New("session expired due to inactivity")
	// ErrSessionInvalidated is returned when a session fails a client-consistency check.
	ErrSessionInvalidated = errors.New("session invalidated due to client mismatch")
	// ErrSessionStoreUnavailable distinguishes an infrastructure fault from a
	// logged-out session. Callers should surface it as a retryable condition.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
	// ErrSessionRegenerationFailed is an exported constant or variable used by the request-security guard.
	ErrSessionRegenerationFailed = errors.New("session regeneration failed")
	// ErrGuardNotReady is an exported constant or variable used by the request-security guard.
	ErrGuardNotReady = errors.New("guard not initialized")
)
