// Package rate provides the Redis-backed fixed-window limiter behind the
// goShield rate gate.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on the first hit of a
// window. The increment happens before the limit comparison, so the request
// that pushes the counter to limit+1 is the one denied. Keys are
// "<prefix>:<policy>:<key>".
//
// A narrow read-modify race exists for policies with SkipSuccessful: the
// decrement is reported after the response completes, so two concurrent
// requests can briefly over-count. This is accepted in exchange for never
// holding a lock across the Redis round trip.
//
// # What this package must NOT do
//
//   - Decide fail-open/fail-closed policy (the root Guard owns degradation).
//   - Be imported outside the goShield module.
package rate
