// Package audit provides the internal security-event model and the async
// dispatcher that decouples request handling from sink latency.
//
// # Non-throwing contract
//
// Emit never returns an error and never panics on a full buffer: with
// DropIfFull the event is counted and discarded, otherwise Emit blocks until
// space frees or the caller's context ends. Sink failures are the sink's
// problem; the triggering request must not be aborted by audit I/O.
//
// # What this package must NOT do
//
//   - Interpret event types or enforce a taxonomy (the root package owns the
//     AUTH_/ACCESS_/SESSION_ prefixes).
//   - Be imported outside the goShield module.
package audit
