// Package middleware exposes HTTP middleware adapters for the request-security
// chain built on top of goShield.Guard decisions.
//
// # Chain
//
//   - [DeviceIdentity]: assigns/reads the durable device cookie and attaches
//     request identity (device key, client IP, user agent) to the context.
//   - [RateGate]: fixed-window throttling per named policy, 429 on denial.
//   - [Sanitize]: inspects path, query, and body, rewriting query and body
//     through the sanitizer, 403 on a suspected injection payload.
//   - [RequireSession]: session cookie validation, 401/403/503 mapping.
//   - [AuditTrace]: per-request ACCESS_ event emission.
//
// Order matters: identity first, throttling before any body work, sanitization
// before the session layer reads anything client-supplied.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Guard calls. It does NOT decide
// security policy itself; every allow/deny verdict comes from the Guard.
//
// # What this package must NOT do
//
//   - Access Redis (the Guard handles I/O).
//   - Interpret session records (only the Guard reads them).
//   - Suppress or reorder the Guard's audit events.
package middleware
