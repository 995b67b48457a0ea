// Package sanitize cleans untrusted structured input before it reaches any
// handler: recursive tree sanitization, a blunt injection-pattern detector,
// and the named field-validation rules shared across endpoints.
//
// # Sanitization contract
//
// Clean produces a new tree; the input is never mutated. Keys, array order,
// and non-string leaves are preserved exactly. String leaves are run through
// an HTML sanitizer policy: the strict policy (no markup survives) by
// default, or a small allow-listed tag set for rich-text fields whose key
// name contains "description" or "content". Both policies are idempotent:
// Clean(Clean(x)) == Clean(x).
//
// # Injection detection
//
// DetectInjection is a deliberately blunt heuristic: whole-word SQL keywords
// or any quote character anywhere in the tree flags the entire request. It
// has known false positives ("O'Brien's Store" is flagged); the data-access
// layer must still use parameterized queries. The heuristic exists as a
// perimeter tripwire, not as the actual defense.
package sanitize
