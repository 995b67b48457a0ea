package rate

import "errors"

var (
	// ErrRateLimited is an exported constant or variable used by the request-security guard.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable is an exported constant or variable used by the request-security guard.
	ErrRedisUnavailable = errors.New("redis unavailable")
	// ErrUnknownPolicy is returned when a check names a policy that was never configured.
	ErrUnknownPolicy = errors.New("unknown rate policy")
)
