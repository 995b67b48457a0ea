package middleware

import (
	"errors"
	"net/http"
	"strconv"

	goShield "github.com/MrEthical07/goShield"
)

// RateGate throttles the wrapped handler under the named policy, keyed by the
// device identity attached upstream. Denials return 429 with the policy's
// message, a Retry-After hint, and the standard X-RateLimit headers.
//
// For policies with SkipSuccessful, the response status decides after the
// handler returns: anything below 400 refunds the attempt.
func RateGate(guard *goShield.Guard, policyName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID, _ := goShield.DeviceIDFromContext(r.Context())

			decision, err := guard.CheckRate(r.Context(), policyName, deviceID)
			if err != nil {
				if errors.Is(err, goShield.ErrRateLimited) {
					w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
					w.Header().Set("X-RateLimit-Remaining", "0")
					w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(decision.RetryAfter)))

					message := "Too many requests, please try again later"
					if policy, ok := guard.RatePolicy(policyName); ok && policy.Message != "" {
						message = policy.Message
					}
					writeJSON(w, http.StatusTooManyRequests, map[string]string{"message": message})
					return
				}

				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

			policy, ok := guard.RatePolicy(policyName)
			if !ok || !policy.SkipSuccessful {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status < http.StatusBadRequest {
				_ = guard.ReportRateSuccess(r.Context(), policyName, deviceID)
			}
		})
	}
}
