package middleware

import (
	"net/http"
	"strconv"

	goShield "github.com/MrEthical07/goShield"
)

// AuditTrace emits one ACCESS_ event per request after the handler completes,
// carrying method, path, and response status. Place it outside the session
// layer for anonymous traffic, or inside to attribute events to a user.
func AuditTrace(guard *goShield.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			userID := ""
			if info, ok := SessionFromContext(r.Context()); ok {
				userID = info.UserID
			}

			guard.RecordAccess(r.Context(), r.Method, userID, r.URL.Path, map[string]string{
				"status": strconv.Itoa(rec.status),
			})
		})
	}
}
