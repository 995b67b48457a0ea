package middleware

import (
	"context"
	"errors"
	"net/http"

	goShield "github.com/MrEthical07/goShield"
)

type sessionContextKey struct{}

// SessionFromContext returns the session validated by [RequireSession].
func SessionFromContext(ctx context.Context) (*goShield.SessionInfo, bool) {
	info, ok := ctx.Value(sessionContextKey{}).(*goShield.SessionInfo)
	return info, ok
}

// RequireSession validates the session cookie on every request and injects
// the live session into the context. Expired, inactive, and unknown sessions
// map to 401 with the cookie cleared; a client-consistency violation maps to
// 403; a store outage maps to 503 and keeps the cookie, since the session may
// still be valid once the store returns.
func RequireSession(guard *goShield.Guard) func(http.Handler) http.Handler {
	cfg := guard.Config()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.Session.CookieName)
			if err != nil || cookie.Value == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
				return
			}

			info, err := guard.ValidateSession(r.Context(), cookie.Value)
			if err != nil {
				switch {
				case errors.Is(err, goShield.ErrSessionStoreUnavailable):
					writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Service temporarily unavailable"})
				case errors.Is(err, goShield.ErrSessionInvalidated):
					ClearSessionCookie(w, cfg)
					writeJSON(w, http.StatusForbidden, map[string]string{"error": "Session invalid"})
				default:
					ClearSessionCookie(w, cfg)
					writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Session expired, please log in again"})
				}
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetSessionCookie writes the session cookie after a successful login. The
// cookie lifetime matches the absolute session cap; the server-side record is
// the authority, the cookie expiry is a courtesy.
func SetSessionCookie(w http.ResponseWriter, cfg goShield.Config, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   cfg.Security.CookieDomain,
		MaxAge:   int(cfg.Session.MaxSessionAge.Seconds()),
		HttpOnly: true,
		Secure:   secureCookies(cfg),
		SameSite: cfg.Security.SameSitePolicy,
	})
}

// ClearSessionCookie instructs the client to drop its session cookie.
func ClearSessionCookie(w http.ResponseWriter, cfg goShield.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Security.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secureCookies(cfg),
		SameSite: cfg.Security.SameSitePolicy,
	})
}
