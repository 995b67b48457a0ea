package middleware

import (
	"net/http"

	goShield "github.com/MrEthical07/goShield"
	"github.com/google/uuid"
)

// DeviceIdentity assigns a durable random identifier to each browser and
// attaches request identity to the context. The identifier is a correlation
// key for rate limiting, never a credential: a client presenting a stolen or
// fabricated identifier gains nothing beyond a different counter bucket.
//
// The set-cookie instruction is issued exactly once per missing-identifier
// request. Identification always succeeds; a client that refuses cookies
// falls back to its network address as the rate-limit key.
func DeviceIdentity(guard *goShield.Guard) func(http.Handler) http.Handler {
	cfg := guard.Config()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := ""
			if cookie, err := r.Cookie(cfg.Device.CookieName); err == nil && cookie.Value != "" {
				deviceID = cookie.Value
			}

			if deviceID == "" {
				deviceID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.Device.CookieName,
					Value:    deviceID,
					Path:     "/",
					Domain:   cfg.Security.CookieDomain,
					MaxAge:   int(cfg.Device.CookieTTL.Seconds()),
					HttpOnly: true,
					Secure:   secureCookies(cfg),
					SameSite: cfg.Security.SameSitePolicy,
				})
			}

			ctx := goShield.WithDeviceID(r.Context(), goShield.CorrelationKey(deviceID))
			ctx = goShield.WithClientIP(ctx, realIP(r))
			ctx = goShield.WithUserAgent(ctx, r.UserAgent())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
