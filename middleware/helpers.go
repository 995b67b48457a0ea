package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	goShield "github.com/MrEthical07/goShield"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// realIP resolves the client address behind a reverse proxy: first
// X-Forwarded-For hop, then X-Real-Ip, then the socket peer.
func realIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			forwarded = forwarded[:i]
		}
		return strings.TrimSpace(forwarded)
	}
	if real := r.Header.Get("X-Real-Ip"); real != "" {
		return real
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func secureCookies(cfg goShield.Config) bool {
	return cfg.Security.ProductionMode && cfg.Security.RequireSecureCookies
}

// retryAfterSeconds rounds up so a client honoring the header never retries
// inside the same window.
func retryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 1
	}
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// statusRecorder captures the response status so post-handler hooks can tell
// success from failure.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
