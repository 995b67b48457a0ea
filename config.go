package goShield

import (
	"errors"
	"net/http"
	"time"
)

// Config defines a public type used by goShield APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Session   SessionConfig
	Device    DeviceConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
	Security  SecurityConfig
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by goShield APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// There is no session secret to configure: identifiers are opaque 128-bit
// random values, never signed or derived, so possession of the cookie value
// proves nothing beyond the server-side record it points at.
type SessionConfig struct {
	RedisPrefix string
	// CookieName deliberately avoids framework defaults so the session layer
	// is not fingerprintable from the cookie jar.
	CookieName string
	// MaxSessionAge caps the absolute lifetime of a session regardless of
	// activity.
	MaxSessionAge time.Duration
	// MaxInactivity is the sliding window: a request after this much silence
	// finds the session expired.
	MaxInactivity time.Duration
}

/*
====================================
DEVICE CONFIG
====================================
*/

// DeviceConfig defines a public type used by goShield APIs.
//
// DeviceConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DeviceConfig struct {
	CookieName string
	// CookieTTL is deliberately long (~1 year); the identifier is a
	// correlation key, not a credential, so longevity carries no trust risk.
	CookieTTL time.Duration
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// Well-known policy names registered by [DefaultConfig]. Hosts may add more.
const (
	// PolicyRegistration throttles account-creation attempts per device.
	PolicyRegistration = "registration"
	// PolicyAuthentication throttles login attempts per device; successful
	// logins are excluded from the count.
	PolicyAuthentication = "authentication"
)

// RatePolicy describes one fixed-window counter class.
//
// RatePolicy instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RatePolicy struct {
	Window time.Duration
	Limit  int
	// SkipSuccessful excludes requests the host reports as successful from
	// the count (via [Guard.ReportRateSuccess]).
	SkipSuccessful bool
	// SkipIfNoKey allows requests with an empty key instead of collapsing
	// them onto one shared counter.
	SkipIfNoKey bool
	// Message is the human-readable denial text returned with the 429.
	Message string
}

// RateLimitConfig defines a public type used by goShield APIs.
//
// RateLimitConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RateLimitConfig struct {
	RedisPrefix string
	Policies    map[string]RatePolicy
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig defines a public type used by goShield APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goShield APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
SECURITY CONFIG
====================================
*/

// SecurityConfig defines a public type used by goShield APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	ProductionMode       bool
	RequireSecureCookies bool
	SameSitePolicy       http.SameSite
	CookieDomain         string
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration: 30-minute sessions,
// registration and authentication rate policies, audit and metrics disabled.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			RedisPrefix:   "gs",
			CookieName:    "sessionId",
			MaxSessionAge: 30 * time.Minute,
			MaxInactivity: 30 * time.Minute,
		},
		Device: DeviceConfig{
			CookieName: "device_id",
			CookieTTL:  365 * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RedisPrefix: "gr",
			Policies: map[string]RatePolicy{
				PolicyRegistration: {
					Window:      time.Hour,
					Limit:       10,
					SkipIfNoKey: false,
					Message:     "Too many registration attempts from this device, please try again after an hour",
				},
				PolicyAuthentication: {
					Window:         time.Hour,
					Limit:          5,
					SkipSuccessful: true,
					SkipIfNoKey:    false,
					Message:        "Too many login attempts from this device, please try again after an hour",
				},
			},
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		Security: SecurityConfig{
			ProductionMode:       false,
			RequireSecureCookies: true,
			SameSitePolicy:       http.SameSiteStrictMode,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.RateLimit.Policies != nil {
		out.RateLimit.Policies = make(map[string]RatePolicy, len(cfg.RateLimit.Policies))
		for name, policy := range cfg.RateLimit.Policies {
			out.RateLimit.Policies[name] = policy
		}
	}
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Session
	if c.Session.RedisPrefix == "" {
		return errors.New("Session RedisPrefix is required")
	}
	if c.Session.CookieName == "" {
		return errors.New("Session CookieName is required")
	}
	if c.Session.MaxSessionAge <= 0 {
		return errors.New("Session MaxSessionAge must be > 0")
	}
	if c.Session.MaxInactivity <= 0 {
		return errors.New("Session MaxInactivity must be > 0")
	}
	if c.Session.MaxInactivity > c.Session.MaxSessionAge {
		return errors.New("Session MaxInactivity must be <= MaxSessionAge")
	}

	// Device
	if c.Device.CookieName == "" {
		return errors.New("Device CookieName is required")
	}
	if c.Device.CookieTTL <= 0 {
		return errors.New("Device CookieTTL must be > 0")
	}

	// Rate limit
	if c.RateLimit.RedisPrefix == "" {
		return errors.New("RateLimit RedisPrefix is required")
	}
	if len(c.RateLimit.Policies) == 0 {
		return errors.New("RateLimit requires at least one policy")
	}
	for name, policy := range c.RateLimit.Policies {
		if name == "" {
			return errors.New("RateLimit policy name must not be empty")
		}
		if policy.Window <= 0 {
			return errors.New("RateLimit policy " + name + " Window must be > 0")
		}
		if policy.Limit <= 0 {
			return errors.New("RateLimit policy " + name + " Limit must be > 0")
		}
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	// Security
	switch c.Security.SameSitePolicy {
	case http.SameSiteStrictMode, http.SameSiteLaxMode:
		// valid
	default:
		return errors.New("SameSitePolicy must be Strict or Lax")
	}
	if c.Security.ProductionMode {
		if !c.Security.RequireSecureCookies {
			return errors.New("ProductionMode requires RequireSecureCookies")
		}
		if c.Session.MaxSessionAge > time.Hour {
			return errors.New("ProductionMode requires Session MaxSessionAge <= 1h")
		}
		if !c.Audit.Enabled {
			return errors.New("ProductionMode requires Audit Enabled")
		}
	}

	return nil
}
