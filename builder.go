package goShield

import (
	"errors"
	"time"

	"github.com/MrEthical07/goShield/internal/audit"
	"github.com/MrEthical07/goShield/internal/rate"
	"github.com/MrEthical07/goShield/sanitize"
	"github.com/MrEthical07/goShield/session"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by goShield APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithRatePolicy registers or replaces a named fixed-window policy.
//
// WithRatePolicy does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRatePolicy(name string, policy RatePolicy) *Builder {
	if b.config.RateLimit.Policies == nil {
		b.config.RateLimit.Policies = map[string]RatePolicy{}
	}
	b.config.RateLimit.Policies[name] = policy
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Guard, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policies := make(map[string]rate.Policy, len(cfg.RateLimit.Policies))
	for name, p := range cfg.RateLimit.Policies {
		policies[name] = rate.Policy{
			Window:         p.Window,
			Limit:          p.Limit,
			SkipSuccessful: p.SkipSuccessful,
			SkipIfNoKey:    p.SkipIfNoKey,
		}
	}

	guard := &Guard{
		config:       cfg,
		sessionStore: session.NewStore(b.redis, cfg.Session.RedisPrefix),
		rateLimiter:  rate.New(b.redis, cfg.RateLimit.RedisPrefix, policies),
		rules:        sanitize.NewRules(),
		metrics:      NewMetrics(cfg.Metrics),
		now:          time.Now,
	}

	guard.audit = audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	b.built = true

	return guard, nil
}
