package goShield

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MrEthical07/goShield/internal"
	"github.com/MrEthical07/goShield/session"
	"github.com/redis/go-redis/v9"
)

// InitializeSession creates a fresh session for a verified principal. A new
// identifier is always issued, never one presented before authentication, so
// a pre-set identifier can never survive into an authenticated session.
//
// InitializeSession may return an error when input validation, dependency calls, or security checks fail.
// InitializeSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) InitializeSession(ctx context.Context, principal Principal) (*SessionInfo, error) {
	if g == nil || g.sessionStore == nil {
		return nil, ErrGuardNotReady
	}
	if principal.UserID == "" {
		return nil, errors.New("principal UserID required")
	}

	sid, err := internal.NewSessionID()
	if err != nil {
		g.metricInc(MetricSessionRegenerationFailed)
		g.emitAudit(ctx, EventSessionRegenerationFailed, principal.UserID, "", map[string]string{
			"reason": "id_generation",
		})
		return nil, fmt.Errorf("%w: %v", ErrSessionRegenerationFailed, err)
	}

	now := g.now()
	rec := &session.Record{
		SessionID:    sid.String(),
		UserID:       principal.UserID,
		Role:         principal.Role,
		Email:        principal.Email,
		CreatedAt:    now.Unix(),
		LastActiveAt: now.Unix(),
		UserAgent:    userAgentFromContext(ctx),
		IP:           clientIPFromContext(ctx),
	}

	if err := g.sessionStore.Save(ctx, rec, g.sessionTTL(now, rec)); err != nil {
		g.metricInc(MetricSessionRegenerationFailed)
		g.emitAudit(ctx, EventSessionRegenerationFailed, principal.UserID, "", map[string]string{
			"reason": "store_write",
		})
		return nil, fmt.Errorf("%w: %v", ErrSessionRegenerationFailed, err)
	}

	g.metricInc(MetricSessionCreated)
	g.emitAudit(ctx, EventSessionInitialized, principal.UserID, rec.SessionID, nil)

	return infoFromRecord(rec), nil
}

// ValidateSession checks a presented session identifier against the stored
// record and the lifecycle rules, in order: store reachability, absolute age,
// user-agent consistency, IP consistency (observational only), inactivity.
// A session that fails any destructive check is deleted from the store before
// the error is returned; an expired record is never left readable.
//
// On success the record's sliding window is refreshed: lastActiveAt moves to
// now and the store TTL is re-armed to the tighter of the inactivity window
// and the remaining absolute lifetime.
//
// ValidateSession may return an error when input validation, dependency calls, or security checks fail.
// ValidateSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) ValidateSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	if g == nil || g.sessionStore == nil {
		return nil, ErrGuardNotReady
	}
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	start := time.Now()
	defer func() {
		if g.metrics != nil {
			g.metrics.Observe(MetricValidateLatency, time.Since(start))
		}
	}()

	rec, err := g.sessionStore.Get(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			return nil, ErrSessionNotFound
		case errors.Is(err, session.ErrSessionCorrupt):
			// Unreadable records are destroyed, not skipped: a corrupt record
			// must never linger as an almost-valid session.
			g.destroySession(ctx, sessionID)
			return nil, ErrSessionNotFound
		default:
			g.metricInc(MetricSessionStoreUnavailable)
			return nil, fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
		}
	}

	now := g.now()

	if rec.Age(now) > g.config.Session.MaxSessionAge {
		g.destroySession(ctx, sessionID)
		g.metricInc(MetricSessionExpired)
		g.emitAudit(ctx, EventSessionExpired, rec.UserID, sessionID, map[string]string{
			"age_seconds": strconv.FormatInt(int64(rec.Age(now).Seconds()), 10),
		})
		return nil, ErrSessionExpired
	}

	if userAgent := userAgentFromContext(ctx); rec.UserAgent != "" && userAgent != rec.UserAgent {
		g.destroySession(ctx, sessionID)
		g.metricInc(MetricSessionInvalidated)
		g.emitAudit(ctx, EventSessionUserAgentMismatch, rec.UserID, sessionID, map[string]string{
			"stored_user_agent": rec.UserAgent,
		})
		return nil, ErrSessionInvalidated
	}

	// IP changes are observational only: mobile and proxied clients change
	// address legitimately. The stored IP moves forward so the event fires
	// once per change, not once per request.
	if ip := clientIPFromContext(ctx); ip != "" && rec.IP != "" && ip != rec.IP {
		g.metricInc(MetricSessionIPChanged)
		g.emitAudit(ctx, EventSessionIPChanged, rec.UserID, sessionID, map[string]string{
			"previous_ip": rec.IP,
		})
		rec.IP = ip
	}

	if rec.Inactivity(now) > g.config.Session.MaxInactivity {
		g.destroySession(ctx, sessionID)
		g.metricInc(MetricSessionInactivityTimeout)
		g.emitAudit(ctx, EventSessionInactivityTimeout, rec.UserID, sessionID, map[string]string{
			"inactive_seconds": strconv.FormatInt(int64(rec.Inactivity(now).Seconds()), 10),
		})
		return nil, ErrSessionInactive
	}

	rec.LastActiveAt = now.Unix()
	if err := g.sessionStore.Save(ctx, rec, g.sessionTTL(now, rec)); err != nil {
		g.metricInc(MetricSessionStoreUnavailable)
		return nil, fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
	}

	return infoFromRecord(rec), nil
}

// CleanupSession destroys a session on explicit logout. Deleting an already
// absent session is not an error; logout must always succeed from the
// client's perspective unless the store itself is unreachable.
//
// CleanupSession may return an error when input validation, dependency calls, or security checks fail.
// CleanupSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *Guard) CleanupSession(ctx context.Context, sessionID string) error {
	if g == nil || g.sessionStore == nil {
		return ErrGuardNotReady
	}
	if sessionID == "" {
		return nil
	}

	// Best-effort read so the audit entry carries the user. A missing or
	// unreadable record does not block the delete.
	var userID string
	if rec, err := g.sessionStore.Get(ctx, sessionID); err == nil {
		userID = rec.UserID
	}

	if err := g.sessionStore.Delete(ctx, sessionID); err != nil {
		g.metricInc(MetricSessionStoreUnavailable)
		return fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
	}

	g.metricInc(MetricLogout)
	g.emitAudit(ctx, EventSessionCleaned, userID, sessionID, nil)

	return nil
}

// SessionPing reports session-store reachability and round-trip latency.
func (g *Guard) SessionPing(ctx context.Context) (time.Duration, error) {
	if g == nil || g.sessionStore == nil {
		return 0, ErrGuardNotReady
	}
	return g.sessionStore.Ping(ctx)
}

// sessionTTL returns the store TTL for a record: the inactivity window,
// clamped so the key never outlives the absolute session cap.
func (g *Guard) sessionTTL(now time.Time, rec *session.Record) time.Duration {
	remaining := g.config.Session.MaxSessionAge - rec.Age(now)
	if remaining < g.config.Session.MaxInactivity {
		return remaining
	}
	return g.config.Session.MaxInactivity
}

func (g *Guard) destroySession(ctx context.Context, sessionID string) {
	// Destruction on a failed check is best-effort: the validation verdict
	// stands even if the delete races a store fault.
	_ = g.sessionStore.Delete(ctx, sessionID)
}

func infoFromRecord(rec *session.Record) *SessionInfo {
	return &SessionInfo{
		SessionID:    rec.SessionID,
		UserID:       rec.UserID,
		Role:         rec.Role,
		Email:        rec.Email,
		CreatedAt:    time.Unix(rec.CreatedAt, 0),
		LastActiveAt: time.Unix(rec.LastActiveAt, 0),
	}
}
