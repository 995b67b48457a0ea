package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the request-security guard.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store is a Redis-backed session store shared by all server processes.
// Redis TTL enforcement is a safety net on top of the application-level
// expiry checks in the root package: even if no process revisits a session,
// the record disappears on its own.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace.
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	return &Store{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

// Get retrieves a session by ID. Returns redis.Nil when the session does not
// exist and wraps every infrastructure fault in [ErrRedisUnavailable].
//
//	Performance: 1 Redis GET.
func (s *Store) Get(ctx context.Context, sessionID string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	rec, err := Decode(data)
	if err != nil {
		return nil, err
	}
	rec.SessionID = sessionID

	return rec, nil
}

// Save persists a [Record] with the given TTL, overwriting any previous
// state for the same session ID.
//
//	Performance: 1 Redis SET.
func (s *Store) Save(ctx context.Context, rec *Record, ttl time.Duration) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(rec.SessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Delete removes a session. Deleting an absent session is not an error.
//
//	Performance: 1 Redis DEL.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Touch extends the TTL of an existing session without rewriting the record.
// Returns false when the session no longer exists.
//
//	Performance: 1 Redis EXPIRE.
func (s *Store) Touch(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	ok, err := s.redis.Expire(ctx, s.key(sessionID), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return ok, nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
