package session

import "time"

// Record is the server-side session state. The store persists it verbatim and
// never interprets fields; the lifecycle rules in the root package own every
// transition.
//
// Record instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Record struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`

	CreatedAt    int64 `json:"created_at"`
	LastActiveAt int64 `json:"last_active_at"`

	UserAgent string `json:"user_agent"`
	IP        string `json:"ip"`
}

// Age returns how long ago the session was created.
func (r *Record) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(r.CreatedAt, 0))
}

// Inactivity returns how long ago the session last saw a request.
func (r *Record) Inactivity(now time.Time) time.Duration {
	return now.Sub(time.Unix(r.LastActiveAt, 0))
}
