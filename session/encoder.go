package session

import (
	"encoding/json"
	"errors"
)

// ErrSessionCorrupt is returned when a stored session blob fails to decode.
var ErrSessionCorrupt = errors.New("session record corrupt")

// Encode serializes a [Record] for storage.
func Encode(rec *Record) ([]byte, error) {
	if rec == nil {
		return nil, errors.New("nil session record")
	}
	if rec.UserID == "" {
		return nil, errors.New("session record requires user id")
	}
	if rec.LastActiveAt < rec.CreatedAt {
		return nil, errors.New("session record last_active_at precedes created_at")
	}

	return json.Marshal(rec)
}

// Decode deserializes a stored session blob. Any decode failure maps to
// [ErrSessionCorrupt]; callers treat a corrupt record like a missing one and
// destroy the key.
func Decode(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Join(ErrSessionCorrupt, err)
	}
	if rec.UserID == "" {
		return nil, ErrSessionCorrupt
	}

	return &rec, nil
}
