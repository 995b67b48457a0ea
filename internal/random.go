package internal

import (
	"crypto/rand"
	"encoding/base64"
)

// SessionID is a 128-bit random session identifier. Identifiers are opaque:
// no field of the session record is recoverable from the ID.
type SessionID [16]byte

func NewSessionID() (SessionID, error) {
	var sid SessionID
	_, err := rand.Read(sid[:])
	return sid, err
}

func (s SessionID) String() string {
	// base64url, no padding, compact
	return base64.RawURLEncoding.EncodeToString(s[:])
}
