// Package session provides the durable session record model and its
// Redis-backed store.
//
// The store is deliberately dumb: Get, Save, Delete, Touch, with TTL handled
// by Redis as a safety net. All lifecycle decisions (absolute expiry,
// inactivity, client-consistency checks, regeneration) live in the goShield
// root package, which is the record's only writer.
package session
