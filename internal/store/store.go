// Package store is the persistence boundary: whole-collection JSON
// snapshots behind a keyed blob interface, plus the session/preference
// keys in Redis. Every write fully replaces its target key, so there is
// no partial-write concern per key — but writes to different keys during
// one action are not atomic with respect to each other, and nothing above
// this package may assume they are.
package store

import "context"

// Key names one snapshot blob.
type Key string

const (
	KeyOrgs      Key = "orgs"
	KeyUsers     Key = "users"
	KeyBrands    Key = "brands"
	KeyTasks     Key = "tasks"
	KeyCalendars Key = "calendars"
	KeyNotifs    Key = "notifs"
)

// Snapshots stores one JSON blob per key.
type Snapshots interface {
	// Load returns the blob for key. ok is false when the key has never
	// been written — the caller falls back to seed data.
	Load(ctx context.Context, key Key) (blob []byte, ok bool, err error)

	// Save overwrites the blob for key. A returned error means the durable
	// copy may be stale; callers must surface it, not assume success.
	Save(ctx context.Context, key Key, blob []byte) error
}
