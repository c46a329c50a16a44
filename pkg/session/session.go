// Package session stores board sessions: a serialized board plus its
// expiry, addressed by a random UUID.
//
// Implementations exist for different deployments:
//   - [MemoryStore]: single-process server and tests
//   - [RedisStore]: multi-instance server deployments
//   - [FileStore]: the CLI, which keeps boards between invocations
//
// # Usage
//
//	sess := session.New(b.Snapshot(), session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // Unknown
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridboard/pkg/board"
)

// ErrExpired is returned by Get for a session that exists but has expired.
// Backends that expire entries themselves report such sessions as missing.
var ErrExpired = errors.New("session expired")

// DefaultTTL is the default session lifetime. Every write extends it.
const DefaultTTL = 24 * time.Hour

// Session is a stored board.
type Session struct {
	ID        string         `json:"id"`
	Board     board.Snapshot `json:"board"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// New creates a session for snap with a fresh ID.
func New(snap board.Snapshot, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Board:     snap,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Update replaces the stored board and extends the expiry by ttl from now.
func (s *Session) Update(snap board.Snapshot, ttl time.Duration) {
	now := time.Now()
	s.Board = snap
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// ValidID reports whether id has the form produced by New. Stores reject
// other IDs so they can be used safely as file names and keys.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist.
	// Returns nil, ErrExpired if the session exists but has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op where the backend
	// expires keys itself).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
