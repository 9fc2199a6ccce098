// Package storage holds the snapshot cache and dashboard sessions, outside
// the normalization core. Two implementations exist: redis for shared
// deployments and an in-memory store for single-process ones.
package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Session represents an authenticated dashboard session.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists usage snapshots and sessions with TTL semantics. Misses
// are reported as (nil, nil).
type Store interface {
	SaveSnapshot(ctx context.Context, key string, data []byte, ttl time.Duration) error
	GetSnapshot(ctx context.Context, key string) ([]byte, error)

	SaveSession(ctx context.Context, session *Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error

	Close() error
}

func marshalSession(session *Session) ([]byte, error) {
	return json.Marshal(session)
}

func unmarshalSession(data []byte) (*Session, error) {
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
