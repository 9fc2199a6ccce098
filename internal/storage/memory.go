package storage

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore implements Store in-process, for deployments without redis.
// Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]memoryEntry
	sessions  map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]memoryEntry),
		sessions:  make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Close() error {
	return nil
}

func set(m map[string]memoryEntry, key string, data []byte, ttl time.Duration) {
	m[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
}

func get(m map[string]memoryEntry, key string) []byte {
	entry, ok := m[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}
	return entry.data
}

func (s *MemoryStore) SaveSnapshot(_ context.Context, key string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set(s.snapshots, key, data, ttl)
	return nil
}

func (s *MemoryStore) GetSnapshot(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.snapshots, key), nil
}

func (s *MemoryStore) SaveSession(_ context.Context, session *Session, ttl time.Duration) error {
	data, err := marshalSession(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set(s.sessions, session.ID, data, ttl)
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	data := get(s.sessions, id)
	s.mu.RUnlock()
	if data == nil {
		return nil, nil
	}
	return unmarshalSession(data)
}

func (s *MemoryStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
