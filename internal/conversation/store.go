package conversation

import (
	"context"
	"sync"
	"time"
)

// Store persists one Context per session. Get on an unknown session returns
// the zero Context and no error.
type Store interface {
	Get(ctx context.Context, sessionID string) (Context, error)
	Set(ctx context.Context, sessionID string, c Context) error
}

type memoryEntry struct {
	context   Context
	updatedAt time.Time
}

// MemoryStore keeps contexts in process memory. Sessions not written for
// longer than the TTL read as empty and are dropped by PurgeExpired.
// A zero TTL keeps sessions forever.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sessionID]
	if !ok {
		return Context{}, nil
	}
	if m.expired(e) {
		delete(m.sessions, sessionID)
		return Context{}, nil
	}
	return e.context, nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID string, c Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = memoryEntry{context: c, updatedAt: m.now()}
	return nil
}

// PurgeExpired drops sessions older than the TTL and returns how many were
// removed.
func (m *MemoryStore) PurgeExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, e := range m.sessions {
		if m.expired(e) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of sessions held, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) expired(e memoryEntry) bool {
	return m.ttl > 0 && m.now().Sub(e.updatedAt) > m.ttl
}
