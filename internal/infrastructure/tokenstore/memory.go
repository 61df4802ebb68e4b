// Package tokenstore holds process-local and file-backed token stores.
package tokenstore

import (
	"context"
	"sync"
	"time"
)

// Memory keeps a token in process memory.
type Memory struct {
	mu    sync.Mutex
	token string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != "", nil
}

func (m *Memory) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// MemoryRegistry hands out one Memory store per console session. It backs the
// console when no Redis is configured. Entries unused for longer than ttl are
// treated as gone, like keys expiring in Redis.
type MemoryRegistry struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	stores map[string]*registryEntry
}

type registryEntry struct {
	store    *Memory
	lastUsed time.Time
}

// NewMemoryRegistry returns a registry whose entries expire ttl after their
// last use. A ttl of zero keeps entries until they are released.
func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		ttl:    ttl,
		now:    time.Now,
		stores: make(map[string]*registryEntry),
	}
}

func (r *MemoryRegistry) ForSession(sessionID string) *Memory {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	e, ok := r.stores[sessionID]
	if !ok || r.expired(e, now) {
		e = &registryEntry{store: NewMemory()}
		r.stores[sessionID] = e
	}
	e.lastUsed = now
	return e.store
}

// Release is called when a session's workspace goes away. The store of
// sessionID is removed unless it still holds a token; expired entries of any
// session are pruned on the way.
func (r *MemoryRegistry) Release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.stores[sessionID]; ok {
		if _, held, _ := e.store.Get(context.Background()); !held {
			delete(r.stores, sessionID)
		}
	}
	now := r.now()
	for id, e := range r.stores {
		if r.expired(e, now) {
			delete(r.stores, id)
		}
	}
}

func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

func (r *MemoryRegistry) expired(e *registryEntry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.lastUsed) > r.ttl
}
