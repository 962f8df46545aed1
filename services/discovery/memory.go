package discovery

import (
	"context"
	"encoding/json"
	"sync"

	"salesnav/models"
)

// MemoryStore is a process-local SessionStore. Sessions are kept as JSON so
// callers never share mutable state, matching RedisStore. Entries do not
// expire.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*models.DiscoverySession, error) {
	m.mu.Lock()
	b, ok := m.data[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(b)
}

func (m *MemoryStore) Save(_ context.Context, s *models.DiscoverySession) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = b
	return nil
}

// Update holds the store lock for the whole read-modify-write.
func (m *MemoryStore) Update(_ context.Context, id string, fn UpdateFunc) (*models.DiscoverySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess, err := decodeSession(b)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if b, err = json.Marshal(sess); err != nil {
		return nil, err
	}
	m.data[id] = b
	return sess, nil
}
