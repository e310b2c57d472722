package repositories

import (
	"fmt"
	"sync"
)

// MockStateStore is an in-memory implementation of StateStore.
type MockStateStore struct {
	records map[string][]byte
	mu      sync.RWMutex

	// FailSaves makes every Save return an error, for exercising the
	// best-effort persistence path.
	FailSaves bool
}

// NewMockStateStore creates a new instance of MockStateStore.
func NewMockStateStore() *MockStateStore {
	return &MockStateStore{
		records: make(map[string][]byte),
	}
}

// Load returns the payload stored under a key.
func (r *MockStateStore) Load(key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.records[key]
	if !ok {
		return nil, ErrStateNotFound
	}
	return payload, nil
}

// Save stores the payload under a key.
func (r *MockStateStore) Save(key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailSaves {
		return fmt.Errorf("simulated save failure for key %s", key)
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	r.records[key] = cp
	return nil
}

// Keys returns the set of keys currently stored, for assertions.
func (r *MockStateStore) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.records))
	for key := range r.records {
		keys = append(keys, key)
	}
	return keys
}
