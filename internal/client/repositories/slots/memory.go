package slots

import (
	"context"
	"sync"
)

// MemoryRepository is an in-process Repository. Values are copied on the
// way in and out.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return clone(v), nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = clone(value)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		out[k] = clone(v)
	}
	return out, nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[string][]byte)
	return nil
}

func (r *MemoryRepository) Apply(_ context.Context, b Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range b {
		if v == nil {
			delete(r.data, k)
			continue
		}
		r.data[k] = clone(v)
	}
	return nil
}

func clone(v []byte) []byte {
	if v == nil {
		return []byte{}
	}
	return append([]byte(nil), v...)
}
