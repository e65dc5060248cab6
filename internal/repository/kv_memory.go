package repository

import (
	"context"
	"sync"
)

type memoryKVStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryKVStore crea un store en memoria, útil para tests y para STORE_DRIVER=memory.
func NewMemoryKVStore() KVStore {
	return &memoryKVStore{
		items: make(map[string]string),
	}
}

func (s *memoryKVStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *memoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memoryKVStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}
