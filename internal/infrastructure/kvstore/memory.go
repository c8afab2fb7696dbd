package kvstore

import (
	"context"
	"sync"
)

type memoryEntry struct {
	value   []byte
	version int64
}

// MemoryStore держит данные в памяти процесса.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, 0, nil
	}
	return append([]byte(nil), entry.value...), entry.version, nil
}

func (s *MemoryStore) CompareAndSwap(ctx context.Context, key string, expected int64, value []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.entries[key]
	if current.version != expected {
		return 0, ErrVersionConflict
	}
	next := memoryEntry{value: append([]byte(nil), value...), version: expected + 1}
	s.entries[key] = next
	return next.version, nil
}

// Set записывает значение в обход версий. Нужен для наполнения тестовых данных.
func (s *MemoryStore) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.entries[key]
	s.entries[key] = memoryEntry{value: append([]byte(nil), value...), version: current.version + 1}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}
