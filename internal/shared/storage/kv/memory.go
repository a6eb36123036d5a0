package kv

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore stores values in memory and is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string]map[string]string
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byUser: make(map[string]map[string]string)}
}

// Get returns the value stored under key for the user.
func (s *MemoryStore) Get(ctx context.Context, userID, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.byUser[userID][key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

// Set stores the value under key for the user, replacing any prior value.
func (s *MemoryStore) Set(ctx context.Context, userID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.byUser[userID]
	if !ok {
		bucket = make(map[string]string)
		s.byUser[userID] = bucket
	}
	bucket[key] = value
	return nil
}

// List returns the user's items whose keys start with prefix, sorted by key.
func (s *MemoryStore) List(ctx context.Context, userID, prefix string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []Item{}
	for k, v := range s.byUser[userID] {
		if strings.HasPrefix(k, prefix) {
			items = append(items, Item{Key: k, Value: v})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items, nil
}

// Flush removes every key owned by the user.
func (s *MemoryStore) Flush(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
	return nil
}

var _ Store = (*MemoryStore)(nil)
