package storage

import (
	"context"
	"encoding/json"
	"sync"
)

type memoryCollection struct {
	order []string
	docs  map[string]json.RawMessage
}

// MemoryStore keeps collections in process memory. Insertion order is
// preserved per collection; replacing a document keeps its original slot.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return []json.RawMessage{}, nil
	}
	out := make([]json.RawMessage, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.docs[id])
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *MemoryStore) Put(ctx context.Context, collection, id string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		c = &memoryCollection{docs: make(map[string]json.RawMessage)}
		s.collections[collection] = c
	}
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = doc
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return ErrNotFound
	}
	if _, exists := c.docs[id]; !exists {
		return ErrNotFound
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
