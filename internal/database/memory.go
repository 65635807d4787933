package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type memCollection struct {
	order []string // insertion order, oldest first
	docs  map[string][]byte
}

// MemoryStore keeps JSON-encoded documents in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

func (s *MemoryStore) collection(name string) *memCollection {
	col, ok := s.collections[name]
	if !ok {
		col = &memCollection{docs: make(map[string][]byte)}
		s.collections[name] = col
	}
	return col
}

// lookup never creates a collection, so it is safe under the read lock.
func (s *MemoryStore) lookup(name string) *memCollection {
	if col, ok := s.collections[name]; ok {
		return col
	}
	return &memCollection{docs: map[string][]byte{}}
}

func (s *MemoryStore) Insert(_ context.Context, c Collection, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", c.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(c.Name)
	if _, exists := col.docs[key]; exists {
		return ErrDuplicateKey
	}
	col.docs[key] = raw
	col.order = append(col.order, key)
	return nil
}

func (s *MemoryStore) Upsert(_ context.Context, c Collection, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", c.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(c.Name)
	if _, exists := col.docs[key]; !exists {
		col.order = append(col.order, key)
	}
	col.docs[key] = raw
	return nil
}

func (s *MemoryStore) Get(_ context.Context, c Collection, key string, out any) error {
	s.mu.RLock()
	raw, ok := s.lookup(c.Name).docs[key]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (s *MemoryStore) Find(_ context.Context, c Collection, filter Filter, out any) error {
	s.mu.RLock()
	col := s.lookup(c.Name)
	matched := make([]json.RawMessage, 0, len(col.order))
	for i := len(col.order) - 1; i >= 0; i-- {
		raw := col.docs[col.order[i]]
		ok, err := matchesFilter(raw, filter)
		if err != nil {
			s.mu.RUnlock()
			return err
		}
		if ok {
			matched = append(matched, raw)
		}
	}
	s.mu.RUnlock()

	all, err := json.Marshal(matched)
	if err != nil {
		return err
	}
	return json.Unmarshal(all, out)
}

func (s *MemoryStore) Merge(_ context.Context, c Collection, key string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(c.Name)
	raw, ok := col.docs[key]
	if !ok {
		return ErrNotFound
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding %s document: %w", c.Name, err)
	}
	for field, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding field %s: %w", field, err)
		}
		doc[field] = encoded
	}
	updated, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	col.docs[key] = updated
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, c Collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(c.Name)
	if _, ok := col.docs[key]; !ok {
		return ErrNotFound
	}
	delete(col.docs, key)
	for i, k := range col.order {
		if k == key {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }

func matchesFilter(raw []byte, filter Filter) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, err
	}
	for field, want := range filter {
		got, ok := doc[field].(string)
		if !ok || got != want {
			return false, nil
		}
	}
	return true, nil
}
