// Package memory is an in-process asset store used as the default backend
// and as a test double.
package memory

import (
	"context"
	"io"
	"sync"

	"greengallery/core"
)

// Store keeps uploaded blobs in memory. FailWith, when set, makes every
// Upload fail with that error, which tests use to exercise transfer
// failure paths.
type Store struct {
	mu       sync.Mutex
	objects  map[string][]byte
	FailWith error
}

// NewStore creates an empty in-memory asset store.
func NewStore() *Store {
	return &Store{objects: make(map[string][]byte)}
}

func (s *Store) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64, onProgress func(float64)) (string, error) {
	s.mu.Lock()
	failWith := s.FailWith
	s.mu.Unlock()
	if failWith != nil {
		return "", failWith
	}

	data, err := io.ReadAll(core.NewProgressReader(r, size, onProgress))
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return "memory://" + key, nil
}

// Object returns the stored blob for a key.
func (s *Store) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

// Keys returns the keys of all stored blobs.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of stored blobs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
