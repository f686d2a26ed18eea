package memory

import (
	"context"
	"sync"

	"greengallery/core"

	"github.com/sirupsen/logrus"
)

// Store keeps profile snapshots in process memory. Used as the default
// backend and in tests.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*core.ProfileSnapshot
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{snapshots: make(map[string]*core.ProfileSnapshot)}
}

// Load returns a copy of the stored snapshot, or (nil, nil) when the user
// has never been saved.
func (s *Store) Load(ctx context.Context, userID string) (*core.ProfileSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[userID]
	if !ok {
		return nil, nil
	}
	return snap.Clone(), nil
}

// Save stores a copy of the snapshot under the user's key.
func (s *Store) Save(ctx context.Context, userID string, snap *core.ProfileSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[userID] = snap.Clone()
	logrus.WithField("user_id", userID).Debug("Profile snapshot saved")
	return nil
}
