package gallery

import (
	"context"
	"sync"

	"greengallery/assets"
	"greengallery/core"
)

// Manager hands out one Service per identity, loading the snapshot from the
// durable store on first touch and keeping the instance for the lifetime of
// the process. Unauthenticated callers share the guest service.
type Manager struct {
	mu       sync.Mutex
	services map[string]*Service
	store    core.SnapshotStore
	assets   core.AssetStore
	deriver  core.ThumbnailDeriver
}

// NewManager creates a manager wiring every Service to the same backends.
func NewManager(store core.SnapshotStore, assetStore core.AssetStore, deriver core.ThumbnailDeriver) *Manager {
	return &Manager{
		services: make(map[string]*Service),
		store:    store,
		assets:   assetStore,
		deriver:  deriver,
	}
}

// For returns the service for an identity, creating it on first use.
// An empty identityID maps to the guest service.
func (m *Manager) For(ctx context.Context, identityID string) *Service {
	key := identityID
	if key == "" {
		key = assets.GuestNamespace
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if svc, ok := m.services[key]; ok {
		return svc
	}
	svc := NewService(ctx, m.store, m.assets, m.deriver, identityID)
	m.services[key] = svc
	return svc
}
