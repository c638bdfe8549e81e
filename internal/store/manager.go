package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mvaldes/digital-toolkit/internal/database"
	"github.com/mvaldes/digital-toolkit/internal/notify"
)

// Manager hands out one Store per owner, loading the collection on first
// use. Stores are cached so repeated requests see the same in-memory state.
type Manager struct {
	repo   database.ToolRepositoryInterface
	sink   notify.Sink
	logger *zap.Logger

	mu     sync.Mutex
	stores map[uuid.UUID]*storeEntry
}

// storeEntry gates a cached store behind its initial load. Every caller goes
// through the once, so a store is never visible before the load has finished.
type storeEntry struct {
	store *Store
	once  sync.Once
	err   error
}

// NewManager creates a store manager
func NewManager(repo database.ToolRepositoryInterface, sink notify.Sink, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		repo:   repo,
		sink:   sink,
		logger: logger,
		stores: make(map[uuid.UUID]*storeEntry),
	}
}

// ForUser returns the owner's store, performing the initial load if this is
// the first request for that owner. Concurrent first requests block until the
// load completes and share its outcome, so no caller can observe an empty
// collection while the load is still in flight.
func (m *Manager) ForUser(ctx context.Context, userID uuid.UUID) (*Store, error) {
	m.mu.Lock()
	e, ok := m.stores[userID]
	if !ok {
		e = &storeEntry{store: New(userID, m.repo, m.sink, m.logger)}
		m.stores[userID] = e
	}
	m.mu.Unlock()

	e.once.Do(func() {
		e.err = e.store.Load(ctx)
	})
	if e.err != nil {
		// Drop the failed entry so the next request retries the load. The
		// eviction is pinned to this entry; a retry that already replaced it
		// is left alone.
		m.mu.Lock()
		if cur, ok := m.stores[userID]; ok && cur == e {
			delete(m.stores, userID)
		}
		m.mu.Unlock()
		return nil, e.err
	}
	return e.store, nil
}

// Evict discards the owner's cached store. Used on sign-out and when a
// caller wants a forced resync; any mutation still in flight completes
// against the orphaned store and is never observed again.
func (m *Manager) Evict(userID uuid.UUID) {
	m.mu.Lock()
	delete(m.stores, userID)
	m.mu.Unlock()
}
