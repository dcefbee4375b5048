package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/frahmantamala/finance-ledger/internal/schema"
)

// Manager owns the lifecycle of one ledger file. Callers hold a Manager
// instead of a process-wide handle; at most one Store is open at a time.
type Manager struct {
	mu          sync.Mutex
	path        string
	logger      *slog.Logger
	store       *Store
	seedResults []schema.SeedResult
}

func NewManager(path string, logger *slog.Logger) *Manager {
	return &Manager{
		path:   path,
		logger: logger.With("db_path", path),
	}
}

// Initialize opens, migrates and seeds the ledger. Calling it while a store
// is open returns ErrStoreAlreadyOpen.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		return internal.ErrStoreAlreadyOpen
	}

	s, results, err := Open(ctx, m.path, m.logger)
	if err != nil {
		return err
	}

	m.store = s
	m.seedResults = results
	m.logger.Info("ledger initialized", "seeded", len(results))
	return nil
}

// Close releases the open store. Closing an already closed manager is a
// no-op.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store == nil {
		return nil
	}

	err := m.store.Close()
	m.store = nil
	if err != nil {
		m.logger.Error("failed to close ledger", "error", err)
		return internal.NewConnectionError("failed to close database", err)
	}

	m.logger.Info("ledger closed")
	return nil
}

// Store returns the open store or ErrStoreClosed.
func (m *Manager) Store() (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store == nil {
		return nil, internal.ErrStoreClosed
	}
	return m.store, nil
}

func (m *Manager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store != nil
}

func (m *Manager) Path() string {
	return m.path
}

// SeedResults reports what the last Initialize seeded. It is empty when the
// ledger already had categories.
func (m *Manager) SeedResults() []schema.SeedResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seedResults
}
