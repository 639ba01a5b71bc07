// ABOUTME: Storage collaborators for assessments and inventory objects
// ABOUTME: Narrow interfaces plus an in-memory store for local runs and tests

package services

import (
	"context"
	"sync"

	"github.com/markalston/migration-assessor/models"
)

// Store persists assessments keyed by server name. PutItem overwrites any
// existing item with the same key.
type Store interface {
	PutItem(ctx context.Context, item models.MigrationAssessment) error
	GetItem(ctx context.Context, serverName string) (*models.MigrationAssessment, bool, error)
}

// ObjectStore reads whole objects from bucket-style storage.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]models.MigrationAssessment
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]models.MigrationAssessment)}
}

func (m *MemoryStore) PutItem(ctx context.Context, item models.MigrationAssessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.items[item.ServerName] = item
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) GetItem(ctx context.Context, serverName string) (*models.MigrationAssessment, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	item, ok := m.items[serverName]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return &item, true, nil
}

// Len returns the number of stored items
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
