// Package store provides AssociationStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/accounting-time/accounting"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	associations []accounting.UnitKindAssociation
	byID         map[string]int
}

func NewMemory() *Memory {
	return &Memory{byID: make(map[string]int)}
}

// Append adds a single association.
func (m *Memory) Append(_ context.Context, a accounting.UnitKindAssociation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byID[a.ID()]; exists {
		return accounting.ErrDuplicateAssociation
	}
	m.appendLocked(a)
	return nil
}

// AppendBatch adds multiple associations atomically.
func (m *Memory) AppendBatch(_ context.Context, as []accounting.UnitKindAssociation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Check all ids first (atomic check), including repeats inside the batch
	seen := make(map[string]bool, len(as))
	for _, a := range as {
		if _, exists := m.byID[a.ID()]; exists || seen[a.ID()] {
			return accounting.ErrDuplicateAssociation
		}
		seen[a.ID()] = true
	}

	for _, a := range as {
		m.appendLocked(a)
	}
	return nil
}

func (m *Memory) appendLocked(a accounting.UnitKindAssociation) {
	m.byID[a.ID()] = len(m.associations)
	m.associations = append(m.associations, a)
}

func (m *Memory) List(_ context.Context) ([]accounting.UnitKindAssociation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]accounting.UnitKindAssociation, len(m.associations))
	copy(result, m.associations)
	return result, nil
}

func (m *Memory) Get(_ context.Context, id string) (accounting.UnitKindAssociation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byID[id]
	if !ok {
		return accounting.UnitKindAssociation{}, accounting.ErrAssociationNotFound
	}
	return m.associations[i], nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.byID[id]
	if !ok {
		return accounting.ErrAssociationNotFound
	}
	m.associations = append(m.associations[:i], m.associations[i+1:]...)
	delete(m.byID, id)
	for j := i; j < len(m.associations); j++ {
		m.byID[m.associations[j].ID()] = j
	}
	return nil
}
