// Package memory provides an in-memory receipt archive.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/youstel/registration-desk/registration"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	receipts map[string]registration.Receipt
}

var _ registration.Archive = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{receipts: make(map[string]registration.Receipt)}
}

// SaveReceipt inserts a receipt. Saving an existing ID overwrites it.
func (m *Memory) SaveReceipt(_ context.Context, r registration.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[r.ID] = r
	return nil
}

func (m *Memory) UpdateReceipt(_ context.Context, r registration.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.receipts[r.ID]; !ok {
		return registration.ErrReceiptNotFound
	}
	m.receipts[r.ID] = r
	return nil
}

func (m *Memory) GetReceipt(_ context.Context, id string) (*registration.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.receipts[id]
	if !ok {
		return nil, registration.ErrReceiptNotFound
	}
	return &r, nil
}

// ListReceipts returns all receipts, newest first.
func (m *Memory) ListReceipts(_ context.Context) ([]registration.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]registration.Receipt, 0, len(m.receipts))
	for _, r := range m.receipts {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListPending returns pending receipts, oldest first.
func (m *Memory) ListPending(_ context.Context) ([]registration.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []registration.Receipt
	for _, r := range m.receipts {
		if r.Status == registration.StatusPending {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
