package room

import (
	"context"
	"fmt"
	"sync"
)

// BalanceStore is the external wallet collaborator. Reads and writes are
// the single point of awaited I/O per command; the table actor never
// interleaves them with a second command on the same table.
type BalanceStore interface {
	ReadBalance(ctx context.Context, userID string) (int, error)
	WriteBalance(ctx context.Context, userID string, chips int) error
}

// MemoryBalances is an in-memory BalanceStore for development and tests.
type MemoryBalances struct {
	mu    sync.Mutex
	chips map[string]int
}

// NewMemoryBalances creates a store where every unknown user starts with
// the given default balance.
func NewMemoryBalances(defaultChips int) *MemoryBalances {
	return &MemoryBalances{chips: map[string]int{"": defaultChips}}
}

func (m *MemoryBalances) ReadBalance(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if chips, ok := m.chips[userID]; ok {
		return chips, nil
	}
	return m.chips[""], nil
}

func (m *MemoryBalances) WriteBalance(_ context.Context, userID string, chips int) error {
	if chips < 0 {
		return fmt.Errorf("balance for %s cannot go negative", userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chips[userID] = chips
	return nil
}
