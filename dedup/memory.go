package dedup

import (
	"context"
	"sync"
)

// MemoryRegistry is a process-local registry for tests. It deliberately has
// the restart/rebalance weakness the Redis registry exists to fix.
type MemoryRegistry struct {
	mu        sync.Mutex
	processed map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{processed: make(map[string]struct{})}
}

func (r *MemoryRegistry) IsProcessed(_ context.Context, eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.processed[eventID]
	return ok, nil
}

func (r *MemoryRegistry) MarkProcessed(_ context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.processed[eventID] = struct{}{}
	return nil
}
