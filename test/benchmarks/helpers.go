// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
)

// memoryRepository is an in-process inventory store used to benchmark the status
// service without a database
type memoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.InventoryItem
}

func newMemoryRepository(items []domain.InventoryItem) *memoryRepository {
	r := &memoryRepository{items: make(map[uuid.UUID]domain.InventoryItem, len(items))}
	for _, item := range items {
		r.items[item.InventoryID] = item
	}
	return r
}

func (r *memoryRepository) Create(_ context.Context, item *domain.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.InventoryID] = *item
	return nil
}

func (r *memoryRepository) FetchStatusByID(_ context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || item.DeletedAt != nil {
		return nil, nil
	}
	return &item, nil
}

func (r *memoryRepository) FetchStatusByIDs(_ context.Context, ids []uuid.UUID) ([]domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.InventoryItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok && item.DeletedAt == nil {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryRepository) UpdateStatusByID(_ context.Context, id uuid.UUID, patch domain.StatusPatch) (*domain.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, err := r.applyLocked(id, patch)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *memoryRepository) UpdateStatusByIDs(_ context.Context, patches []domain.ItemStatusPatch) ([]domain.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range patches {
		if item, ok := r.items[p.InventoryID]; !ok || item.Version != p.Patch.ExpectedVersion {
			return nil, domain.ErrConcurrentUpdate
		}
	}

	out := make([]domain.InventoryItem, 0, len(patches))
	for _, p := range patches {
		item, err := r.applyLocked(p.InventoryID, p.Patch)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *memoryRepository) SoftDelete(_ context.Context, id uuid.UUID, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Version != expectedVersion {
		return domain.ErrConcurrentUpdate
	}
	now := time.Now()
	item.DeletedAt = &now
	item.Version++
	r.items[id] = item
	return nil
}

func (r *memoryRepository) applyLocked(id uuid.UUID, patch domain.StatusPatch) (domain.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok || item.Version != patch.ExpectedVersion {
		return domain.InventoryItem{}, domain.ErrConcurrentUpdate
	}
	if patch.PhysicalStatus != nil {
		item.PhysicalStatus = *patch.PhysicalStatus
	}
	if patch.BusinessStatus != nil {
		item.BusinessStatus = *patch.BusinessStatus
	}
	if patch.UpdatedBy != nil {
		item.StatusUpdatedBy = *patch.UpdatedBy
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.StatusChanged {
		at := patch.UpdatedAt
		item.StatusUpdatedAt = &at
	}
	item.UpdatedAt = patch.UpdatedAt
	item.Version++
	r.items[id] = item
	return item, nil
}

// nopCache always misses
type nopCache struct{}

var errCacheMiss = errors.New("cache miss")

func (nopCache) Set(context.Context, string, interface{}) error { return nil }

func (nopCache) SetWithTTL(context.Context, string, interface{}, time.Duration) error { return nil }

func (nopCache) Get(context.Context, string, interface{}) error { return errCacheMiss }

func (nopCache) Delete(context.Context, ...string) error { return nil }

func (nopCache) Ping(context.Context) error { return nil }

// nopPublisher discards status events
type nopPublisher struct{}

func (nopPublisher) PublishStatusChanged(context.Context, domain.StatusChangedEvent) error {
	return nil
}
