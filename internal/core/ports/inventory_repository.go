// internal/core/ports/inventory_repository.go
package ports

import (
	"context"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/google/uuid"
)

// InventoryRepository defines the persistence port for inventory status.
// Each call is atomic on its own; callers get no transaction across calls.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	// FetchStatusByID returns nil, nil when the item does not exist.
	FetchStatusByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	// FetchStatusByIDs returns the rows that exist; unknown ids are omitted.
	FetchStatusByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.InventoryItem, error)
	// UpdateStatusByID returns domain.ErrConcurrentUpdate if the row's version moved.
	UpdateStatusByID(ctx context.Context, id uuid.UUID, patch domain.StatusPatch) (*domain.InventoryItem, error)
	// UpdateStatusByIDs applies every patch or none of them.
	UpdateStatusByIDs(ctx context.Context, patches []domain.ItemStatusPatch) ([]domain.InventoryItem, error)
	SoftDelete(ctx context.Context, id uuid.UUID, expectedVersion int64) error
}
