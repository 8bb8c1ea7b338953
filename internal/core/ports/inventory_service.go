// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/google/uuid"
)

// InventoryStatusService defines the application service port for inventory status.
// This interface is implemented by the application service.
type InventoryStatusService interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, update domain.StatusUpdate) (*domain.StatusUpdateResult, error)
	BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, update domain.StatusUpdate) (*domain.BulkStatusResult, error)
	GetStatus(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	CancelItem(ctx context.Context, id uuid.UUID, cancelledBy, notes *string) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
