// internal/core/ports/events.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
)

// StatusEventPublisher hands committed status changes to the background pipeline
type StatusEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event domain.StatusChangedEvent) error
}

// ActivityLogRepository persists status change history
type ActivityLogRepository interface {
	RecordStatusChange(ctx context.Context, event domain.StatusChangedEvent) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
