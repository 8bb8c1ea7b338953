// internal/workers/status_history_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/internal/core/ports"
)

// StatusHistoryProcessor writes status change events to the activity log
type StatusHistoryProcessor struct {
	logs   ports.ActivityLogRepository
	logger *slog.Logger
}

// NewStatusHistoryProcessor creates a new status history processor
func NewStatusHistoryProcessor(logs ports.ActivityLogRepository, logger *slog.Logger) *StatusHistoryProcessor {
	return &StatusHistoryProcessor{
		logs:   logs,
		logger: logger.With(slog.String("processor", "status_history")),
	}
}

// RecordStatusChange handles TypeStatusChanged tasks
func (p *StatusHistoryProcessor) RecordStatusChange(ctx context.Context, t *asynq.Task) error {
	var event domain.StatusChangedEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		// a malformed payload will never decode, retrying is pointless
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := p.logs.RecordStatusChange(ctx, event); err != nil {
		return fmt.Errorf("failed to record status change for %s: %w", event.InventoryID, err)
	}

	p.logger.InfoContext(ctx, "status change recorded",
		slog.String("inventory_id", event.InventoryID.String()),
		slog.String("source", event.Source),
		slog.String("physical", event.Changes.PhysicalStatus.From+"->"+event.Changes.PhysicalStatus.To),
		slog.String("business", event.Changes.BusinessStatus.From+"->"+event.Changes.BusinessStatus.To))

	return nil
}
