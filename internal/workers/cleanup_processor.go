// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/aeroparts-be/internal/core/ports"
)

// CleanupProcessor handles cleanup tasks
type CleanupProcessor struct {
	logs             ports.ActivityLogRepository
	defaultRetention time.Duration
	now              func() time.Time
	logger           *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(logs ports.ActivityLogRepository, defaultRetention time.Duration, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		logs:             logs,
		defaultRetention: defaultRetention,
		now:              time.Now,
		logger:           logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupActivityLogs removes status history older than the retention window
func (p *CleanupProcessor) CleanupActivityLogs(ctx context.Context, t *asynq.Task) error {
	retention := p.defaultRetention

	if len(t.Payload()) > 0 {
		var payload CleanupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
		if payload.RetentionSeconds > 0 {
			retention = time.Duration(payload.RetentionSeconds) * time.Second
		}
	}

	if retention <= 0 {
		p.logger.InfoContext(ctx, "activity log retention disabled, skipping cleanup")
		return nil
	}

	cutoff := p.now().Add(-retention)
	p.logger.InfoContext(ctx, "cleaning up activity logs", slog.Time("cutoff", cutoff))

	deleted, err := p.logs.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup activity logs: %w", err)
	}

	p.logger.InfoContext(ctx, "activity logs cleaned up",
		slog.Int64("rows_deleted", deleted))

	return nil
}
