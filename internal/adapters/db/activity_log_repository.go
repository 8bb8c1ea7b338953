// internal/adapters/db/activity_log_repository.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/internal/core/ports"
)

// ActivityLogRepository stores the status change history
type ActivityLogRepository struct {
	db     *Database
	logger *slog.Logger
}

var _ ports.ActivityLogRepository = (*ActivityLogRepository)(nil)

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *Database, logger *slog.Logger) *ActivityLogRepository {
	return &ActivityLogRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "activity_logs")),
	}
}

// RecordStatusChange appends one history row
func (r *ActivityLogRepository) RecordStatusChange(ctx context.Context, event domain.StatusChangedEvent) error {
	details, err := json.Marshal(event.Changes)
	if err != nil {
		return fmt.Errorf("failed to marshal status changes: %w", err)
	}

	query, args, err := psql.Insert("activity_logs").
		Columns(
			"inventory_id", "action",
			"from_physical_status", "to_physical_status",
			"from_business_status", "to_business_status",
			"changed_by", "notes", "details", "occurred_at",
		).
		Values(
			event.InventoryID, event.Source,
			event.Changes.PhysicalStatus.From, event.Changes.PhysicalStatus.To,
			event.Changes.BusinessStatus.From, event.Changes.BusinessStatus.To,
			nullText(event.ChangedBy), nullText(event.Notes), details, event.OccurredAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record status change: %w", err)
	}

	return nil
}

// DeleteOlderThan prunes history rows that occurred before cutoff
func (r *ActivityLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("activity_logs").
		Where(squirrel.Lt{"occurred_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete activity logs: %w", err)
	}

	r.logger.InfoContext(ctx, "pruned activity logs",
		slog.Time("cutoff", cutoff),
		slog.Int64("deleted", tag.RowsAffected()))

	return tag.RowsAffected(), nil
}
