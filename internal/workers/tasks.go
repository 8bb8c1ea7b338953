// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
)

const (
	TypeStatusChanged       = "inventory:status_changed"
	TypeCleanupActivityLogs = "maintenance:cleanup_activity_logs"
)

// CleanupPayload carries the retention window for a cleanup run
type CleanupPayload struct {
	RetentionSeconds int64 `json:"retention_seconds"`
}

// NewStatusChangedTask wraps a committed status change for the history worker
func NewStatusChangedTask(event domain.StatusChangedEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status event: %w", err)
	}
	return asynq.NewTask(TypeStatusChanged, b), nil
}

// NewCleanupActivityLogsTask builds the periodic history pruning task
func NewCleanupActivityLogsTask(retention time.Duration) (*asynq.Task, error) {
	b, err := json.Marshal(CleanupPayload{RetentionSeconds: int64(retention / time.Second)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cleanup payload: %w", err)
	}
	return asynq.NewTask(TypeCleanupActivityLogs, b), nil
}
