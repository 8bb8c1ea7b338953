// internal/workers/publisher.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/internal/core/ports"
)

// TaskEnqueuer is the subset of *asynq.Client the publisher needs
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PublisherConfig controls how status events are enqueued
type PublisherConfig struct {
	Queue     string
	MaxRetry  int
	Retention time.Duration
}

// StatusEventPublisher enqueues status change events onto asynq
type StatusEventPublisher struct {
	client TaskEnqueuer
	config PublisherConfig
	logger *slog.Logger
}

var _ ports.StatusEventPublisher = (*StatusEventPublisher)(nil)

// NewStatusEventPublisher creates a new publisher
func NewStatusEventPublisher(client TaskEnqueuer, config PublisherConfig, logger *slog.Logger) *StatusEventPublisher {
	if config.Queue == "" {
		config.Queue = "default"
	}
	if config.MaxRetry == 0 {
		config.MaxRetry = 5
	}
	if config.Retention == 0 {
		config.Retention = 24 * time.Hour
	}
	return &StatusEventPublisher{
		client: client,
		config: config,
		logger: logger.With(slog.String("component", "status_publisher")),
	}
}

// PublishStatusChanged enqueues one status change
func (p *StatusEventPublisher) PublishStatusChanged(ctx context.Context, event domain.StatusChangedEvent) error {
	task, err := NewStatusChangedTask(event)
	if err != nil {
		return err
	}

	info, err := p.client.EnqueueContext(ctx, task,
		asynq.Queue(p.config.Queue),
		asynq.MaxRetry(p.config.MaxRetry),
		asynq.Retention(p.config.Retention))
	if err != nil {
		return fmt.Errorf("failed to enqueue status change for %s: %w", event.InventoryID, err)
	}

	p.logger.DebugContext(ctx, "status change enqueued",
		slog.String("task_id", info.ID),
		slog.String("inventory_id", event.InventoryID.String()),
		slog.String("source", event.Source))

	return nil
}
