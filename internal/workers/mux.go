// internal/workers/mux.go
package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/aeroparts-be/internal/pkg/logger"
)

// NewServeMux routes status history and maintenance tasks to their processors
func NewServeMux(history *StatusHistoryProcessor, cleanup *CleanupProcessor, log *slog.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(taskContext(log))

	mux.HandleFunc(TypeStatusChanged, history.RecordStatusChange)
	mux.HandleFunc(TypeCleanupActivityLogs, cleanup.CleanupActivityLogs)

	return mux
}

// taskContext tags the context with the task id and logs each run
func taskContext(log *slog.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			if id, ok := asynq.GetTaskID(ctx); ok {
				ctx = context.WithValue(ctx, logger.ContextKeyTaskID, id)
			}

			start := time.Now()
			err := next.ProcessTask(ctx, t)

			level := slog.LevelDebug
			if err != nil {
				level = slog.LevelWarn
			}
			log.Log(ctx, level, "task processed",
				slog.String("type", t.Type()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.Bool("failed", err != nil),
			)

			return err
		})
	}
}
