// internal/core/ports/database.go
package ports

import "context"

// Database defines the port for the database lifecycle and health,
// abstracting away the concrete pgxpool implementation from handlers.
type Database interface {
	Close()
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]interface{}
}
