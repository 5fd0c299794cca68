package analytics

import (
	"context"
	"time"

	"studentgigs/internal/common"
)

// Event is an append-only audit record. Services emit events after
// successful mutations; failures to record are ignored.
type Event struct {
	ID        common.UUID       `json:"id"`
	Name      string            `json:"name"`
	UserID    *common.UUID      `json:"user_id,omitempty"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, event Event) error
	// CountByName aggregates events since the given time, keyed by name.
	// Backs the admin summary endpoint.
	CountByName(ctx context.Context, since time.Time) (map[string]int64, error)
}
