package payperiod

import (
	"context"

	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
)

// Service manages the pay period lifecycle: OPEN -> LOCKED -> EXPORTED, with
// an owner-gated unlock back to OPEN.
type Service interface {
	// EnsureCurrent idempotently returns (creating if absent) the period
	// covering now per the company's schedule. Returns nil without error when
	// the company has no schedule configured.
	EnsureCurrent(ctx context.Context, actor worker.Actor) (*Response, error)

	// Create adds an explicit, manually-bounded period.
	Create(ctx context.Context, actor worker.Actor, req CreateRequest) (Response, error)

	// Lock closes the period for payroll, cascading the lock flag to every
	// covered entry. Fails while any covered entry is still PENDING.
	Lock(ctx context.Context, actor worker.Actor, id string) (Response, error)

	// Unlock reopens a locked (or exported) period. Owner only; requires a
	// reason of minimum length.
	Unlock(ctx context.Context, actor worker.Actor, req UnlockRequest) (Response, error)

	// Export marks a locked period exported; entries stay locked.
	Export(ctx context.Context, actor worker.Actor, id string) (Response, error)

	GetByID(ctx context.Context, actor worker.Actor, id string) (Response, error)
	List(ctx context.Context, actor worker.Actor, page, limit int) ([]Response, int64, error)

	// Aggregate sums minutes and labor cost per worker for the period.
	Aggregate(ctx context.Context, actor worker.Actor, id string) (Summary, error)
}
