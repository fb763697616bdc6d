package timesheet

import (
	"context"

	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
)

// Service manages the timesheet lifecycle: DRAFT -> SUBMITTED ->
// APPROVED | REJECTED, with withdraw back to DRAFT. Rejection unlinks the
// entries so they can be bundled again; approval cascades to them.
type Service interface {
	// Create bundles the actor's eligible entries into a new draft.
	Create(ctx context.Context, actor worker.Actor, req CreateRequest) (Response, error)

	// Update replaces a draft's entry set and recomputes totals.
	Update(ctx context.Context, actor worker.Actor, req UpdateRequest) (Response, error)

	// Submit moves DRAFT -> SUBMITTED.
	Submit(ctx context.Context, actor worker.Actor, id string) (Response, error)

	// Withdraw moves SUBMITTED -> DRAFT.
	Withdraw(ctx context.Context, actor worker.Actor, id string) (Response, error)

	// Review resolves a SUBMITTED timesheet (admin only).
	Review(ctx context.Context, actor worker.Actor, req ReviewRequest) (Response, error)

	// Delete removes a draft, unlinking its entries first.
	Delete(ctx context.Context, actor worker.Actor, id string) error

	GetByID(ctx context.Context, actor worker.Actor, id string) (Response, error)
	ListMine(ctx context.Context, actor worker.Actor, page, limit int) (ListResponse, error)
	List(ctx context.Context, actor worker.Actor, status *Status, page, limit int) (ListResponse, error)
}
