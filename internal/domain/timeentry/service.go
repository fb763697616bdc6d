package timeentry

import (
	"context"

	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
)

// Service defines the clock session state machine. Every operation takes the
// acting worker explicitly; identity is never read out of ambient state.
type Service interface {
	// ClockIn opens a session: geofence check for JOB_TIME, photo upload,
	// identity verification against the reference photo.
	ClockIn(ctx context.Context, actor worker.Actor, req ClockInRequest) (Response, error)

	// ClockOut closes the session and computes pay buckets.
	ClockOut(ctx context.Context, actor worker.Actor, req ClockOutRequest) (Response, error)

	// StartBreak pauses the active session.
	StartBreak(ctx context.Context, actor worker.Actor) (Response, error)

	// EndBreak resumes the active session, accumulating break minutes.
	EndBreak(ctx context.Context, actor worker.Actor) (Response, error)

	// CreateManual records a back-dated, pre-approved entry (admin only).
	CreateManual(ctx context.Context, actor worker.Actor, req ManualEntryRequest) (Response, error)

	// Approve marks a completed entry APPROVED (admin only).
	Approve(ctx context.Context, actor worker.Actor, id string) (Response, error)

	// Reject marks a completed entry REJECTED with a reason (admin only).
	Reject(ctx context.Context, actor worker.Actor, req RejectRequest) (Response, error)

	// GetByID retrieves one entry; workers may only see their own.
	GetByID(ctx context.Context, actor worker.Actor, id string) (Response, error)

	// ListMine retrieves the actor's entries.
	ListMine(ctx context.Context, actor worker.Actor, filter Filter) (ListResponse, error)

	// List retrieves entries across the company (admin only).
	List(ctx context.Context, actor worker.Actor, filter Filter) (ListResponse, error)
}
