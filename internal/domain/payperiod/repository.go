package payperiod

import (
	"context"
	"time"
)

// Repository defines data access for pay periods. Status transitions use
// compare-and-swap updates: the write only lands when the row still holds the
// expected status, so two concurrent lock requests cannot both succeed.
type Repository interface {
	// Create inserts a new period only if no existing period for the company
	// intersects its window. Returns ErrOverlappingPeriod when the guard
	// fails, so concurrent duplicate creation loses cleanly.
	Create(ctx context.Context, period PayPeriod) (PayPeriod, error)

	// GetByID retrieves a period with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (PayPeriod, error)

	// GetCovering returns the period whose window contains the instant, or
	// ErrPeriodNotFound.
	GetCovering(ctx context.Context, companyID string, at time.Time) (PayPeriod, error)

	// Overlaps reports whether any period intersects [start, end].
	Overlaps(ctx context.Context, companyID string, start, end time.Time) (bool, error)

	// List retrieves periods for a company, newest first.
	List(ctx context.Context, companyID string, page, limit int) ([]PayPeriod, int64, error)

	// MarkLocked transitions OPEN -> LOCKED when the row is still OPEN.
	// Returns ErrStatusConflict when the guard fails.
	MarkLocked(ctx context.Context, id string, companyID string, actorID string, at time.Time) error

	// MarkUnlocked transitions LOCKED/EXPORTED -> OPEN, recording the
	// override actor and reason permanently.
	MarkUnlocked(ctx context.Context, id string, companyID string, actorID string, reason string, at time.Time) error

	// MarkExported transitions LOCKED -> EXPORTED.
	MarkExported(ctx context.Context, id string, companyID string, actorID string, at time.Time) error
}
