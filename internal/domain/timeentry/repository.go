package timeentry

import (
	"context"
	"time"
)

// Repository defines data access for time entries. All methods include
// companyID or workerID scoping to prevent cross-company access.
//
// CreateActive, the period cascades and the timesheet link operations are
// conditional writes: they only touch rows still in the expected state, so
// concurrent requests cannot double-apply a transition.
type Repository interface {
	// CreateActive inserts a new open session only if the worker has no other
	// open session. Returns ErrAlreadyClockedIn when the guard fails.
	CreateActive(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// Create inserts a completed entry (manual/back-dated creation).
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// GetOpenSession returns the worker's open session, or ErrNotClockedIn.
	GetOpenSession(ctx context.Context, workerID string) (TimeEntry, error)

	// GetByID retrieves an entry with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (TimeEntry, error)

	// Update writes an unlocked entry. Returns ErrEntryLocked when the row is
	// locked, ErrEntryNotFound when it does not exist.
	Update(ctx context.Context, entry TimeEntry) error

	// Delete removes an entry; used to roll back a tentative clock-in after an
	// identity mismatch.
	Delete(ctx context.Context, id string, companyID string) error

	// WeeklyMinutesBefore sums worked minutes of the worker's completed
	// entries with clock-in in [weekStart, before).
	WeeklyMinutesBefore(ctx context.Context, workerID string, weekStart, before time.Time) (int, error)

	// List retrieves entries with filters and pagination (admin view).
	List(ctx context.Context, filter Filter, companyID string) ([]TimeEntry, int64, error)

	// ListMine retrieves a single worker's entries.
	ListMine(ctx context.Context, workerID string, filter Filter, companyID string) ([]TimeEntry, int64, error)

	// ListInRange returns completed entries whose clock-in falls inside
	// [start, end] for a company.
	ListInRange(ctx context.Context, companyID string, start, end time.Time) ([]TimeEntry, error)

	// CountPendingInRange counts completed entries still PENDING inside a
	// window; a pay period cannot lock while this is nonzero.
	CountPendingInRange(ctx context.Context, companyID string, start, end time.Time) (int, error)

	// LockByPeriod stamps every completed entry in the window with the period
	// id and sets the lock flag. Returns the number of rows locked.
	LockByPeriod(ctx context.Context, companyID string, periodID string, start, end time.Time, lockedAt time.Time) (int64, error)

	// UnlockByPeriod clears the lock flag on the period's entries, keeping the
	// period back-reference for the audit trail.
	UnlockByPeriod(ctx context.Context, periodID string) (int64, error)

	// ListEligible returns the worker's completed, unarchived, unlocked
	// entries not yet linked to any timesheet, optionally restricted to an
	// explicit id set or a clock-in date range.
	ListEligible(ctx context.Context, workerID string, companyID string, ids []string, from, to *time.Time) ([]TimeEntry, error)

	// LinkTimesheet links the given entries to a timesheet, only where
	// timesheet_id is still null. Returns the number of rows linked; callers
	// run this in a transaction and roll back when the count is short.
	LinkTimesheet(ctx context.Context, timesheetID string, workerID string, entryIDs []string) (int64, error)

	// UnlinkTimesheet clears the timesheet reference from all linked entries.
	UnlinkTimesheet(ctx context.Context, timesheetID string) (int64, error)

	// ApproveByTimesheet cascades approval to every entry on a timesheet.
	ApproveByTimesheet(ctx context.Context, timesheetID string, reviewerID string, at time.Time) (int64, error)

	// ListByTimesheet returns the entries linked to a timesheet.
	ListByTimesheet(ctx context.Context, timesheetID string) ([]TimeEntry, error)

	// GetStaleOpenSessions returns open sessions older than the given number
	// of hours; the cron job flags them.
	GetStaleOpenSessions(ctx context.Context, olderThanHours int) ([]TimeEntry, error)
}
