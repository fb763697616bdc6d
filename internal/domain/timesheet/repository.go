package timesheet

import "context"

// Repository defines data access for timesheets.
type Repository interface {
	// Create inserts a new draft timesheet.
	Create(ctx context.Context, ts Timesheet) (Timesheet, error)

	// GetByID retrieves a timesheet with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Timesheet, error)

	// Update writes name, period bounds, totals and status fields.
	Update(ctx context.Context, ts Timesheet) error

	// UpdateStatus transitions between lifecycle states only when the row
	// still holds the expected status. Returns ErrTimesheetNotFound when the
	// guard fails.
	UpdateStatus(ctx context.Context, ts Timesheet, expected Status) error

	// Delete removes a timesheet row.
	Delete(ctx context.Context, id string, companyID string) error

	// ListMine retrieves one worker's timesheets.
	ListMine(ctx context.Context, workerID string, companyID string, page, limit int) ([]Timesheet, int64, error)

	// List retrieves a company's timesheets, optionally filtered by status.
	List(ctx context.Context, companyID string, status *Status, page, limit int) ([]Timesheet, int64, error)
}
