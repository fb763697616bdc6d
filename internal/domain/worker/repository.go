package worker

import "context"

// Repository defines data access for workers. All methods take companyID to
// prevent cross-company data access.
type Repository interface {
	// GetByID retrieves a worker with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Worker, error)

	// ListAdmins retrieves every admin- and owner-role worker in a company.
	ListAdmins(ctx context.Context, companyID string) ([]Worker, error)

	// GetJobRate returns the worker-specific override rate for a job, or nil
	// when no override exists.
	GetJobRate(ctx context.Context, workerID string, jobID string) (*JobRate, error)

	// SetReferencePhoto stores the worker's baseline photo URL. Only the first
	// write wins; a later call with a reference photo already set is a no-op.
	SetReferencePhoto(ctx context.Context, workerID string, companyID string, url string) error
}
