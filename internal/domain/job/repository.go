package job

import "context"

type Repository interface {
	// GetByID retrieves a job site with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Job, error)
}
