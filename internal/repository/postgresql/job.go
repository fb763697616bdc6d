package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/job"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
)

type jobRepository struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.Repository {
	return &jobRepository{db: db}
}

// GetByID implements job.Repository.
func (r *jobRepository) GetByID(ctx context.Context, id string, companyID string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, address, latitude, longitude, radius_meters,
			hourly_rate, is_archived, created_at, updated_at
		FROM jobs
		WHERE id = $1 AND company_id = $2
	`

	var j job.Job
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&j.ID, &j.CompanyID, &j.Name, &j.Address, &j.Latitude, &j.Longitude, &j.RadiusMeters,
		&j.HourlyRate, &j.IsArchived, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job by ID: %w", err)
	}

	return j, nil
}
