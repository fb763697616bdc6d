package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.Repository {
	return &workerRepository{db: db}
}

// GetByID implements worker.Repository.
func (r *workerRepository) GetByID(ctx context.Context, id string, companyID string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, email, role, worker_type,
			hourly_rate, reference_photo_url, is_active, created_at, updated_at
		FROM workers
		WHERE id = $1 AND company_id = $2
	`

	var w worker.Worker
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&w.ID, &w.CompanyID, &w.FullName, &w.Email, &w.Role, &w.WorkerType,
		&w.HourlyRate, &w.ReferencePhotoURL, &w.IsActive, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by ID: %w", err)
	}

	return w, nil
}

// ListAdmins implements worker.Repository.
func (r *workerRepository) ListAdmins(ctx context.Context, companyID string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, email, role, worker_type,
			hourly_rate, reference_photo_url, is_active, created_at, updated_at
		FROM workers
		WHERE company_id = $1 AND role IN ('admin', 'owner') AND is_active = true
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	var admins []worker.Worker
	for rows.Next() {
		var w worker.Worker
		err := rows.Scan(
			&w.ID, &w.CompanyID, &w.FullName, &w.Email, &w.Role, &w.WorkerType,
			&w.HourlyRate, &w.ReferencePhotoURL, &w.IsActive, &w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		admins = append(admins, w)
	}

	return admins, nil
}

// GetJobRate implements worker.Repository.
func (r *workerRepository) GetJobRate(ctx context.Context, workerID string, jobID string) (*worker.JobRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT worker_id, job_id, hourly_rate
		FROM worker_job_rates
		WHERE worker_id = $1 AND job_id = $2
	`

	var rate worker.JobRate
	err := q.QueryRow(ctx, query, workerID, jobID).Scan(&rate.WorkerID, &rate.JobID, &rate.HourlyRate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job rate: %w", err)
	}

	return &rate, nil
}

// SetReferencePhoto implements worker.Repository. The write is conditional on
// reference_photo_url still being null, so the first clock-in photo wins.
func (r *workerRepository) SetReferencePhoto(ctx context.Context, workerID string, companyID string, url string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET reference_photo_url = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND reference_photo_url IS NULL
	`

	if _, err := q.Exec(ctx, query, url, workerID, companyID); err != nil {
		return fmt.Errorf("failed to set reference photo: %w", err)
	}
	return nil
}
