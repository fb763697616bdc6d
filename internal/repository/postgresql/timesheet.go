package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timesheet"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

// Create implements timesheet.Repository.
func (r *timesheetRepository) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (worker_id, company_id, name, period_start, period_end,
			total_minutes, break_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, worker_id, company_id, name, period_start, period_end,
			total_minutes, break_minutes, status, submitted_at,
			reviewed_by, reviewed_at, review_notes, created_at, updated_at
	`

	var created timesheet.Timesheet
	err := q.QueryRow(ctx, query,
		ts.WorkerID, ts.CompanyID, ts.Name, ts.PeriodStart, ts.PeriodEnd,
		ts.TotalMinutes, ts.BreakMinutes, ts.Status,
	).Scan(
		&created.ID, &created.WorkerID, &created.CompanyID, &created.Name,
		&created.PeriodStart, &created.PeriodEnd,
		&created.TotalMinutes, &created.BreakMinutes, &created.Status, &created.SubmittedAt,
		&created.ReviewedBy, &created.ReviewedAt, &created.ReviewNotes,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return created, nil
}

// GetByID implements timesheet.Repository.
func (r *timesheetRepository) GetByID(ctx context.Context, id string, companyID string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			t.id, t.worker_id, t.company_id, t.name, t.period_start, t.period_end,
			t.total_minutes, t.break_minutes, t.status, t.submitted_at,
			t.reviewed_by, t.reviewed_at, t.review_notes, t.created_at, t.updated_at,
			w.full_name AS worker_name,
			(SELECT COUNT(*) FROM time_entries e WHERE e.timesheet_id = t.id) AS entry_count
		FROM timesheets t
		LEFT JOIN workers w ON w.id = t.worker_id
		WHERE t.id = $1 AND t.company_id = $2
	`

	var ts timesheet.Timesheet
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&ts.ID, &ts.WorkerID, &ts.CompanyID, &ts.Name, &ts.PeriodStart, &ts.PeriodEnd,
		&ts.TotalMinutes, &ts.BreakMinutes, &ts.Status, &ts.SubmittedAt,
		&ts.ReviewedBy, &ts.ReviewedAt, &ts.ReviewNotes, &ts.CreatedAt, &ts.UpdatedAt,
		&ts.WorkerName, &ts.EntryCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet by ID: %w", err)
	}

	return ts, nil
}

// Update implements timesheet.Repository.
func (r *timesheetRepository) Update(ctx context.Context, ts timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET name = $1, period_start = $2, period_end = $3,
			total_minutes = $4, break_minutes = $5, status = $6, submitted_at = $7,
			reviewed_by = $8, reviewed_at = $9, review_notes = $10, updated_at = NOW()
		WHERE id = $11 AND company_id = $12
	`

	tag, err := q.Exec(ctx, query,
		ts.Name, ts.PeriodStart, ts.PeriodEnd,
		ts.TotalMinutes, ts.BreakMinutes, ts.Status, ts.SubmittedAt,
		ts.ReviewedBy, ts.ReviewedAt, ts.ReviewNotes,
		ts.ID, ts.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}

// UpdateStatus implements timesheet.Repository. The expected-status guard
// stops two concurrent submits or reviews from both landing.
func (r *timesheetRepository) UpdateStatus(ctx context.Context, ts timesheet.Timesheet, expected timesheet.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET status = $1, submitted_at = $2,
			reviewed_by = $3, reviewed_at = $4, review_notes = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7 AND status = $8
	`

	tag, err := q.Exec(ctx, query,
		ts.Status, ts.SubmittedAt,
		ts.ReviewedBy, ts.ReviewedAt, ts.ReviewNotes,
		ts.ID, ts.CompanyID, expected,
	)
	if err != nil {
		return fmt.Errorf("failed to update timesheet status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}

// Delete implements timesheet.Repository.
func (r *timesheetRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM timesheets WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}

func (r *timesheetRepository) list(ctx context.Context, baseWhere string, args []interface{}, page, limit int) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := "SELECT COUNT(*) FROM timesheets t WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	if limit == 0 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT
			t.id, t.worker_id, t.company_id, t.name, t.period_start, t.period_end,
			t.total_minutes, t.break_minutes, t.status, t.submitted_at,
			t.reviewed_by, t.reviewed_at, t.review_notes, t.created_at, t.updated_at,
			w.full_name AS worker_name,
			(SELECT COUNT(*) FROM time_entries e WHERE e.timesheet_id = t.id) AS entry_count
		FROM timesheets t
		LEFT JOIN workers w ON w.id = t.worker_id
		WHERE %s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.Timesheet
	for rows.Next() {
		var ts timesheet.Timesheet
		err := rows.Scan(
			&ts.ID, &ts.WorkerID, &ts.CompanyID, &ts.Name, &ts.PeriodStart, &ts.PeriodEnd,
			&ts.TotalMinutes, &ts.BreakMinutes, &ts.Status, &ts.SubmittedAt,
			&ts.ReviewedBy, &ts.ReviewedAt, &ts.ReviewNotes, &ts.CreatedAt, &ts.UpdatedAt,
			&ts.WorkerName, &ts.EntryCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		sheets = append(sheets, ts)
	}

	return sheets, total, nil
}

// ListMine implements timesheet.Repository.
func (r *timesheetRepository) ListMine(ctx context.Context, workerID string, companyID string, page, limit int) ([]timesheet.Timesheet, int64, error) {
	baseWhere := "t.worker_id = $1 AND t.company_id = $2"
	args := []interface{}{workerID, companyID}
	return r.list(ctx, baseWhere, args, page, limit)
}

// List implements timesheet.Repository.
func (r *timesheetRepository) List(ctx context.Context, companyID string, status *timesheet.Status, page, limit int) ([]timesheet.Timesheet, int64, error) {
	baseWhere := "t.company_id = $1"
	args := []interface{}{companyID}

	if status != nil {
		baseWhere += " AND t.status = $2"
		args = append(args, *status)
	}

	return r.list(ctx, baseWhere, args, page, limit)
}
