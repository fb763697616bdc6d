package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/payperiod"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
)

type payPeriodRepository struct {
	db *database.DB
}

func NewPayPeriodRepository(db *database.DB) payperiod.Repository {
	return &payPeriodRepository{db: db}
}

const payPeriodColumns = `
	id, company_id, start_date, end_date, status, auto_generated,
	locked_by, locked_at, unlocked_by, unlocked_at, unlock_reason,
	exported_by, exported_at, created_at, updated_at`

func scanPayPeriod(row pgx.Row) (payperiod.PayPeriod, error) {
	var p payperiod.PayPeriod
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.Status, &p.AutoGenerated,
		&p.LockedBy, &p.LockedAt, &p.UnlockedBy, &p.UnlockedAt, &p.UnlockReason,
		&p.ExportedBy, &p.ExportedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements payperiod.Repository. The insert only lands when no
// existing period for the company intersects the new window; a concurrent
// duplicate loses the race and gets ErrOverlappingPeriod.
func (r *payPeriodRepository) Create(ctx context.Context, period payperiod.PayPeriod) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_periods (company_id, start_date, end_date, status, auto_generated)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (
			SELECT 1 FROM pay_periods
			WHERE company_id = $1 AND start_date <= $3 AND end_date >= $2
		)
		RETURNING ` + payPeriodColumns

	created, err := scanPayPeriod(q.QueryRow(ctx, query,
		period.CompanyID, period.StartDate, period.EndDate, period.Status, period.AutoGenerated,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payperiod.PayPeriod{}, payperiod.ErrOverlappingPeriod
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to create pay period: %w", err)
	}

	return created, nil
}

// GetByID implements payperiod.Repository.
func (r *payPeriodRepository) GetByID(ctx context.Context, id string, companyID string) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payPeriodColumns + `
		FROM pay_periods
		WHERE id = $1 AND company_id = $2`

	p, err := scanPayPeriod(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payperiod.PayPeriod{}, payperiod.ErrPeriodNotFound
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to get pay period by ID: %w", err)
	}

	return p, nil
}

// GetCovering implements payperiod.Repository.
func (r *payPeriodRepository) GetCovering(ctx context.Context, companyID string, at time.Time) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payPeriodColumns + `
		FROM pay_periods
		WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2
		LIMIT 1`

	p, err := scanPayPeriod(q.QueryRow(ctx, query, companyID, at))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payperiod.PayPeriod{}, payperiod.ErrPeriodNotFound
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to get covering pay period: %w", err)
	}

	return p, nil
}

// Overlaps implements payperiod.Repository.
func (r *payPeriodRepository) Overlaps(ctx context.Context, companyID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM pay_periods
			WHERE company_id = $1 AND start_date <= $3 AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pay period overlap: %w", err)
	}
	return exists, nil
}

// List implements payperiod.Repository.
func (r *payPeriodRepository) List(ctx context.Context, companyID string, page, limit int) ([]payperiod.PayPeriod, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM pay_periods WHERE company_id = $1`, companyID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pay periods: %w", err)
	}

	if limit == 0 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `SELECT ` + payPeriodColumns + `
		FROM pay_periods
		WHERE company_id = $1
		ORDER BY start_date DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query pay periods: %w", err)
	}
	defer rows.Close()

	var periods []payperiod.PayPeriod
	for rows.Next() {
		p, err := scanPayPeriod(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, total, nil
}

// MarkLocked implements payperiod.Repository. The status guard in the WHERE
// clause makes the transition atomic; a concurrent lock loses the race.
func (r *payPeriodRepository) MarkLocked(ctx context.Context, id string, companyID string, actorID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_periods
		SET status = 'LOCKED', locked_by = $1, locked_at = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4 AND status = 'OPEN'
	`

	tag, err := q.Exec(ctx, query, actorID, at, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to lock pay period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payperiod.ErrStatusConflict
	}
	return nil
}

// MarkUnlocked implements payperiod.Repository. The unlock audit fields are
// overwritten, not cleared, on a later re-lock; the reason stays on record.
func (r *payPeriodRepository) MarkUnlocked(ctx context.Context, id string, companyID string, actorID string, reason string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_periods
		SET status = 'OPEN', unlocked_by = $1, unlocked_at = $2, unlock_reason = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5 AND status IN ('LOCKED', 'EXPORTED')
	`

	tag, err := q.Exec(ctx, query, actorID, at, reason, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to unlock pay period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payperiod.ErrStatusConflict
	}
	return nil
}

// MarkExported implements payperiod.Repository.
func (r *payPeriodRepository) MarkExported(ctx context.Context, id string, companyID string, actorID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_periods
		SET status = 'EXPORTED', exported_by = $1, exported_at = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4 AND status = 'LOCKED'
	`

	tag, err := q.Exec(ctx, query, actorID, at, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to mark pay period exported: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payperiod.ErrStatusConflict
	}
	return nil
}
