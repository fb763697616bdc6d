package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.Repository {
	return &timeEntryRepository{db: db}
}

const timeEntryColumns = `
	id, worker_id, company_id, job_id, entry_type,
	clock_in, clock_out, clock_in_latitude, clock_in_longitude,
	clock_out_latitude, clock_out_longitude, clock_in_photo_url, clock_out_photo_url,
	break_minutes, break_started_at, on_break,
	approval_status, flags, approved_by, approved_at, rejection_reason,
	hourly_rate, regular_minutes, overtime_minutes, doubletime_minutes,
	regular_pay, overtime_pay, doubletime_pay, total_pay,
	is_locked, locked_at, pay_period_id, timesheet_id,
	worker_type, is_archived, created_at, updated_at`

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry
	err := row.Scan(
		&e.ID, &e.WorkerID, &e.CompanyID, &e.JobID, &e.EntryType,
		&e.ClockIn, &e.ClockOut, &e.ClockInLatitude, &e.ClockInLongitude,
		&e.ClockOutLatitude, &e.ClockOutLongitude, &e.ClockInPhotoURL, &e.ClockOutPhotoURL,
		&e.BreakMinutes, &e.BreakStartedAt, &e.OnBreak,
		&e.ApprovalStatus, &e.Flags, &e.ApprovedBy, &e.ApprovedAt, &e.RejectionReason,
		&e.HourlyRate, &e.RegularMinutes, &e.OvertimeMinutes, &e.DoubletimeMinutes,
		&e.RegularPay, &e.OvertimePay, &e.DoubletimePay, &e.TotalPay,
		&e.IsLocked, &e.LockedAt, &e.PayPeriodID, &e.TimesheetID,
		&e.WorkerType, &e.IsArchived, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// CreateActive implements timeentry.Repository. The insert only lands when the
// worker has no other open session; a concurrent double clock-in loses the
// race and gets ErrAlreadyClockedIn.
func (r *timeEntryRepository) CreateActive(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			worker_id, company_id, job_id, entry_type,
			clock_in, clock_in_latitude, clock_in_longitude, clock_in_photo_url,
			approval_status, flags, hourly_rate, worker_type
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		WHERE NOT EXISTS (
			SELECT 1 FROM time_entries
			WHERE worker_id = $1 AND clock_out IS NULL AND is_archived = false
		)
		RETURNING ` + timeEntryColumns

	created, err := scanTimeEntry(q.QueryRow(ctx, query,
		entry.WorkerID, entry.CompanyID, entry.JobID, entry.EntryType,
		entry.ClockIn, entry.ClockInLatitude, entry.ClockInLongitude, entry.ClockInPhotoURL,
		entry.ApprovalStatus, entry.Flags, entry.HourlyRate, entry.WorkerType,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeentry.TimeEntry{}, timeentry.ErrAlreadyClockedIn
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create active session: %w", err)
	}

	return created, nil
}

// Create implements timeentry.Repository.
func (r *timeEntryRepository) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			worker_id, company_id, job_id, entry_type,
			clock_in, clock_out, break_minutes,
			approval_status, flags, approved_by, approved_at,
			hourly_rate, regular_minutes, overtime_minutes, doubletime_minutes,
			regular_pay, overtime_pay, doubletime_pay, total_pay,
			worker_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + timeEntryColumns

	created, err := scanTimeEntry(q.QueryRow(ctx, query,
		entry.WorkerID, entry.CompanyID, entry.JobID, entry.EntryType,
		entry.ClockIn, entry.ClockOut, entry.BreakMinutes,
		entry.ApprovalStatus, entry.Flags, entry.ApprovedBy, entry.ApprovedAt,
		entry.HourlyRate, entry.RegularMinutes, entry.OvertimeMinutes, entry.DoubletimeMinutes,
		entry.RegularPay, entry.OvertimePay, entry.DoubletimePay, entry.TotalPay,
		entry.WorkerType,
	))
	if err != nil {
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return created, nil
}

// GetOpenSession implements timeentry.Repository.
func (r *timeEntryRepository) GetOpenSession(ctx context.Context, workerID string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE worker_id = $1 AND clock_out IS NULL AND is_archived = false
		LIMIT 1
	`

	e, err := scanTimeEntry(q.QueryRow(ctx, query, workerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeentry.TimeEntry{}, timeentry.ErrNotClockedIn
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return e, nil
}

// GetByID implements timeentry.Repository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string, companyID string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE id = $1 AND company_id = $2 AND is_archived = false
	`

	e, err := scanTimeEntry(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry by ID: %w", err)
	}

	return e, nil
}

// Update implements timeentry.Repository. Locked rows are never written; the
// lock guard lives in the WHERE clause so a concurrent period lock cannot be
// overwritten.
func (r *timeEntryRepository) Update(ctx context.Context, entry timeentry.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries SET
			clock_out = $1, clock_out_latitude = $2, clock_out_longitude = $3, clock_out_photo_url = $4,
			break_minutes = $5, break_started_at = $6, on_break = $7,
			approval_status = $8, flags = $9, approved_by = $10, approved_at = $11, rejection_reason = $12,
			hourly_rate = $13, regular_minutes = $14, overtime_minutes = $15, doubletime_minutes = $16,
			regular_pay = $17, overtime_pay = $18, doubletime_pay = $19, total_pay = $20,
			updated_at = NOW()
		WHERE id = $21 AND company_id = $22 AND is_locked = false
	`

	tag, err := q.Exec(ctx, query,
		entry.ClockOut, entry.ClockOutLatitude, entry.ClockOutLongitude, entry.ClockOutPhotoURL,
		entry.BreakMinutes, entry.BreakStartedAt, entry.OnBreak,
		entry.ApprovalStatus, entry.Flags, entry.ApprovedBy, entry.ApprovedAt, entry.RejectionReason,
		entry.HourlyRate, entry.RegularMinutes, entry.OvertimeMinutes, entry.DoubletimeMinutes,
		entry.RegularPay, entry.OvertimePay, entry.DoubletimePay, entry.TotalPay,
		entry.ID, entry.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a locked row from a missing one for the error message.
		var locked bool
		checkErr := q.QueryRow(ctx,
			`SELECT is_locked FROM time_entries WHERE id = $1 AND company_id = $2`,
			entry.ID, entry.CompanyID,
		).Scan(&locked)
		if checkErr == pgx.ErrNoRows {
			return timeentry.ErrEntryNotFound
		}
		if checkErr != nil {
			return fmt.Errorf("failed to check time entry lock: %w", checkErr)
		}
		if locked {
			return timeentry.ErrEntryLocked
		}
		return timeentry.ErrEntryNotFound
	}

	return nil
}

// Delete implements timeentry.Repository.
func (r *timeEntryRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM time_entries WHERE id = $1 AND company_id = $2 AND is_locked = false`,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotFound
	}
	return nil
}

// WeeklyMinutesBefore implements timeentry.Repository.
func (r *timeEntryRepository) WeeklyMinutesBefore(ctx context.Context, workerID string, weekStart, before time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(
			GREATEST(FLOOR(EXTRACT(EPOCH FROM (clock_out - clock_in)) / 60) - break_minutes, 0)
		), 0)::int
		FROM time_entries
		WHERE worker_id = $1
			AND clock_out IS NOT NULL
			AND is_archived = false
			AND clock_in >= $2 AND clock_in < $3
	`

	var minutes int
	if err := q.QueryRow(ctx, query, workerID, weekStart, before).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("failed to sum weekly minutes: %w", err)
	}
	return minutes, nil
}

func buildEntryFilter(baseWhere string, args []interface{}, filter timeentry.Filter) (string, []interface{}) {
	argIdx := len(args) + 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		baseWhere += fmt.Sprintf(" AND t.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.JobID != nil && *filter.JobID != "" {
		baseWhere += fmt.Sprintf(" AND t.job_id = $%d", argIdx)
		args = append(args, *filter.JobID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.approval_status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		baseWhere += fmt.Sprintf(" AND t.clock_in >= $%d::date", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		baseWhere += fmt.Sprintf(" AND t.clock_in < $%d::date + INTERVAL '1 day'", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.OnlyOpen {
		baseWhere += " AND t.clock_out IS NULL"
	}

	return baseWhere, args
}

func (r *timeEntryRepository) listEntries(ctx context.Context, baseWhere string, args []interface{}, page, limit int) ([]timeentry.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := "SELECT COUNT(*) FROM time_entries t WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
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
			t.id, t.worker_id, t.company_id, t.job_id, t.entry_type,
			t.clock_in, t.clock_out, t.clock_in_latitude, t.clock_in_longitude,
			t.clock_out_latitude, t.clock_out_longitude, t.clock_in_photo_url, t.clock_out_photo_url,
			t.break_minutes, t.break_started_at, t.on_break,
			t.approval_status, t.flags, t.approved_by, t.approved_at, t.rejection_reason,
			t.hourly_rate, t.regular_minutes, t.overtime_minutes, t.doubletime_minutes,
			t.regular_pay, t.overtime_pay, t.doubletime_pay, t.total_pay,
			t.is_locked, t.locked_at, t.pay_period_id, t.timesheet_id,
			t.worker_type, t.is_archived, t.created_at, t.updated_at,
			w.full_name AS worker_name,
			j.name AS job_name
		FROM time_entries t
		LEFT JOIN workers w ON w.id = t.worker_id
		LEFT JOIN jobs j ON j.id = t.job_id
		WHERE %s
		ORDER BY t.clock_in DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		var e timeentry.TimeEntry
		err := rows.Scan(
			&e.ID, &e.WorkerID, &e.CompanyID, &e.JobID, &e.EntryType,
			&e.ClockIn, &e.ClockOut, &e.ClockInLatitude, &e.ClockInLongitude,
			&e.ClockOutLatitude, &e.ClockOutLongitude, &e.ClockInPhotoURL, &e.ClockOutPhotoURL,
			&e.BreakMinutes, &e.BreakStartedAt, &e.OnBreak,
			&e.ApprovalStatus, &e.Flags, &e.ApprovedBy, &e.ApprovedAt, &e.RejectionReason,
			&e.HourlyRate, &e.RegularMinutes, &e.OvertimeMinutes, &e.DoubletimeMinutes,
			&e.RegularPay, &e.OvertimePay, &e.DoubletimePay, &e.TotalPay,
			&e.IsLocked, &e.LockedAt, &e.PayPeriodID, &e.TimesheetID,
			&e.WorkerType, &e.IsArchived, &e.CreatedAt, &e.UpdatedAt,
			&e.WorkerName, &e.JobName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, total, nil
}

// List implements timeentry.Repository.
func (r *timeEntryRepository) List(ctx context.Context, filter timeentry.Filter, companyID string) ([]timeentry.TimeEntry, int64, error) {
	baseWhere := "t.company_id = $1 AND t.is_archived = false"
	args := []interface{}{companyID}
	baseWhere, args = buildEntryFilter(baseWhere, args, filter)
	return r.listEntries(ctx, baseWhere, args, filter.Page, filter.Limit)
}

// ListMine implements timeentry.Repository.
func (r *timeEntryRepository) ListMine(ctx context.Context, workerID string, filter timeentry.Filter, companyID string) ([]timeentry.TimeEntry, int64, error) {
	baseWhere := "t.worker_id = $1 AND t.company_id = $2 AND t.is_archived = false"
	args := []interface{}{workerID, companyID}
	filter.WorkerID = nil
	baseWhere, args = buildEntryFilter(baseWhere, args, filter)
	return r.listEntries(ctx, baseWhere, args, filter.Page, filter.Limit)
}

// ListInRange implements timeentry.Repository.
func (r *timeEntryRepository) ListInRange(ctx context.Context, companyID string, start, end time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			t.id, t.worker_id, t.company_id, t.job_id, t.entry_type,
			t.clock_in, t.clock_out, t.clock_in_latitude, t.clock_in_longitude,
			t.clock_out_latitude, t.clock_out_longitude, t.clock_in_photo_url, t.clock_out_photo_url,
			t.break_minutes, t.break_started_at, t.on_break,
			t.approval_status, t.flags, t.approved_by, t.approved_at, t.rejection_reason,
			t.hourly_rate, t.regular_minutes, t.overtime_minutes, t.doubletime_minutes,
			t.regular_pay, t.overtime_pay, t.doubletime_pay, t.total_pay,
			t.is_locked, t.locked_at, t.pay_period_id, t.timesheet_id,
			t.worker_type, t.is_archived, t.created_at, t.updated_at,
			w.full_name AS worker_name,
			j.name AS job_name
		FROM time_entries t
		LEFT JOIN workers w ON w.id = t.worker_id
		LEFT JOIN jobs j ON j.id = t.job_id
		WHERE t.company_id = $1 AND t.is_archived = false
			AND t.clock_out IS NOT NULL
			AND t.clock_in >= $2 AND t.clock_in <= $3
		ORDER BY t.worker_id, t.clock_in
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries in range: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		var e timeentry.TimeEntry
		err := rows.Scan(
			&e.ID, &e.WorkerID, &e.CompanyID, &e.JobID, &e.EntryType,
			&e.ClockIn, &e.ClockOut, &e.ClockInLatitude, &e.ClockInLongitude,
			&e.ClockOutLatitude, &e.ClockOutLongitude, &e.ClockInPhotoURL, &e.ClockOutPhotoURL,
			&e.BreakMinutes, &e.BreakStartedAt, &e.OnBreak,
			&e.ApprovalStatus, &e.Flags, &e.ApprovedBy, &e.ApprovedAt, &e.RejectionReason,
			&e.HourlyRate, &e.RegularMinutes, &e.OvertimeMinutes, &e.DoubletimeMinutes,
			&e.RegularPay, &e.OvertimePay, &e.DoubletimePay, &e.TotalPay,
			&e.IsLocked, &e.LockedAt, &e.PayPeriodID, &e.TimesheetID,
			&e.WorkerType, &e.IsArchived, &e.CreatedAt, &e.UpdatedAt,
			&e.WorkerName, &e.JobName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// CountPendingInRange implements timeentry.Repository.
func (r *timeEntryRepository) CountPendingInRange(ctx context.Context, companyID string, start, end time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM time_entries
		WHERE company_id = $1 AND is_archived = false
			AND clock_out IS NOT NULL
			AND approval_status = 'PENDING'
			AND clock_in >= $2 AND clock_in <= $3
	`

	var count int
	if err := q.QueryRow(ctx, query, companyID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending entries: %w", err)
	}
	return count, nil
}

// LockByPeriod implements timeentry.Repository.
func (r *timeEntryRepository) LockByPeriod(ctx context.Context, companyID string, periodID string, start, end time.Time, lockedAt time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET is_locked = true, locked_at = $1, pay_period_id = $2, updated_at = NOW()
		WHERE company_id = $3 AND is_archived = false
			AND clock_out IS NOT NULL
			AND is_locked = false
			AND clock_in >= $4 AND clock_in <= $5
	`

	tag, err := q.Exec(ctx, query, lockedAt, periodID, companyID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to lock entries for period: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UnlockByPeriod implements timeentry.Repository. The pay_period_id reference
// stays in place so the audit trail keeps pointing at the period.
func (r *timeEntryRepository) UnlockByPeriod(ctx context.Context, periodID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET is_locked = false, locked_at = NULL, updated_at = NOW()
		WHERE pay_period_id = $1 AND is_locked = true
	`

	tag, err := q.Exec(ctx, query, periodID)
	if err != nil {
		return 0, fmt.Errorf("failed to unlock entries for period: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListEligible implements timeentry.Repository.
func (r *timeEntryRepository) ListEligible(ctx context.Context, workerID string, companyID string, ids []string, from, to *time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := `worker_id = $1 AND company_id = $2 AND is_archived = false
		AND clock_out IS NOT NULL AND is_locked = false AND timesheet_id IS NULL`
	args := []interface{}{workerID, companyID}
	argIdx := 3

	if len(ids) > 0 {
		baseWhere += fmt.Sprintf(" AND id = ANY($%d)", argIdx)
		args = append(args, ids)
		argIdx++
	}
	if from != nil {
		baseWhere += fmt.Sprintf(" AND clock_in >= $%d", argIdx)
		args = append(args, *from)
		argIdx++
	}
	if to != nil {
		baseWhere += fmt.Sprintf(" AND clock_in <= $%d", argIdx)
		args = append(args, *to)
		argIdx++
	}

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE ` + baseWhere + `
		ORDER BY clock_in`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query eligible entries: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// LinkTimesheet implements timeentry.Repository. Rows already claimed by
// another timesheet are skipped; callers compare the returned count against
// the requested set and roll back on a shortfall.
func (r *timeEntryRepository) LinkTimesheet(ctx context.Context, timesheetID string, workerID string, entryIDs []string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET timesheet_id = $1, updated_at = NOW()
		WHERE worker_id = $2 AND id = ANY($3)
			AND timesheet_id IS NULL
			AND clock_out IS NOT NULL
			AND is_locked = false
			AND is_archived = false
	`

	tag, err := q.Exec(ctx, query, timesheetID, workerID, entryIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to link entries to timesheet: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UnlinkTimesheet implements timeentry.Repository.
func (r *timeEntryRepository) UnlinkTimesheet(ctx context.Context, timesheetID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE time_entries SET timesheet_id = NULL, updated_at = NOW() WHERE timesheet_id = $1`,
		timesheetID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to unlink entries from timesheet: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ApproveByTimesheet implements timeentry.Repository.
func (r *timeEntryRepository) ApproveByTimesheet(ctx context.Context, timesheetID string, reviewerID string, at time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET approval_status = 'APPROVED', approved_by = $1, approved_at = $2,
			rejection_reason = NULL, updated_at = NOW()
		WHERE timesheet_id = $3 AND is_locked = false
	`

	tag, err := q.Exec(ctx, query, reviewerID, at, timesheetID)
	if err != nil {
		return 0, fmt.Errorf("failed to approve entries by timesheet: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByTimesheet implements timeentry.Repository.
func (r *timeEntryRepository) ListByTimesheet(ctx context.Context, timesheetID string) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE timesheet_id = $1
		ORDER BY clock_in`

	rows, err := q.Query(ctx, query, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by timesheet: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// GetStaleOpenSessions implements timeentry.Repository.
func (r *timeEntryRepository) GetStaleOpenSessions(ctx context.Context, olderThanHours int) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE clock_out IS NULL AND is_archived = false
			AND clock_in < NOW() - ($1 * INTERVAL '1 hour')
		ORDER BY clock_in`

	rows, err := q.Query(ctx, query, olderThanHours)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale open sessions: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
