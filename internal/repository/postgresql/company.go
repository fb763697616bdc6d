package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.Repository {
	return &companyRepository{db: db}
}

// GetByID implements company.Repository.
func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, username, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, id).
		Scan(&found.ID, &found.Name, &found.Username, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by ID: %w", err)
	}

	return found, nil
}

// List implements company.Repository.
func (r *companyRepository) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, username, created_at, updated_at
		FROM companies
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		var c company.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Username, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	return companies, nil
}

// GetOvertimeSettings implements company.Repository.
func (r *companyRepository) GetOvertimeSettings(ctx context.Context, companyID string) (company.OvertimeSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, version, daily_ot_threshold_mins, daily_dt_threshold_mins,
			weekly_ot_threshold_mins, ot_multiplier, dt_multiplier, updated_at
		FROM overtime_settings
		WHERE company_id = $1
	`

	var settings company.OvertimeSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&settings.CompanyID, &settings.Version,
		&settings.DailyOtThresholdMins, &settings.DailyDtThresholdMins, &settings.WeeklyOtThresholdMins,
		&settings.OtMultiplier, &settings.DtMultiplier, &settings.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.OvertimeSettings{}, company.ErrSettingsNotFound
		}
		return company.OvertimeSettings{}, fmt.Errorf("failed to get overtime settings: %w", err)
	}

	return settings, nil
}

// UpsertOvertimeSettings implements company.Repository.
func (r *companyRepository) UpsertOvertimeSettings(ctx context.Context, settings company.OvertimeSettings) (company.OvertimeSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_settings (
			company_id, version, daily_ot_threshold_mins, daily_dt_threshold_mins,
			weekly_ot_threshold_mins, ot_multiplier, dt_multiplier, updated_at
		)
		VALUES ($1, 1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (company_id) DO UPDATE SET
			version = overtime_settings.version + 1,
			daily_ot_threshold_mins = EXCLUDED.daily_ot_threshold_mins,
			daily_dt_threshold_mins = EXCLUDED.daily_dt_threshold_mins,
			weekly_ot_threshold_mins = EXCLUDED.weekly_ot_threshold_mins,
			ot_multiplier = EXCLUDED.ot_multiplier,
			dt_multiplier = EXCLUDED.dt_multiplier,
			updated_at = NOW()
		RETURNING company_id, version, daily_ot_threshold_mins, daily_dt_threshold_mins,
			weekly_ot_threshold_mins, ot_multiplier, dt_multiplier, updated_at
	`

	var saved company.OvertimeSettings
	err := q.QueryRow(ctx, query,
		settings.CompanyID,
		settings.DailyOtThresholdMins, settings.DailyDtThresholdMins, settings.WeeklyOtThresholdMins,
		settings.OtMultiplier, settings.DtMultiplier,
	).Scan(
		&saved.CompanyID, &saved.Version,
		&saved.DailyOtThresholdMins, &saved.DailyDtThresholdMins, &saved.WeeklyOtThresholdMins,
		&saved.OtMultiplier, &saved.DtMultiplier, &saved.UpdatedAt,
	)
	if err != nil {
		return company.OvertimeSettings{}, fmt.Errorf("failed to upsert overtime settings: %w", err)
	}

	return saved, nil
}

// GetPayPeriodSchedule implements company.Repository.
func (r *companyRepository) GetPayPeriodSchedule(ctx context.Context, companyID string) (company.PayPeriodSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, schedule_type, start_day, anchor_date, length_days, updated_at
		FROM pay_period_schedules
		WHERE company_id = $1
	`

	var schedule company.PayPeriodSchedule
	err := q.QueryRow(ctx, query, companyID).Scan(
		&schedule.CompanyID, &schedule.Type, &schedule.StartDay,
		&schedule.AnchorDate, &schedule.LengthDays, &schedule.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.PayPeriodSchedule{}, company.ErrNoScheduleSet
		}
		return company.PayPeriodSchedule{}, fmt.Errorf("failed to get pay period schedule: %w", err)
	}

	return schedule, nil
}

// UpsertPayPeriodSchedule implements company.Repository.
func (r *companyRepository) UpsertPayPeriodSchedule(ctx context.Context, schedule company.PayPeriodSchedule) (company.PayPeriodSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_period_schedules (company_id, schedule_type, start_day, anchor_date, length_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (company_id) DO UPDATE SET
			schedule_type = EXCLUDED.schedule_type,
			start_day = EXCLUDED.start_day,
			anchor_date = EXCLUDED.anchor_date,
			length_days = EXCLUDED.length_days,
			updated_at = NOW()
		RETURNING company_id, schedule_type, start_day, anchor_date, length_days, updated_at
	`

	var saved company.PayPeriodSchedule
	err := q.QueryRow(ctx, query,
		schedule.CompanyID, schedule.Type, schedule.StartDay, schedule.AnchorDate, schedule.LengthDays,
	).Scan(
		&saved.CompanyID, &saved.Type, &saved.StartDay,
		&saved.AnchorDate, &saved.LengthDays, &saved.UpdatedAt,
	)
	if err != nil {
		return company.PayPeriodSchedule{}, fmt.Errorf("failed to upsert pay period schedule: %w", err)
	}

	return saved, nil
}
