package company

import "context"

type Repository interface {
	// GetByID retrieves a company by ID.
	GetByID(ctx context.Context, id string) (Company, error)

	// List retrieves every company; used by the cron jobs.
	List(ctx context.Context) ([]Company, error)

	// GetOvertimeSettings returns the company's overtime configuration, or
	// ErrSettingsNotFound when none has been saved.
	GetOvertimeSettings(ctx context.Context, companyID string) (OvertimeSettings, error)

	// UpsertOvertimeSettings saves the typed settings record, bumping Version.
	UpsertOvertimeSettings(ctx context.Context, settings OvertimeSettings) (OvertimeSettings, error)

	// GetPayPeriodSchedule returns the recurrence rule, or ErrNoScheduleSet.
	GetPayPeriodSchedule(ctx context.Context, companyID string) (PayPeriodSchedule, error)

	// UpsertPayPeriodSchedule saves the recurrence rule.
	UpsertPayPeriodSchedule(ctx context.Context, schedule PayPeriodSchedule) (PayPeriodSchedule, error)
}
