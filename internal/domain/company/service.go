package company

import (
	"context"

	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
)

// Service manages the per-company configuration the time engine runs on:
// overtime thresholds and the pay period recurrence rule.
type Service interface {
	// GetOvertimeSettings returns the company's settings, falling back to
	// the documented defaults when none have been saved.
	GetOvertimeSettings(ctx context.Context, actor worker.Actor) (OvertimeSettingsResponse, error)

	// UpdateOvertimeSettings saves new thresholds (admin only).
	UpdateOvertimeSettings(ctx context.Context, actor worker.Actor, req OvertimeSettingsRequest) (OvertimeSettingsResponse, error)

	// GetSchedule returns the pay period recurrence rule, or ErrNoScheduleSet.
	GetSchedule(ctx context.Context, actor worker.Actor) (ScheduleResponse, error)

	// UpdateSchedule saves a new recurrence rule (admin only). The rule is
	// validated by computing the window it would produce for today.
	UpdateSchedule(ctx context.Context, actor worker.Actor, req ScheduleRequest) (ScheduleResponse, error)
}
