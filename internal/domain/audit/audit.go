package audit

import (
	"context"
	"time"
)

// Actions recorded by the core workflows.
const (
	ActionClockIn         = "time_entry.clock_in"
	ActionClockOut        = "time_entry.clock_out"
	ActionManualEntry     = "time_entry.manual_create"
	ActionEntryApproved   = "time_entry.approved"
	ActionEntryRejected   = "time_entry.rejected"
	ActionPeriodLocked    = "pay_period.locked"
	ActionPeriodUnlocked  = "pay_period.unlocked"
	ActionPeriodExported  = "pay_period.exported"
	ActionSheetSubmitted  = "timesheet.submitted"
	ActionSheetWithdrawn  = "timesheet.withdrawn"
	ActionSheetReviewed   = "timesheet.reviewed"
	ActionSheetDeleted    = "timesheet.deleted"
	ActionSettingsUpdated = "company.overtime_settings_updated"
	ActionScheduleUpdated = "company.pay_period_schedule_updated"
)

// Event is one audit trail record. Details carries operation-specific
// context (geofence distance, confidence score, unlock reason, counts).
type Event struct {
	ID         string
	CompanyID  string
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	Details    map[string]interface{}
	CreatedAt  time.Time
}

// Recorder persists audit events. Callers treat failures as log-only; an
// audit write must never block the operation it describes.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}
