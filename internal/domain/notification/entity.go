package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeIdentityMismatch  NotificationType = "identity_mismatch"
	TypeClockIn           NotificationType = "clock_in"
	TypeClockOut          NotificationType = "clock_out"
	TypeTimesheetSubmitted NotificationType = "timesheet_submitted"
	TypeTimesheetReviewed NotificationType = "timesheet_reviewed"
	TypePeriodLocked      NotificationType = "pay_period_locked"
	TypePeriodUnlocked    NotificationType = "pay_period_unlocked"
	TypeStaleSession      NotificationType = "stale_session"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
