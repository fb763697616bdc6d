package payperiod

import "time"

// Status enum
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusLocked   Status = "LOCKED"
	StatusExported Status = "EXPORTED"
)

// PayPeriod is a company-scoped accounting window. Locking it cascades an
// immutability flag to every covered time entry; unlocking is owner-gated and
// leaves a permanent audit trail.
type PayPeriod struct {
	ID            string
	CompanyID     string
	StartDate     time.Time
	EndDate       time.Time
	Status        Status
	AutoGenerated bool

	LockedBy     *string
	LockedAt     *time.Time
	UnlockedBy   *string
	UnlockedAt   *time.Time
	UnlockReason *string
	ExportedBy   *string
	ExportedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
