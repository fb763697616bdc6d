package timeentry

import (
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// EntryType distinguishes geofenced job work from travel time.
type EntryType string

const (
	TypeJobTime    EntryType = "JOB_TIME"
	TypeTravelTime EntryType = "TRAVEL_TIME"
)

// ApprovalStatus enum
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// Flag reasons recorded on an entry when an external step degraded instead of
// aborting the clock-in.
const (
	FlagPhotoUploadFailed     = "photo_upload_failed"
	FlagFaceVerifyUnavailable = "face_verification_unavailable"
)

// MaxSessionDuration caps the raw elapsed time of a single clock session.
const MaxSessionDuration = 24 * time.Hour

// TimeEntry is one worker's clock session: clock-in through clock-out with
// breaks, pay buckets computed at clock-out, and lock/link back-references
// assigned by the pay period and timesheet lifecycles.
type TimeEntry struct {
	ID        string
	WorkerID  string
	CompanyID string
	JobID     *string
	EntryType EntryType

	ClockIn           time.Time
	ClockOut          *time.Time
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	ClockInPhotoURL   *string
	ClockOutPhotoURL  *string

	BreakMinutes   int
	BreakStartedAt *time.Time
	OnBreak        bool

	ApprovalStatus  ApprovalStatus
	Flags           []string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	HourlyRate        decimal.Decimal
	RegularMinutes    int
	OvertimeMinutes   int
	DoubletimeMinutes int
	RegularPay        decimal.Decimal
	OvertimePay       decimal.Decimal
	DoubletimePay     decimal.Decimal
	TotalPay          decimal.Decimal

	IsLocked    bool
	LockedAt    *time.Time
	PayPeriodID *string
	TimesheetID *string

	WorkerType worker.Type
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields for list/report views
	WorkerName *string
	JobName    *string
}

// IsComplete reports whether the session has been clocked out.
func (e TimeEntry) IsComplete() bool {
	return e.ClockOut != nil
}

// WorkedMinutes is the session's paid duration: elapsed minus breaks.
// Zero while the session is still open.
func (e TimeEntry) WorkedMinutes() int {
	if e.ClockOut == nil {
		return 0
	}
	elapsed := int(e.ClockOut.Sub(e.ClockIn).Minutes())
	worked := elapsed - e.BreakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}
