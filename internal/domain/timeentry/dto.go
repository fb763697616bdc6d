package timeentry

import (
	"mime/multipart"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ClockInRequest struct {
	EntryType string  `json:"entry_type"`
	JobID     *string `json:"job_id,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	PhotoURL   *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	switch EntryType(r.EntryType) {
	case TypeJobTime:
		if r.JobID == nil || validator.IsEmpty(*r.JobID) {
			errs = append(errs, validator.ValidationError{
				Field:   "job_id",
				Message: "job_id is required for JOB_TIME entries",
			})
		}
	case TypeTravelTime:
		// no job site required
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "entry_type",
			Message: "entry_type must be JOB_TIME or TRAVEL_TIME",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	PhotoURL   *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ManualEntryRequest creates a back-dated session on behalf of a worker.
// Manual entries skip geofencing and identity verification and start out
// APPROVED, since an admin is vouching for them.
type ManualEntryRequest struct {
	WorkerID     string  `json:"worker_id"`
	EntryType    string  `json:"entry_type"`
	JobID        *string `json:"job_id,omitempty"`
	ClockIn      string  `json:"clock_in"`
	ClockOut     string  `json:"clock_out"`
	BreakMinutes int     `json:"break_minutes"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	switch EntryType(r.EntryType) {
	case TypeJobTime:
		if r.JobID == nil || validator.IsEmpty(*r.JobID) {
			errs = append(errs, validator.ValidationError{
				Field:   "job_id",
				Message: "job_id is required for JOB_TIME entries",
			})
		}
	case TypeTravelTime:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "entry_type",
			Message: "entry_type must be JOB_TIME or TRAVEL_TIME",
		})
	}

	clockIn, inOK := validator.IsValidDateTime(r.ClockIn)
	if !inOK {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be an ISO8601 timestamp",
		})
	}

	clockOut, outOK := validator.IsValidDateTime(r.ClockOut)
	if !outOK {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock_out must be an ISO8601 timestamp",
		})
	}

	if inOK && outOK {
		if !clockOut.After(clockIn) {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be after clock_in",
			})
		} else if clockOut.Sub(clockIn) > MaxSessionDuration {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "session may not exceed 24 hours",
			})
		}
	}

	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window returns the parsed clock-in and clock-out bounds in UTC. It accepts
// the same timestamp formats as Validate.
func (r *ManualEntryRequest) Window() (time.Time, time.Time, error) {
	clockIn, ok := validator.IsValidDateTime(r.ClockIn)
	if !ok {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{
			Field:   "clock_in",
			Message: "clock_in must be an ISO8601 timestamp",
		}}
	}

	clockOut, ok := validator.IsValidDateTime(r.ClockOut)
	if !ok {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{
			Field:   "clock_out",
			Message: "clock_out must be an ISO8601 timestamp",
		}}
	}

	return clockIn.UTC(), clockOut.UTC(), nil
}

type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	WorkerID  *string `json:"worker_id,omitempty"`
	JobID     *string `json:"job_id,omitempty"`
	Status    *string `json:"status,omitempty"`
	DateFrom  *string `json:"date_from,omitempty"`
	DateTo    *string `json:"date_to,omitempty"`
	OnlyOpen  bool    `json:"only_open,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

type Response struct {
	ID                string          `json:"id"`
	WorkerID          string          `json:"worker_id"`
	WorkerName        *string         `json:"worker_name,omitempty"`
	JobID             *string         `json:"job_id,omitempty"`
	JobName           *string         `json:"job_name,omitempty"`
	EntryType         string          `json:"entry_type"`
	ClockIn           string          `json:"clock_in"`
	ClockOut          *string         `json:"clock_out,omitempty"`
	OnBreak           bool            `json:"on_break"`
	BreakMinutes      int             `json:"break_minutes"`
	WorkedMinutes     int             `json:"worked_minutes"`
	RegularMinutes    int             `json:"regular_minutes"`
	OvertimeMinutes   int             `json:"overtime_minutes"`
	DoubletimeMinutes int             `json:"doubletime_minutes"`
	HourlyRate        decimal.Decimal `json:"hourly_rate"`
	RegularPay        decimal.Decimal `json:"regular_pay"`
	OvertimePay       decimal.Decimal `json:"overtime_pay"`
	DoubletimePay     decimal.Decimal `json:"doubletime_pay"`
	TotalPay          decimal.Decimal `json:"total_pay"`
	ApprovalStatus    string          `json:"approval_status"`
	Flags             []string        `json:"flags,omitempty"`
	RejectionReason   *string         `json:"rejection_reason,omitempty"`
	IsLocked          bool            `json:"is_locked"`
	PayPeriodID       *string         `json:"pay_period_id,omitempty"`
	TimesheetID       *string         `json:"timesheet_id,omitempty"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

type ListResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Entries    []Response `json:"entries"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

// ToResponse converts a TimeEntry entity to its API representation.
func ToResponse(e TimeEntry) Response {
	return Response{
		ID:                e.ID,
		WorkerID:          e.WorkerID,
		WorkerName:        e.WorkerName,
		JobID:             e.JobID,
		JobName:           e.JobName,
		EntryType:         string(e.EntryType),
		ClockIn:           e.ClockIn.UTC().Format(time.RFC3339),
		ClockOut:          timePtrToString(e.ClockOut),
		OnBreak:           e.OnBreak,
		BreakMinutes:      e.BreakMinutes,
		WorkedMinutes:     e.WorkedMinutes(),
		RegularMinutes:    e.RegularMinutes,
		OvertimeMinutes:   e.OvertimeMinutes,
		DoubletimeMinutes: e.DoubletimeMinutes,
		HourlyRate:        e.HourlyRate,
		RegularPay:        e.RegularPay,
		OvertimePay:       e.OvertimePay,
		DoubletimePay:     e.DoubletimePay,
		TotalPay:          e.TotalPay,
		ApprovalStatus:    string(e.ApprovalStatus),
		Flags:             e.Flags,
		RejectionReason:   e.RejectionReason,
		IsLocked:          e.IsLocked,
		PayPeriodID:       e.PayPeriodID,
		TimesheetID:       e.TimesheetID,
		CreatedAt:         e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
