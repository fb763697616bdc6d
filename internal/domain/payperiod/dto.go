package payperiod

import (
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be after start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MinUnlockReasonLength guards against contentless override reasons.
const MinUnlockReasonLength = 10

type UnlockRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *UnlockRequest) Validate() error {
	if len(r.Reason) < MinUnlockReasonLength {
		return ErrInvalidReason
	}
	return nil
}

type Response struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Status        string  `json:"status"`
	AutoGenerated bool    `json:"auto_generated"`
	LockedBy      *string `json:"locked_by,omitempty"`
	LockedAt      *string `json:"locked_at,omitempty"`
	UnlockedBy    *string `json:"unlocked_by,omitempty"`
	UnlockedAt    *string `json:"unlocked_at,omitempty"`
	UnlockReason  *string `json:"unlock_reason,omitempty"`
	ExportedBy    *string `json:"exported_by,omitempty"`
	ExportedAt    *string `json:"exported_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// WorkerSummary is one worker's aggregate inside a period.
type WorkerSummary struct {
	WorkerID          string          `json:"worker_id"`
	WorkerName        string          `json:"worker_name"`
	RegularMinutes    int             `json:"regular_minutes"`
	OvertimeMinutes   int             `json:"overtime_minutes"`
	DoubletimeMinutes int             `json:"doubletime_minutes"`
	TotalPay          decimal.Decimal `json:"total_pay"`
	PendingEntries    int             `json:"pending_entries"`
	ApprovedEntries   int             `json:"approved_entries"`
}

// Summary aggregates a period's entries per worker and in total.
type Summary struct {
	Period            Response        `json:"period"`
	Workers           []WorkerSummary `json:"workers"`
	RegularMinutes    int             `json:"regular_minutes"`
	OvertimeMinutes   int             `json:"overtime_minutes"`
	DoubletimeMinutes int             `json:"doubletime_minutes"`
	TotalPay          decimal.Decimal `json:"total_pay"`
	PendingEntries    int             `json:"pending_entries"`
	ApprovedEntries   int             `json:"approved_entries"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

// ToResponse converts a PayPeriod entity to its API representation.
func ToResponse(p PayPeriod) Response {
	return Response{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		StartDate:     p.StartDate.UTC().Format("2006-01-02"),
		EndDate:       p.EndDate.UTC().Format("2006-01-02"),
		Status:        string(p.Status),
		AutoGenerated: p.AutoGenerated,
		LockedBy:      p.LockedBy,
		LockedAt:      timePtrToString(p.LockedAt),
		UnlockedBy:    p.UnlockedBy,
		UnlockedAt:    timePtrToString(p.UnlockedAt),
		UnlockReason:  p.UnlockReason,
		ExportedBy:    p.ExportedBy,
		ExportedAt:    timePtrToString(p.ExportedAt),
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
