package timesheet

import (
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/pkg/validator"
)

// CreateRequest bundles entries either by explicit ids or by a clock-in date
// range. Exactly one selection mode must be provided.
type CreateRequest struct {
	Name     *string  `json:"name,omitempty"`
	EntryIDs []string `json:"entry_ids,omitempty"`
	DateFrom *string  `json:"date_from,omitempty"`
	DateTo   *string  `json:"date_to,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	byIDs := len(r.EntryIDs) > 0
	byRange := r.DateFrom != nil || r.DateTo != nil

	if !byIDs && !byRange {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_ids",
			Message: "either entry_ids or a date range is required",
		})
	}
	if byIDs && byRange {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_ids",
			Message: "entry_ids and a date range are mutually exclusive",
		})
	}

	if byRange {
		if r.DateFrom == nil || r.DateTo == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "both date_from and date_to are required for range selection",
			})
		} else {
			from, fromOK := validator.IsValidDate(*r.DateFrom)
			to, toOK := validator.IsValidDate(*r.DateTo)
			if !fromOK {
				errs = append(errs, validator.ValidationError{
					Field:   "date_from",
					Message: "date_from must be in YYYY-MM-DD format",
				})
			}
			if !toOK {
				errs = append(errs, validator.ValidationError{
					Field:   "date_to",
					Message: "date_to must be in YYYY-MM-DD format",
				})
			}
			if fromOK && toOK && to.Before(from) {
				errs = append(errs, validator.ValidationError{
					Field:   "date_to",
					Message: "date_to must not be before date_from",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest replaces a draft timesheet's entry set.
type UpdateRequest struct {
	ID       string   `json:"-"`
	Name     *string  `json:"name,omitempty"`
	EntryIDs []string `json:"entry_ids"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EntryIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_ids",
			Message: "entry_ids must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReviewRequest resolves a submitted timesheet.
type ReviewRequest struct {
	ID      string  `json:"-"`
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes,omitempty"`
}

type Response struct {
	ID           string  `json:"id"`
	WorkerID     string  `json:"worker_id"`
	WorkerName   *string `json:"worker_name,omitempty"`
	Name         *string `json:"name,omitempty"`
	PeriodStart  string  `json:"period_start"`
	PeriodEnd    string  `json:"period_end"`
	TotalMinutes int     `json:"total_minutes"`
	BreakMinutes int     `json:"break_minutes"`
	EntryCount   int     `json:"entry_count"`
	Status       string  `json:"status"`
	SubmittedAt  *string `json:"submitted_at,omitempty"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	ReviewNotes  *string `json:"review_notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Timesheets []Response `json:"timesheets"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

// ToResponse converts a Timesheet entity to its API representation.
func ToResponse(ts Timesheet) Response {
	return Response{
		ID:           ts.ID,
		WorkerID:     ts.WorkerID,
		WorkerName:   ts.WorkerName,
		Name:         ts.Name,
		PeriodStart:  ts.PeriodStart.UTC().Format("2006-01-02"),
		PeriodEnd:    ts.PeriodEnd.UTC().Format("2006-01-02"),
		TotalMinutes: ts.TotalMinutes,
		BreakMinutes: ts.BreakMinutes,
		EntryCount:   ts.EntryCount,
		Status:       string(ts.Status),
		SubmittedAt:  timePtrToString(ts.SubmittedAt),
		ReviewedBy:   ts.ReviewedBy,
		ReviewedAt:   timePtrToString(ts.ReviewedAt),
		ReviewNotes:  ts.ReviewNotes,
		CreatedAt:    ts.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    ts.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
