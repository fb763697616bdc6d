package timesheet

import "time"

// Status enum
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

// Timesheet is a worker-curated bundle of completed entries submitted as a
// unit for review. It references its entries; deleting a timesheet unlinks
// them, never deletes them.
type Timesheet struct {
	ID        string
	WorkerID  string
	CompanyID string
	Name      *string

	PeriodStart  time.Time
	PeriodEnd    time.Time
	TotalMinutes int
	BreakMinutes int

	Status      Status
	SubmittedAt *time.Time
	ReviewedBy  *string
	ReviewedAt  *time.Time
	ReviewNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	WorkerName *string
	EntryCount int
}
