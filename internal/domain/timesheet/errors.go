package timesheet

import "errors"

var (
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrNoEligibleEntries = errors.New("no eligible time entries to bundle")
	ErrPartialSelection  = errors.New("one or more requested entries are not eligible")
	ErrNotDraft          = errors.New("timesheet is not in draft")
	ErrNotSubmitted      = errors.New("timesheet has not been submitted")
	ErrNotEditable       = errors.New("only draft timesheets can be edited")
	ErrEmptyTimesheet    = errors.New("timesheet has no entries")
	ErrUnauthorized      = errors.New("unauthorized to access this timesheet")
)
