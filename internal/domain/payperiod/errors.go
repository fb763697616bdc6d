package payperiod

import (
	"errors"
	"fmt"
)

var (
	ErrPeriodNotFound    = errors.New("pay period not found")
	ErrAlreadyLocked     = errors.New("pay period is not open")
	ErrNotLocked         = errors.New("pay period is not locked")
	ErrOverlappingPeriod = errors.New("pay period overlaps an existing period")
	ErrInvalidSchedule   = errors.New("invalid pay period schedule configuration")
	ErrInvalidReason     = errors.New("unlock reason must be at least 10 characters")
	ErrStatusConflict    = errors.New("pay period status changed concurrently")
)

// PendingApprovalsError blocks a lock while covered entries are still
// awaiting adjudication.
type PendingApprovalsError struct {
	Count int
}

func (e *PendingApprovalsError) Error() string {
	return fmt.Sprintf("%d time entries are still pending approval", e.Count)
}
