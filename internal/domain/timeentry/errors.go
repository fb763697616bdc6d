package timeentry

import "errors"

// Clock session errors
var (
	ErrAlreadyClockedIn  = errors.New("you already have an active clock session")
	ErrNotClockedIn      = errors.New("you are not clocked in")
	ErrAlreadyOnBreak    = errors.New("you are already on break")
	ErrNotOnBreak        = errors.New("you are not on break")
	ErrOnBreak           = errors.New("you must end your break before clocking out")
	ErrExcessiveDuration = errors.New("clock session exceeds the 24 hour maximum")
)

// GeofenceViolationError is returned when a JOB_TIME clock-in originates
// outside the job site's geofence. It carries enough detail to explain the
// rejection to the worker.
type GeofenceViolationError struct {
	DistanceMeters float64
	RadiusMeters   float64
	JobName        string
}

func (e *GeofenceViolationError) Error() string {
	return "outside the job site geofence"
}

// IdentityMismatchError is returned when the clock-in photo does not match
// the worker's reference photo. The tentative entry has already been rolled
// back by the time the caller sees this.
type IdentityMismatchError struct {
	Confidence float64
	Threshold  float64
}

func (e *IdentityMismatchError) Error() string {
	return "clock-in photo did not match the reference photo"
}

// General errors
var (
	ErrEntryNotFound = errors.New("time entry not found")
	ErrEntryLocked   = errors.New("time entry is locked for payroll")
	ErrUnauthorized  = errors.New("unauthorized to access this time entry")
)
