package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/job"
	"github.com/punchd-app/punchd-backend-go/internal/domain/notification"
	"github.com/punchd-app/punchd-backend-go/internal/domain/payperiod"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timesheet"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Structured errors carry detail maps the client can render.
	var geofenceErr *timeentry.GeofenceViolationError
	if errors.As(err, &geofenceErr) {
		ConflictWithDetails(w, "GEOFENCE_VIOLATION", geofenceErr.Error(), map[string]string{
			"distance_meters": fmt.Sprintf("%.1f", geofenceErr.DistanceMeters),
			"radius_meters":   fmt.Sprintf("%.1f", geofenceErr.RadiusMeters),
			"job_name":        geofenceErr.JobName,
		})
		return
	}

	var mismatchErr *timeentry.IdentityMismatchError
	if errors.As(err, &mismatchErr) {
		ConflictWithDetails(w, "IDENTITY_MISMATCH", mismatchErr.Error(), map[string]string{
			"confidence": fmt.Sprintf("%.1f", mismatchErr.Confidence),
			"threshold":  fmt.Sprintf("%.1f", mismatchErr.Threshold),
		})
		return
	}

	var pendingErr *payperiod.PendingApprovalsError
	if errors.As(err, &pendingErr) {
		ConflictWithDetails(w, "PENDING_APPROVALS", pendingErr.Error(), map[string]string{
			"pending_count": fmt.Sprintf("%d", pendingErr.Count),
		})
		return
	}

	switch {
	// Access control
	case errors.Is(err, worker.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, worker.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, timeentry.ErrUnauthorized),
		errors.Is(err, timesheet.ErrUnauthorized):
		Forbidden(w, "You do not have access to this resource")

	// Clock session state machine
	case errors.Is(err, timeentry.ErrAlreadyClockedIn),
		errors.Is(err, timeentry.ErrNotClockedIn),
		errors.Is(err, timeentry.ErrAlreadyOnBreak),
		errors.Is(err, timeentry.ErrNotOnBreak),
		errors.Is(err, timeentry.ErrOnBreak):
		Conflict(w, err.Error())
	case errors.Is(err, timeentry.ErrExcessiveDuration):
		UnprocessableEntity(w, "EXCESSIVE_DURATION", err.Error(), nil)
	case errors.Is(err, timeentry.ErrEntryLocked):
		Conflict(w, "Time entry is locked for payroll")
	case errors.Is(err, timeentry.ErrEntryNotFound):
		NotFound(w, "Time entry not found")

	// Pay periods
	case errors.Is(err, payperiod.ErrPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, payperiod.ErrAlreadyLocked),
		errors.Is(err, payperiod.ErrNotLocked),
		errors.Is(err, payperiod.ErrStatusConflict):
		Conflict(w, err.Error())
	case errors.Is(err, payperiod.ErrOverlappingPeriod):
		Conflict(w, "Pay period overlaps an existing period")
	case errors.Is(err, payperiod.ErrInvalidReason):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payperiod.ErrInvalidSchedule):
		BadRequest(w, err.Error(), nil)

	// Timesheets
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrNoEligibleEntries):
		BadRequest(w, "No eligible time entries to bundle", nil)
	case errors.Is(err, timesheet.ErrPartialSelection):
		Conflict(w, "One or more requested entries are not eligible")
	case errors.Is(err, timesheet.ErrNotDraft),
		errors.Is(err, timesheet.ErrNotSubmitted),
		errors.Is(err, timesheet.ErrNotEditable),
		errors.Is(err, timesheet.ErrEmptyTimesheet):
		Conflict(w, err.Error())

	// Lookups
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrNoScheduleSet):
		NotFound(w, "No pay period schedule configured")
	case errors.Is(err, company.ErrSettingsNotFound):
		NotFound(w, "Overtime settings not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
