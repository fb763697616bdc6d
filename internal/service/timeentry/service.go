package timeentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/audit"
	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/job"
	"github.com/punchd-app/punchd-backend-go/internal/domain/notification"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/email"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/faceverify"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/geo"
	"github.com/punchd-app/punchd-backend-go/internal/service/file"
	"github.com/punchd-app/punchd-backend-go/internal/service/payroll"
)

// DefaultMatchThreshold is the minimum face comparison confidence accepted
// as a match when no threshold is configured.
const DefaultMatchThreshold = 80.0

type TimeEntryServiceImpl struct {
	timeentry.Repository
	workerRepo     worker.Repository
	jobRepo        job.Repository
	companyRepo    company.Repository
	fileService    file.FileService
	comparator     faceverify.Comparator
	matchThreshold float64
	notifier       notification.Service
	emailService   email.EmailService
	auditRecorder  audit.Recorder
	logger         *slog.Logger
}

func NewTimeEntryService(
	repo timeentry.Repository,
	workerRepo worker.Repository,
	jobRepo job.Repository,
	companyRepo company.Repository,
	fileService file.FileService,
	comparator faceverify.Comparator,
	matchThreshold float64,
	notifier notification.Service,
	emailService email.EmailService,
	auditRecorder audit.Recorder,
	logger *slog.Logger,
) timeentry.Service {
	if matchThreshold <= 0 {
		matchThreshold = DefaultMatchThreshold
	}
	return &TimeEntryServiceImpl{
		Repository:     repo,
		workerRepo:     workerRepo,
		jobRepo:        jobRepo,
		companyRepo:    companyRepo,
		fileService:    fileService,
		comparator:     comparator,
		matchThreshold: matchThreshold,
		notifier:       notifier,
		emailService:   emailService,
		auditRecorder:  auditRecorder,
		logger:         logger,
	}
}

func (s *TimeEntryServiceImpl) recordAudit(ctx context.Context, event audit.Event) {
	if err := s.auditRecorder.Record(ctx, event); err != nil {
		s.logger.Error("failed to record audit event", "action", event.Action, "error", err)
	}
}

// sundayWeekStart is 00:00:00 UTC of the Sunday on/before t. Weekly overtime
// accumulates against Sunday-anchored calendar weeks.
func sundayWeekStart(t time.Time) time.Time {
	t = t.UTC()
	year, month, day := t.AddDate(0, 0, -int(t.Weekday())).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (s *TimeEntryServiceImpl) overtimeSettings(ctx context.Context, companyID string) (company.OvertimeSettings, error) {
	settings, err := s.companyRepo.GetOvertimeSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrSettingsNotFound) {
			return company.DefaultOvertimeSettings(companyID), nil
		}
		return company.OvertimeSettings{}, fmt.Errorf("failed to get overtime settings: %w", err)
	}
	return settings, nil
}

// ClockIn implements timeentry.Service.
func (s *TimeEntryServiceImpl) ClockIn(ctx context.Context, actor worker.Actor, req timeentry.ClockInRequest) (timeentry.Response, error) {
	if err := req.Validate(); err != nil {
		return timeentry.Response{}, err
	}
	now := time.Now().UTC()

	w, err := s.workerRepo.GetByID(ctx, actor.WorkerID, actor.CompanyID)
	if err != nil {
		return timeentry.Response{}, err
	}

	var j *job.Job
	if timeentry.EntryType(req.EntryType) == timeentry.TypeJobTime {
		found, err := s.jobRepo.GetByID(ctx, *req.JobID, actor.CompanyID)
		if err != nil {
			return timeentry.Response{}, err
		}
		j = &found

		eval := geo.Evaluate(j.Latitude, j.Longitude, j.RadiusMeters, req.Latitude, req.Longitude)
		if !eval.IsWithin {
			return timeentry.Response{}, &timeentry.GeofenceViolationError{
				DistanceMeters: eval.DistanceMeters,
				RadiusMeters:   j.RadiusMeters,
				JobName:        j.Name,
			}
		}
	}

	// Upload the proof photo before creating the entry so a failed upload is
	// recorded as a flag at insert time. A missing photo never blocks the
	// clock-in.
	var flags []string
	var photoURL *string
	if req.File != nil && req.FileHeader != nil {
		uploaded, err := s.fileService.UploadClockPhoto(ctx, actor.WorkerID, now, req.File, req.FileHeader.Filename, "in")
		if err != nil {
			s.logger.Warn("clock-in photo upload failed", "worker_id", actor.WorkerID, "error", err)
			flags = append(flags, timeentry.FlagPhotoUploadFailed)
		} else {
			photoURL = &uploaded
		}
	}

	entry := timeentry.TimeEntry{
		WorkerID:         actor.WorkerID,
		CompanyID:        actor.CompanyID,
		JobID:            req.JobID,
		EntryType:        timeentry.EntryType(req.EntryType),
		ClockIn:          now,
		ClockInLatitude:  &req.Latitude,
		ClockInLongitude: &req.Longitude,
		ClockInPhotoURL:  photoURL,
		ApprovalStatus:   timeentry.StatusPending,
		Flags:            flags,
		WorkerType:       w.WorkerType,
	}

	created, err := s.Repository.CreateActive(ctx, entry)
	if err != nil {
		return timeentry.Response{}, err
	}

	if photoURL != nil {
		created, err = s.verifyIdentity(ctx, actor, w, j, created, *photoURL)
		if err != nil {
			return timeentry.Response{}, err
		}
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionClockIn,
		TargetType: "time_entry",
		TargetID:   created.ID,
		Details:    map[string]interface{}{"entry_type": string(created.EntryType)},
	})

	return timeentry.ToResponse(created), nil
}

// verifyIdentity runs the face comparison step of a clock-in. The first photo
// a worker ever submits becomes their reference; later photos are compared
// against it. A mismatch rolls back the tentative entry and alerts the
// company's admins; a comparator failure flags the entry and lets the
// clock-in stand.
func (s *TimeEntryServiceImpl) verifyIdentity(ctx context.Context, actor worker.Actor, w worker.Worker, j *job.Job, created timeentry.TimeEntry, photoURL string) (timeentry.TimeEntry, error) {
	if w.ReferencePhotoURL == nil {
		if err := s.workerRepo.SetReferencePhoto(ctx, actor.WorkerID, actor.CompanyID, photoURL); err != nil {
			s.logger.Warn("failed to save reference photo", "worker_id", actor.WorkerID, "error", err)
		}
		return created, nil
	}

	confidence, err := s.comparator.Compare(ctx, *w.ReferencePhotoURL, photoURL)
	if err != nil {
		s.logger.Warn("face verification unavailable", "worker_id", actor.WorkerID, "error", err)
		created.Flags = append(created.Flags, timeentry.FlagFaceVerifyUnavailable)
		if updErr := s.Repository.Update(ctx, created); updErr != nil {
			s.logger.Error("failed to flag entry after verification outage", "entry_id", created.ID, "error", updErr)
		}
		return created, nil
	}

	if confidence >= s.matchThreshold {
		return created, nil
	}

	if err := s.Repository.Delete(ctx, created.ID, actor.CompanyID); err != nil {
		s.logger.Error("failed to roll back mismatched clock-in", "entry_id", created.ID, "error", err)
	}

	jobName := ""
	if j != nil {
		jobName = j.Name
	}
	if err := s.notifier.NotifyAdmins(ctx, actor.CompanyID, notification.TypeIdentityMismatch,
		"Identity verification failed",
		fmt.Sprintf("%s's clock-in photo did not match their reference photo", w.FullName),
		map[string]interface{}{
			"worker_id":  actor.WorkerID,
			"confidence": confidence,
			"job_name":   jobName,
		},
	); err != nil {
		s.logger.Error("failed to notify admins of identity mismatch", "worker_id", actor.WorkerID, "error", err)
	}

	if s.emailService != nil {
		occurredAt := time.Now().UTC().Format(time.RFC3339)
		if admins, listErr := s.workerRepo.ListAdmins(ctx, actor.CompanyID); listErr != nil {
			s.logger.Warn("failed to list admins for identity alert email", "error", listErr)
		} else {
			for _, admin := range admins {
				if mailErr := s.emailService.SendIdentityAlert(admin.Email, w.FullName, jobName, confidence, occurredAt); mailErr != nil {
					s.logger.Warn("failed to send identity alert email", "to", admin.Email, "error", mailErr)
				}
			}
		}
	}

	return timeentry.TimeEntry{}, &timeentry.IdentityMismatchError{
		Confidence: confidence,
		Threshold:  s.matchThreshold,
	}
}

// ClockOut implements timeentry.Service.
func (s *TimeEntryServiceImpl) ClockOut(ctx context.Context, actor worker.Actor, req timeentry.ClockOutRequest) (timeentry.Response, error) {
	if err := req.Validate(); err != nil {
		return timeentry.Response{}, err
	}
	now := time.Now().UTC()

	entry, err := s.Repository.GetOpenSession(ctx, actor.WorkerID)
	if err != nil {
		return timeentry.Response{}, err
	}
	if entry.OnBreak {
		return timeentry.Response{}, timeentry.ErrOnBreak
	}

	elapsed := now.Sub(entry.ClockIn)
	if elapsed > timeentry.MaxSessionDuration {
		return timeentry.Response{}, timeentry.ErrExcessiveDuration
	}

	durationMinutes := int(elapsed.Minutes()) - entry.BreakMinutes
	if durationMinutes < 0 {
		durationMinutes = 0
	}

	w, err := s.workerRepo.GetByID(ctx, actor.WorkerID, actor.CompanyID)
	if err != nil {
		return timeentry.Response{}, err
	}

	var j *job.Job
	var override *worker.JobRate
	if entry.JobID != nil {
		found, err := s.jobRepo.GetByID(ctx, *entry.JobID, actor.CompanyID)
		if err == nil {
			j = &found
		} else if !errors.Is(err, job.ErrJobNotFound) {
			return timeentry.Response{}, err
		}
		override, err = s.workerRepo.GetJobRate(ctx, actor.WorkerID, *entry.JobID)
		if err != nil {
			return timeentry.Response{}, err
		}
	}
	rate := payroll.ResolveRate(w, j, override)

	settings, err := s.overtimeSettings(ctx, actor.CompanyID)
	if err != nil {
		return timeentry.Response{}, err
	}

	weekStart := sundayWeekStart(entry.ClockIn)
	weeklyBefore, err := s.Repository.WeeklyMinutesBefore(ctx, actor.WorkerID, weekStart, entry.ClockIn)
	if err != nil {
		return timeentry.Response{}, fmt.Errorf("failed to sum weekly minutes: %w", err)
	}

	allocation := payroll.Allocate(durationMinutes, rate, settings, weeklyBefore)

	if req.File != nil && req.FileHeader != nil {
		uploaded, err := s.fileService.UploadClockPhoto(ctx, actor.WorkerID, now, req.File, req.FileHeader.Filename, "out")
		if err != nil {
			s.logger.Warn("clock-out photo upload failed", "worker_id", actor.WorkerID, "error", err)
			entry.Flags = append(entry.Flags, timeentry.FlagPhotoUploadFailed)
		} else {
			entry.ClockOutPhotoURL = &uploaded
		}
	}

	entry.ClockOut = &now
	entry.ClockOutLatitude = &req.Latitude
	entry.ClockOutLongitude = &req.Longitude
	entry.HourlyRate = rate
	entry.RegularMinutes = allocation.RegularMinutes
	entry.OvertimeMinutes = allocation.OvertimeMinutes
	entry.DoubletimeMinutes = allocation.DoubletimeMinutes
	entry.RegularPay = allocation.RegularPay
	entry.OvertimePay = allocation.OvertimePay
	entry.DoubletimePay = allocation.DoubletimePay
	entry.TotalPay = allocation.TotalPay

	if err := s.Repository.Update(ctx, entry); err != nil {
		return timeentry.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionClockOut,
		TargetType: "time_entry",
		TargetID:   entry.ID,
		Details: map[string]interface{}{
			"worked_minutes": durationMinutes,
			"total_pay":      entry.TotalPay.String(),
		},
	})

	return timeentry.ToResponse(entry), nil
}

// StartBreak implements timeentry.Service.
func (s *TimeEntryServiceImpl) StartBreak(ctx context.Context, actor worker.Actor) (timeentry.Response, error) {
	entry, err := s.Repository.GetOpenSession(ctx, actor.WorkerID)
	if err != nil {
		return timeentry.Response{}, err
	}
	if entry.OnBreak {
		return timeentry.Response{}, timeentry.ErrAlreadyOnBreak
	}

	now := time.Now().UTC()
	entry.OnBreak = true
	entry.BreakStartedAt = &now

	if err := s.Repository.Update(ctx, entry); err != nil {
		return timeentry.Response{}, err
	}
	return timeentry.ToResponse(entry), nil
}

// EndBreak implements timeentry.Service.
func (s *TimeEntryServiceImpl) EndBreak(ctx context.Context, actor worker.Actor) (timeentry.Response, error) {
	entry, err := s.Repository.GetOpenSession(ctx, actor.WorkerID)
	if err != nil {
		return timeentry.Response{}, err
	}
	if !entry.OnBreak || entry.BreakStartedAt == nil {
		return timeentry.Response{}, timeentry.ErrNotOnBreak
	}

	now := time.Now().UTC()
	entry.BreakMinutes += int(now.Sub(*entry.BreakStartedAt).Minutes())
	entry.OnBreak = false
	entry.BreakStartedAt = nil

	if err := s.Repository.Update(ctx, entry); err != nil {
		return timeentry.Response{}, err
	}
	return timeentry.ToResponse(entry), nil
}

// CreateManual implements timeentry.Service. Manual entries skip geofencing
// and identity checks and start out APPROVED; the creating admin vouches for
// them.
func (s *TimeEntryServiceImpl) CreateManual(ctx context.Context, actor worker.Actor, req timeentry.ManualEntryRequest) (timeentry.Response, error) {
	if !actor.IsAdmin() {
		return timeentry.Response{}, timeentry.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return timeentry.Response{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID, actor.CompanyID)
	if err != nil {
		return timeentry.Response{}, err
	}

	clockIn, clockOut, err := req.Window()
	if err != nil {
		return timeentry.Response{}, err
	}

	var j *job.Job
	var override *worker.JobRate
	if req.JobID != nil {
		found, err := s.jobRepo.GetByID(ctx, *req.JobID, actor.CompanyID)
		if err != nil {
			return timeentry.Response{}, err
		}
		j = &found
		override, err = s.workerRepo.GetJobRate(ctx, req.WorkerID, *req.JobID)
		if err != nil {
			return timeentry.Response{}, err
		}
	}
	rate := payroll.ResolveRate(w, j, override)

	settings, err := s.overtimeSettings(ctx, actor.CompanyID)
	if err != nil {
		return timeentry.Response{}, err
	}

	durationMinutes := int(clockOut.Sub(clockIn).Minutes()) - req.BreakMinutes
	if durationMinutes < 0 {
		durationMinutes = 0
	}

	weekStart := sundayWeekStart(clockIn)
	weeklyBefore, err := s.Repository.WeeklyMinutesBefore(ctx, req.WorkerID, weekStart, clockIn)
	if err != nil {
		return timeentry.Response{}, fmt.Errorf("failed to sum weekly minutes: %w", err)
	}

	allocation := payroll.Allocate(durationMinutes, rate, settings, weeklyBefore)
	now := time.Now().UTC()

	created, err := s.Repository.Create(ctx, timeentry.TimeEntry{
		WorkerID:          req.WorkerID,
		CompanyID:         actor.CompanyID,
		JobID:             req.JobID,
		EntryType:         timeentry.EntryType(req.EntryType),
		ClockIn:           clockIn,
		ClockOut:          &clockOut,
		BreakMinutes:      req.BreakMinutes,
		ApprovalStatus:    timeentry.StatusApproved,
		ApprovedBy:        &actor.WorkerID,
		ApprovedAt:        &now,
		HourlyRate:        rate,
		RegularMinutes:    allocation.RegularMinutes,
		OvertimeMinutes:   allocation.OvertimeMinutes,
		DoubletimeMinutes: allocation.DoubletimeMinutes,
		RegularPay:        allocation.RegularPay,
		OvertimePay:       allocation.OvertimePay,
		DoubletimePay:     allocation.DoubletimePay,
		TotalPay:          allocation.TotalPay,
		WorkerType:        w.WorkerType,
	})
	if err != nil {
		return timeentry.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionManualEntry,
		TargetType: "time_entry",
		TargetID:   created.ID,
		Details:    map[string]interface{}{"worker_id": req.WorkerID},
	})

	return timeentry.ToResponse(created), nil
}

// Approve implements timeentry.Service.
func (s *TimeEntryServiceImpl) Approve(ctx context.Context, actor worker.Actor, id string) (timeentry.Response, error) {
	if !actor.IsAdmin() {
		return timeentry.Response{}, timeentry.ErrUnauthorized
	}

	entry, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return timeentry.Response{}, err
	}
	if !entry.IsComplete() {
		return timeentry.Response{}, timeentry.ErrNotClockedIn
	}
	if entry.IsLocked {
		return timeentry.Response{}, timeentry.ErrEntryLocked
	}

	now := time.Now().UTC()
	entry.ApprovalStatus = timeentry.StatusApproved
	entry.ApprovedBy = &actor.WorkerID
	entry.ApprovedAt = &now
	entry.RejectionReason = nil

	if err := s.Repository.Update(ctx, entry); err != nil {
		return timeentry.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionEntryApproved,
		TargetType: "time_entry",
		TargetID:   id,
	})

	return timeentry.ToResponse(entry), nil
}

// Reject implements timeentry.Service.
func (s *TimeEntryServiceImpl) Reject(ctx context.Context, actor worker.Actor, req timeentry.RejectRequest) (timeentry.Response, error) {
	if !actor.IsAdmin() {
		return timeentry.Response{}, timeentry.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return timeentry.Response{}, err
	}

	entry, err := s.Repository.GetByID(ctx, req.ID, actor.CompanyID)
	if err != nil {
		return timeentry.Response{}, err
	}
	if !entry.IsComplete() {
		return timeentry.Response{}, timeentry.ErrNotClockedIn
	}
	if entry.IsLocked {
		return timeentry.Response{}, timeentry.ErrEntryLocked
	}

	now := time.Now().UTC()
	entry.ApprovalStatus = timeentry.StatusRejected
	entry.ApprovedBy = &actor.WorkerID
	entry.ApprovedAt = &now
	entry.RejectionReason = &req.Reason

	if err := s.Repository.Update(ctx, entry); err != nil {
		return timeentry.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionEntryRejected,
		TargetType: "time_entry",
		TargetID:   req.ID,
		Details:    map[string]interface{}{"reason": req.Reason},
	})

	return timeentry.ToResponse(entry), nil
}

// GetByID implements timeentry.Service.
func (s *TimeEntryServiceImpl) GetByID(ctx context.Context, actor worker.Actor, id string) (timeentry.Response, error) {
	entry, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return timeentry.Response{}, err
	}
	if !actor.IsAdmin() && entry.WorkerID != actor.WorkerID {
		return timeentry.Response{}, timeentry.ErrUnauthorized
	}
	return timeentry.ToResponse(entry), nil
}

// ListMine implements timeentry.Service.
func (s *TimeEntryServiceImpl) ListMine(ctx context.Context, actor worker.Actor, filter timeentry.Filter) (timeentry.ListResponse, error) {
	entries, total, err := s.Repository.ListMine(ctx, actor.WorkerID, filter, actor.CompanyID)
	if err != nil {
		return timeentry.ListResponse{}, err
	}
	return buildListResponse(entries, total, filter), nil
}

// List implements timeentry.Service.
func (s *TimeEntryServiceImpl) List(ctx context.Context, actor worker.Actor, filter timeentry.Filter) (timeentry.ListResponse, error) {
	if !actor.IsAdmin() {
		return timeentry.ListResponse{}, timeentry.ErrUnauthorized
	}

	entries, total, err := s.Repository.List(ctx, filter, actor.CompanyID)
	if err != nil {
		return timeentry.ListResponse{}, err
	}
	return buildListResponse(entries, total, filter), nil
}

func buildListResponse(entries []timeentry.TimeEntry, total int64, filter timeentry.Filter) timeentry.ListResponse {
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	responses := make([]timeentry.Response, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timeentry.ToResponse(e))
	}

	return timeentry.ListResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Entries:    responses,
	}
}
