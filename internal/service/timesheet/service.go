package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/audit"
	"github.com/punchd-app/punchd-backend-go/internal/domain/notification"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timesheet"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/email"
	"github.com/punchd-app/punchd-backend-go/internal/repository/postgresql"
)

type TimesheetServiceImpl struct {
	db *database.DB
	timesheet.Repository
	timeEntryRepo timeentry.Repository
	workerRepo    worker.Repository
	notifier      notification.Service
	emailService  email.EmailService
	auditRecorder audit.Recorder
	logger        *slog.Logger
}

func NewTimesheetService(
	db *database.DB,
	repo timesheet.Repository,
	timeEntryRepo timeentry.Repository,
	workerRepo worker.Repository,
	notifier notification.Service,
	emailService email.EmailService,
	auditRecorder audit.Recorder,
	logger *slog.Logger,
) timesheet.Service {
	return &TimesheetServiceImpl{
		db:            db,
		Repository:    repo,
		timeEntryRepo: timeEntryRepo,
		workerRepo:    workerRepo,
		notifier:      notifier,
		emailService:  emailService,
		auditRecorder: auditRecorder,
		logger:        logger,
	}
}

func (s *TimesheetServiceImpl) recordAudit(ctx context.Context, event audit.Event) {
	if err := s.auditRecorder.Record(ctx, event); err != nil {
		s.logger.Error("failed to record audit event", "action", event.Action, "error", err)
	}
}

// period and totals derived from an entry set. Bounds are day-rounded around
// the min and max clock-in.
func deriveTotals(entries []timeentry.TimeEntry) (start, end time.Time, totalMinutes, breakMinutes int) {
	for i, e := range entries {
		in := e.ClockIn.UTC()
		if i == 0 || in.Before(start) {
			start = in
		}
		if i == 0 || in.After(end) {
			end = in
		}
		totalMinutes += e.WorkedMinutes()
		breakMinutes += e.BreakMinutes
	}

	y, m, d := start.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = end.Date()
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	return start, end, totalMinutes, breakMinutes
}

func parseRange(req timesheet.CreateRequest) (*time.Time, *time.Time) {
	if req.DateFrom == nil || req.DateTo == nil {
		return nil, nil
	}
	from, _ := time.Parse("2006-01-02", *req.DateFrom)
	to, _ := time.Parse("2006-01-02", *req.DateTo)
	to = to.Add(24*time.Hour - time.Millisecond)
	return &from, &to
}

// Create implements timesheet.Service. The insert and the entry linking run
// in one transaction; a shortfall in the link count (another timesheet
// claimed an entry concurrently) rolls the whole creation back.
func (s *TimesheetServiceImpl) Create(ctx context.Context, actor worker.Actor, req timesheet.CreateRequest) (timesheet.Response, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Response{}, err
	}

	from, to := parseRange(req)
	eligible, err := s.timeEntryRepo.ListEligible(ctx, actor.WorkerID, actor.CompanyID, req.EntryIDs, from, to)
	if err != nil {
		return timesheet.Response{}, fmt.Errorf("failed to list eligible entries: %w", err)
	}
	if len(eligible) == 0 {
		return timesheet.Response{}, timesheet.ErrNoEligibleEntries
	}
	if len(req.EntryIDs) > 0 && len(eligible) != len(req.EntryIDs) {
		return timesheet.Response{}, timesheet.ErrPartialSelection
	}

	start, end, totalMinutes, breakMinutes := deriveTotals(eligible)
	entryIDs := make([]string, 0, len(eligible))
	for _, e := range eligible {
		entryIDs = append(entryIDs, e.ID)
	}

	var created timesheet.Timesheet
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.Repository.Create(txCtx, timesheet.Timesheet{
			WorkerID:     actor.WorkerID,
			CompanyID:    actor.CompanyID,
			Name:         req.Name,
			PeriodStart:  start,
			PeriodEnd:    end,
			TotalMinutes: totalMinutes,
			BreakMinutes: breakMinutes,
			Status:       timesheet.StatusDraft,
		})
		if err != nil {
			return err
		}

		linked, err := s.timeEntryRepo.LinkTimesheet(txCtx, created.ID, actor.WorkerID, entryIDs)
		if err != nil {
			return err
		}
		if linked != int64(len(entryIDs)) {
			// An entry was claimed between eligibility check and link.
			return timesheet.ErrPartialSelection
		}
		return nil
	})
	if err != nil {
		return timesheet.Response{}, err
	}

	created.EntryCount = len(entryIDs)
	return timesheet.ToResponse(created), nil
}

// Update implements timesheet.Service.
func (s *TimesheetServiceImpl) Update(ctx context.Context, actor worker.Actor, req timesheet.UpdateRequest) (timesheet.Response, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Response{}, err
	}

	ts, err := s.Repository.GetByID(ctx, req.ID, actor.CompanyID)
	if err != nil {
		return timesheet.Response{}, err
	}
	if ts.WorkerID != actor.WorkerID {
		return timesheet.Response{}, timesheet.ErrUnauthorized
	}
	if ts.Status != timesheet.StatusDraft {
		return timesheet.Response{}, timesheet.ErrNotEditable
	}

	current, err := s.timeEntryRepo.ListByTimesheet(ctx, req.ID)
	if err != nil {
		return timesheet.Response{}, fmt.Errorf("failed to list timesheet entries: %w", err)
	}
	currentIDs := make(map[string]bool, len(current))
	for _, e := range current {
		currentIDs[e.ID] = true
	}

	// Entries not already on this timesheet must pass the same eligibility
	// check as Create.
	var added []string
	requested := make(map[string]bool, len(req.EntryIDs))
	for _, id := range req.EntryIDs {
		requested[id] = true
		if !currentIDs[id] {
			added = append(added, id)
		}
	}

	if len(added) > 0 {
		eligible, err := s.timeEntryRepo.ListEligible(ctx, actor.WorkerID, actor.CompanyID, added, nil, nil)
		if err != nil {
			return timesheet.Response{}, fmt.Errorf("failed to list eligible entries: %w", err)
		}
		if len(eligible) != len(added) {
			return timesheet.Response{}, timesheet.ErrPartialSelection
		}
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// Reset the link set, then relink the replacement set.
		if _, err := s.timeEntryRepo.UnlinkTimesheet(txCtx, req.ID); err != nil {
			return err
		}
		linked, err := s.timeEntryRepo.LinkTimesheet(txCtx, req.ID, actor.WorkerID, req.EntryIDs)
		if err != nil {
			return err
		}
		if linked != int64(len(req.EntryIDs)) {
			return timesheet.ErrPartialSelection
		}

		entries, err := s.timeEntryRepo.ListByTimesheet(txCtx, req.ID)
		if err != nil {
			return err
		}
		start, end, totalMinutes, breakMinutes := deriveTotals(entries)

		if req.Name != nil {
			ts.Name = req.Name
		}
		ts.PeriodStart = start
		ts.PeriodEnd = end
		ts.TotalMinutes = totalMinutes
		ts.BreakMinutes = breakMinutes

		return s.Repository.Update(txCtx, ts)
	})
	if err != nil {
		return timesheet.Response{}, err
	}

	ts.EntryCount = len(req.EntryIDs)
	return timesheet.ToResponse(ts), nil
}

// Submit implements timesheet.Service.
func (s *TimesheetServiceImpl) Submit(ctx context.Context, actor worker.Actor, id string) (timesheet.Response, error) {
	ts, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return timesheet.Response{}, err
	}
	if ts.WorkerID != actor.WorkerID {
		return timesheet.Response{}, timesheet.ErrUnauthorized
	}
	if ts.Status != timesheet.StatusDraft {
		return timesheet.Response{}, timesheet.ErrNotDraft
	}
	if ts.EntryCount == 0 {
		return timesheet.Response{}, timesheet.ErrEmptyTimesheet
	}

	now := time.Now().UTC()
	ts.Status = timesheet.StatusSubmitted
	ts.SubmittedAt = &now

	if err := s.Repository.UpdateStatus(ctx, ts, timesheet.StatusDraft); err != nil {
		return timesheet.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionSheetSubmitted,
		TargetType: "timesheet",
		TargetID:   id,
	})

	if err := s.notifier.NotifyAdmins(ctx, actor.CompanyID, notification.TypeTimesheetSubmitted,
		"Timesheet submitted",
		fmt.Sprintf("A timesheet covering %s through %s is awaiting review",
			ts.PeriodStart.UTC().Format("2006-01-02"), ts.PeriodEnd.UTC().Format("2006-01-02")),
		map[string]interface{}{"timesheet_id": id, "worker_id": actor.WorkerID},
	); err != nil {
		s.logger.Error("failed to notify admins of submission", "timesheet_id", id, "error", err)
	}

	return timesheet.ToResponse(ts), nil
}

// Withdraw implements timesheet.Service.
func (s *TimesheetServiceImpl) Withdraw(ctx context.Context, actor worker.Actor, id string) (timesheet.Response, error) {
	ts, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return timesheet.Response{}, err
	}
	if ts.WorkerID != actor.WorkerID {
		return timesheet.Response{}, timesheet.ErrUnauthorized
	}
	if ts.Status != timesheet.StatusSubmitted {
		return timesheet.Response{}, timesheet.ErrNotSubmitted
	}

	ts.Status = timesheet.StatusDraft
	ts.SubmittedAt = nil

	if err := s.Repository.UpdateStatus(ctx, ts, timesheet.StatusSubmitted); err != nil {
		return timesheet.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionSheetWithdrawn,
		TargetType: "timesheet",
		TargetID:   id,
	})

	return timesheet.ToResponse(ts), nil
}

// Review implements timesheet.Service. Approval cascades APPROVED to every
// linked entry; rejection unlinks them, returning them to the eligible pool.
// The timesheet itself stays REJECTED; resubmission means a fresh draft.
func (s *TimesheetServiceImpl) Review(ctx context.Context, actor worker.Actor, req timesheet.ReviewRequest) (timesheet.Response, error) {
	if !actor.IsAdmin() {
		return timesheet.Response{}, timesheet.ErrUnauthorized
	}

	ts, err := s.Repository.GetByID(ctx, req.ID, actor.CompanyID)
	if err != nil {
		return timesheet.Response{}, err
	}
	if ts.Status != timesheet.StatusSubmitted {
		return timesheet.Response{}, timesheet.ErrNotSubmitted
	}

	now := time.Now().UTC()
	ts.ReviewedBy = &actor.WorkerID
	ts.ReviewedAt = &now
	ts.ReviewNotes = req.Notes
	if req.Approve {
		ts.Status = timesheet.StatusApproved
	} else {
		ts.Status = timesheet.StatusRejected
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.Repository.UpdateStatus(txCtx, ts, timesheet.StatusSubmitted); err != nil {
			return err
		}

		if req.Approve {
			_, err := s.timeEntryRepo.ApproveByTimesheet(txCtx, req.ID, actor.WorkerID, now)
			return err
		}
		_, err := s.timeEntryRepo.UnlinkTimesheet(txCtx, req.ID)
		return err
	})
	if err != nil {
		return timesheet.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionSheetReviewed,
		TargetType: "timesheet",
		TargetID:   req.ID,
		Details:    map[string]interface{}{"approved": req.Approve},
	})

	outcome := "rejected"
	if req.Approve {
		outcome = "approved"
	}
	if err := s.notifier.Queue(ctx, notification.CreateNotificationRequest{
		CompanyID:   actor.CompanyID,
		RecipientID: ts.WorkerID,
		SenderID:    &actor.WorkerID,
		Type:        notification.TypeTimesheetReviewed,
		Title:       "Timesheet reviewed",
		Message:     fmt.Sprintf("Your timesheet has been %s", outcome),
		Data:        map[string]interface{}{"timesheet_id": req.ID, "approved": req.Approve},
	}); err != nil {
		s.logger.Error("failed to queue review notification", "timesheet_id", req.ID, "error", err)
	}

	if s.emailService != nil {
		if w, lookupErr := s.workerRepo.GetByID(ctx, ts.WorkerID, actor.CompanyID); lookupErr != nil {
			s.logger.Warn("failed to look up worker for review email", "worker_id", ts.WorkerID, "error", lookupErr)
		} else {
			name := "Timesheet"
			if ts.Name != nil {
				name = *ts.Name
			}
			if mailErr := s.emailService.SendTimesheetReviewed(w.Email, w.FullName, name, outcome, req.Notes); mailErr != nil {
				s.logger.Warn("failed to send review email", "to", w.Email, "error", mailErr)
			}
		}
	}

	return timesheet.ToResponse(ts), nil
}

// Delete implements timesheet.Service. Entries are unlinked, never deleted.
func (s *TimesheetServiceImpl) Delete(ctx context.Context, actor worker.Actor, id string) error {
	ts, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return err
	}
	if ts.WorkerID != actor.WorkerID && !actor.IsAdmin() {
		return timesheet.ErrUnauthorized
	}
	if ts.Status != timesheet.StatusDraft {
		return timesheet.ErrNotDraft
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.timeEntryRepo.UnlinkTimesheet(txCtx, id); err != nil {
			return err
		}
		return s.Repository.Delete(txCtx, id, actor.CompanyID)
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionSheetDeleted,
		TargetType: "timesheet",
		TargetID:   id,
	})

	return nil
}

// GetByID implements timesheet.Service.
func (s *TimesheetServiceImpl) GetByID(ctx context.Context, actor worker.Actor, id string) (timesheet.Response, error) {
	ts, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return timesheet.Response{}, err
	}
	if ts.WorkerID != actor.WorkerID && !actor.IsAdmin() {
		return timesheet.Response{}, timesheet.ErrUnauthorized
	}
	return timesheet.ToResponse(ts), nil
}

// ListMine implements timesheet.Service.
func (s *TimesheetServiceImpl) ListMine(ctx context.Context, actor worker.Actor, page, limit int) (timesheet.ListResponse, error) {
	sheets, total, err := s.Repository.ListMine(ctx, actor.WorkerID, actor.CompanyID, page, limit)
	if err != nil {
		return timesheet.ListResponse{}, err
	}
	return buildListResponse(sheets, total, page, limit), nil
}

// List implements timesheet.Service.
func (s *TimesheetServiceImpl) List(ctx context.Context, actor worker.Actor, status *timesheet.Status, page, limit int) (timesheet.ListResponse, error) {
	if !actor.IsAdmin() {
		return timesheet.ListResponse{}, timesheet.ErrUnauthorized
	}

	sheets, total, err := s.Repository.List(ctx, actor.CompanyID, status, page, limit)
	if err != nil {
		return timesheet.ListResponse{}, err
	}
	return buildListResponse(sheets, total, page, limit), nil
}

func buildListResponse(sheets []timesheet.Timesheet, total int64, page, limit int) timesheet.ListResponse {
	if limit == 0 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	responses := make([]timesheet.Response, 0, len(sheets))
	for _, ts := range sheets {
		responses = append(responses, timesheet.ToResponse(ts))
	}

	return timesheet.ListResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Timesheets: responses,
	}
}
