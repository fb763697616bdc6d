package payperiod

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/audit"
	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/payperiod"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
	"github.com/punchd-app/punchd-backend-go/internal/repository/postgresql"
)

type PayPeriodServiceImpl struct {
	db *database.DB
	payperiod.Repository
	companyRepo   company.Repository
	timeEntryRepo timeentry.Repository
	auditRecorder audit.Recorder
	logger        *slog.Logger
}

func NewPayPeriodService(
	db *database.DB,
	repo payperiod.Repository,
	companyRepo company.Repository,
	timeEntryRepo timeentry.Repository,
	auditRecorder audit.Recorder,
	logger *slog.Logger,
) payperiod.Service {
	return &PayPeriodServiceImpl{
		db:            db,
		Repository:    repo,
		companyRepo:   companyRepo,
		timeEntryRepo: timeEntryRepo,
		auditRecorder: auditRecorder,
		logger:        logger,
	}
}

func (s *PayPeriodServiceImpl) recordAudit(ctx context.Context, event audit.Event) {
	if err := s.auditRecorder.Record(ctx, event); err != nil {
		s.logger.Error("failed to record audit event", "action", event.Action, "error", err)
	}
}

// EnsureCurrent implements payperiod.Service. Two concurrent callers may both
// compute the same window and race the insert; the loser re-reads and returns
// the winner's row.
func (s *PayPeriodServiceImpl) EnsureCurrent(ctx context.Context, actor worker.Actor) (*payperiod.Response, error) {
	now := time.Now().UTC()

	existing, err := s.Repository.GetCovering(ctx, actor.CompanyID, now)
	if err == nil {
		resp := payperiod.ToResponse(existing)
		return &resp, nil
	}
	if !errors.Is(err, payperiod.ErrPeriodNotFound) {
		return nil, fmt.Errorf("failed to look up current pay period: %w", err)
	}

	schedule, err := s.companyRepo.GetPayPeriodSchedule(ctx, actor.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrNoScheduleSet) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pay period schedule: %w", err)
	}

	start, end, err := ComputePeriod(schedule, now)
	if err != nil {
		return nil, err
	}

	created, err := s.Repository.Create(ctx, payperiod.PayPeriod{
		CompanyID:     actor.CompanyID,
		StartDate:     start,
		EndDate:       end,
		Status:        payperiod.StatusOpen,
		AutoGenerated: true,
	})
	if err != nil {
		// Lost the creation race: the insert's overlap guard refused the
		// duplicate and the winner's row now covers the instant.
		if errors.Is(err, payperiod.ErrOverlappingPeriod) {
			if covering, getErr := s.Repository.GetCovering(ctx, actor.CompanyID, now); getErr == nil {
				resp := payperiod.ToResponse(covering)
				return &resp, nil
			}
		}
		return nil, fmt.Errorf("failed to create current pay period: %w", err)
	}

	resp := payperiod.ToResponse(created)
	return &resp, nil
}

// Create implements payperiod.Service.
func (s *PayPeriodServiceImpl) Create(ctx context.Context, actor worker.Actor, req payperiod.CreateRequest) (payperiod.Response, error) {
	if !actor.IsAdmin() {
		return payperiod.Response{}, worker.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return payperiod.Response{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	end = end.Add(24*time.Hour - time.Millisecond)

	overlaps, err := s.Repository.Overlaps(ctx, actor.CompanyID, start, end)
	if err != nil {
		return payperiod.Response{}, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if overlaps {
		return payperiod.Response{}, payperiod.ErrOverlappingPeriod
	}

	created, err := s.Repository.Create(ctx, payperiod.PayPeriod{
		CompanyID:     actor.CompanyID,
		StartDate:     start,
		EndDate:       end,
		Status:        payperiod.StatusOpen,
		AutoGenerated: false,
	})
	if err != nil {
		// The insert carries its own overlap guard; a period created between
		// the preflight check and the insert surfaces here.
		if errors.Is(err, payperiod.ErrOverlappingPeriod) {
			return payperiod.Response{}, payperiod.ErrOverlappingPeriod
		}
		return payperiod.Response{}, fmt.Errorf("failed to create pay period: %w", err)
	}

	return payperiod.ToResponse(created), nil
}

// Lock implements payperiod.Service. The status flip and the entry cascade
// run in one transaction: either the period locks with all its entries or
// nothing changes.
func (s *PayPeriodServiceImpl) Lock(ctx context.Context, actor worker.Actor, id string) (payperiod.Response, error) {
	if !actor.IsAdmin() {
		return payperiod.Response{}, worker.ErrAdminAccessRequired
	}

	period, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payperiod.Response{}, err
	}
	if period.Status != payperiod.StatusOpen {
		return payperiod.Response{}, payperiod.ErrAlreadyLocked
	}

	pending, err := s.timeEntryRepo.CountPendingInRange(ctx, actor.CompanyID, period.StartDate, period.EndDate)
	if err != nil {
		return payperiod.Response{}, fmt.Errorf("failed to count pending entries: %w", err)
	}
	if pending > 0 {
		return payperiod.Response{}, &payperiod.PendingApprovalsError{Count: pending}
	}

	now := time.Now().UTC()
	var lockedCount int64

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.Repository.MarkLocked(txCtx, id, actor.CompanyID, actor.WorkerID, now); err != nil {
			return err
		}

		lockedCount, err = s.timeEntryRepo.LockByPeriod(txCtx, actor.CompanyID, id, period.StartDate, period.EndDate, now)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, payperiod.ErrStatusConflict) {
			return payperiod.Response{}, payperiod.ErrAlreadyLocked
		}
		return payperiod.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionPeriodLocked,
		TargetType: "pay_period",
		TargetID:   id,
		Details:    map[string]interface{}{"locked_entries": lockedCount},
	})

	locked, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payperiod.Response{}, err
	}
	return payperiod.ToResponse(locked), nil
}

// Unlock implements payperiod.Service.
func (s *PayPeriodServiceImpl) Unlock(ctx context.Context, actor worker.Actor, req payperiod.UnlockRequest) (payperiod.Response, error) {
	if !actor.IsOwner() {
		return payperiod.Response{}, worker.ErrOwnerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return payperiod.Response{}, err
	}

	period, err := s.Repository.GetByID(ctx, req.ID, actor.CompanyID)
	if err != nil {
		return payperiod.Response{}, err
	}
	if period.Status == payperiod.StatusOpen {
		return payperiod.Response{}, payperiod.ErrNotLocked
	}

	now := time.Now().UTC()
	var unlockedCount int64

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.Repository.MarkUnlocked(txCtx, req.ID, actor.CompanyID, actor.WorkerID, req.Reason, now); err != nil {
			return err
		}

		unlockedCount, err = s.timeEntryRepo.UnlockByPeriod(txCtx, req.ID)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, payperiod.ErrStatusConflict) {
			return payperiod.Response{}, payperiod.ErrNotLocked
		}
		return payperiod.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionPeriodUnlocked,
		TargetType: "pay_period",
		TargetID:   req.ID,
		Details: map[string]interface{}{
			"reason":           req.Reason,
			"unlocked_entries": unlockedCount,
		},
	})

	unlocked, err := s.Repository.GetByID(ctx, req.ID, actor.CompanyID)
	if err != nil {
		return payperiod.Response{}, err
	}
	return payperiod.ToResponse(unlocked), nil
}

// Export implements payperiod.Service.
func (s *PayPeriodServiceImpl) Export(ctx context.Context, actor worker.Actor, id string) (payperiod.Response, error) {
	if !actor.IsAdmin() {
		return payperiod.Response{}, worker.ErrAdminAccessRequired
	}

	period, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payperiod.Response{}, err
	}
	if period.Status != payperiod.StatusLocked {
		return payperiod.Response{}, payperiod.ErrNotLocked
	}

	now := time.Now().UTC()
	if err := s.Repository.MarkExported(ctx, id, actor.CompanyID, actor.WorkerID, now); err != nil {
		if errors.Is(err, payperiod.ErrStatusConflict) {
			return payperiod.Response{}, payperiod.ErrNotLocked
		}
		return payperiod.Response{}, err
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionPeriodExported,
		TargetType: "pay_period",
		TargetID:   id,
	})

	exported, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payperiod.Response{}, err
	}
	return payperiod.ToResponse(exported), nil
}

// GetByID implements payperiod.Service.
func (s *PayPeriodServiceImpl) GetByID(ctx context.Context, actor worker.Actor, id string) (payperiod.Response, error) {
	period, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payperiod.Response{}, err
	}
	return payperiod.ToResponse(period), nil
}

// List implements payperiod.Service.
func (s *PayPeriodServiceImpl) List(ctx context.Context, actor worker.Actor, page, limit int) ([]payperiod.Response, int64, error) {
	periods, total, err := s.Repository.List(ctx, actor.CompanyID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]payperiod.Response, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, payperiod.ToResponse(p))
	}
	return responses, total, nil
}

// Aggregate implements payperiod.Service.
func (s *PayPeriodServiceImpl) Aggregate(ctx context.Context, actor worker.Actor, id string) (payperiod.Summary, error) {
	if !actor.IsAdmin() {
		return payperiod.Summary{}, worker.ErrAdminAccessRequired
	}

	period, err := s.Repository.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payperiod.Summary{}, err
	}

	entries, err := s.timeEntryRepo.ListInRange(ctx, actor.CompanyID, period.StartDate, period.EndDate)
	if err != nil {
		return payperiod.Summary{}, fmt.Errorf("failed to list period entries: %w", err)
	}

	summary := payperiod.Summary{Period: payperiod.ToResponse(period)}
	byWorker := make(map[string]*payperiod.WorkerSummary)
	var order []string

	for _, e := range entries {
		ws, ok := byWorker[e.WorkerID]
		if !ok {
			ws = &payperiod.WorkerSummary{WorkerID: e.WorkerID}
			if e.WorkerName != nil {
				ws.WorkerName = *e.WorkerName
			}
			byWorker[e.WorkerID] = ws
			order = append(order, e.WorkerID)
		}

		ws.RegularMinutes += e.RegularMinutes
		ws.OvertimeMinutes += e.OvertimeMinutes
		ws.DoubletimeMinutes += e.DoubletimeMinutes
		ws.TotalPay = ws.TotalPay.Add(e.TotalPay)

		switch e.ApprovalStatus {
		case timeentry.StatusPending:
			ws.PendingEntries++
		case timeentry.StatusApproved:
			ws.ApprovedEntries++
		}

		summary.RegularMinutes += e.RegularMinutes
		summary.OvertimeMinutes += e.OvertimeMinutes
		summary.DoubletimeMinutes += e.DoubletimeMinutes
		summary.TotalPay = summary.TotalPay.Add(e.TotalPay)
	}

	for _, workerID := range order {
		ws := byWorker[workerID]
		summary.PendingEntries += ws.PendingEntries
		summary.ApprovedEntries += ws.ApprovedEntries
		summary.Workers = append(summary.Workers, *ws)
	}

	return summary, nil
}
