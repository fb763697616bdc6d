package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/audit"
	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/service/payperiod"
)

type CompanyServiceImpl struct {
	company.Repository
	auditRecorder audit.Recorder
	logger        *slog.Logger
}

func NewCompanyService(
	repo company.Repository,
	auditRecorder audit.Recorder,
	logger *slog.Logger,
) company.Service {
	return &CompanyServiceImpl{
		Repository:    repo,
		auditRecorder: auditRecorder,
		logger:        logger,
	}
}

func (s *CompanyServiceImpl) recordAudit(ctx context.Context, event audit.Event) {
	if err := s.auditRecorder.Record(ctx, event); err != nil {
		s.logger.Error("failed to record audit event", "action", event.Action, "error", err)
	}
}

// GetOvertimeSettings implements company.Service.
func (s *CompanyServiceImpl) GetOvertimeSettings(ctx context.Context, actor worker.Actor) (company.OvertimeSettingsResponse, error) {
	settings, err := s.Repository.GetOvertimeSettings(ctx, actor.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrSettingsNotFound) {
			return company.ToSettingsResponse(company.DefaultOvertimeSettings(actor.CompanyID)), nil
		}
		return company.OvertimeSettingsResponse{}, fmt.Errorf("failed to get overtime settings: %w", err)
	}
	return company.ToSettingsResponse(settings), nil
}

// UpdateOvertimeSettings implements company.Service.
func (s *CompanyServiceImpl) UpdateOvertimeSettings(ctx context.Context, actor worker.Actor, req company.OvertimeSettingsRequest) (company.OvertimeSettingsResponse, error) {
	if !actor.IsAdmin() {
		return company.OvertimeSettingsResponse{}, worker.ErrAdminAccessRequired
	}

	if err := req.Validate(); err != nil {
		return company.OvertimeSettingsResponse{}, err
	}

	saved, err := s.Repository.UpsertOvertimeSettings(ctx, company.OvertimeSettings{
		CompanyID:             actor.CompanyID,
		DailyOtThresholdMins:  req.DailyOtThresholdMins,
		DailyDtThresholdMins:  req.DailyDtThresholdMins,
		WeeklyOtThresholdMins: req.WeeklyOtThresholdMins,
		OtMultiplier:          req.OtMultiplier,
		DtMultiplier:          req.DtMultiplier,
	})
	if err != nil {
		return company.OvertimeSettingsResponse{}, fmt.Errorf("failed to save overtime settings: %w", err)
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionSettingsUpdated,
		TargetType: "company",
		TargetID:   actor.CompanyID,
		Details: map[string]interface{}{
			"version":                  saved.Version,
			"daily_ot_threshold_mins":  saved.DailyOtThresholdMins,
			"daily_dt_threshold_mins":  saved.DailyDtThresholdMins,
			"weekly_ot_threshold_mins": saved.WeeklyOtThresholdMins,
		},
	})

	return company.ToSettingsResponse(saved), nil
}

// GetSchedule implements company.Service.
func (s *CompanyServiceImpl) GetSchedule(ctx context.Context, actor worker.Actor) (company.ScheduleResponse, error) {
	schedule, err := s.Repository.GetPayPeriodSchedule(ctx, actor.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrNoScheduleSet) {
			return company.ScheduleResponse{}, err
		}
		return company.ScheduleResponse{}, fmt.Errorf("failed to get pay period schedule: %w", err)
	}
	return company.ToScheduleResponse(schedule), nil
}

// UpdateSchedule implements company.Service. The rule is dry-run against
// today's date before saving so a bad combination never reaches the period
// generator.
func (s *CompanyServiceImpl) UpdateSchedule(ctx context.Context, actor worker.Actor, req company.ScheduleRequest) (company.ScheduleResponse, error) {
	if !actor.IsAdmin() {
		return company.ScheduleResponse{}, worker.ErrAdminAccessRequired
	}

	if err := req.Validate(); err != nil {
		return company.ScheduleResponse{}, err
	}

	schedule := company.PayPeriodSchedule{
		CompanyID:  actor.CompanyID,
		Type:       company.ScheduleType(req.Type),
		StartDay:   req.StartDay,
		LengthDays: req.LengthDays,
	}
	if req.AnchorDate != nil {
		anchor, err := time.Parse("2006-01-02", *req.AnchorDate)
		if err != nil {
			return company.ScheduleResponse{}, fmt.Errorf("failed to parse anchor date: %w", err)
		}
		anchor = anchor.UTC()
		schedule.AnchorDate = &anchor
	}

	if _, _, err := payperiod.ComputePeriod(schedule, time.Now().UTC()); err != nil {
		return company.ScheduleResponse{}, err
	}

	saved, err := s.Repository.UpsertPayPeriodSchedule(ctx, schedule)
	if err != nil {
		return company.ScheduleResponse{}, fmt.Errorf("failed to save pay period schedule: %w", err)
	}

	s.recordAudit(ctx, audit.Event{
		CompanyID:  actor.CompanyID,
		ActorID:    actor.WorkerID,
		Action:     audit.ActionScheduleUpdated,
		TargetType: "company",
		TargetID:   actor.CompanyID,
		Details: map[string]interface{}{
			"type":      string(saved.Type),
			"start_day": saved.StartDay,
		},
	})

	return company.ToScheduleResponse(saved), nil
}
