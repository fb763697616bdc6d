package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/payperiod"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
)

// PayPeriodJobs keeps every company's current pay period materialized so
// clock-outs and timesheets always have a period to land in.
type PayPeriodJobs struct {
	companyRepo      company.Repository
	payPeriodService payperiod.Service
	logger           *slog.Logger
}

func NewPayPeriodJobs(
	companyRepo company.Repository,
	payPeriodService payperiod.Service,
	logger *slog.Logger,
) *PayPeriodJobs {
	return &PayPeriodJobs{
		companyRepo:      companyRepo,
		payPeriodService: payPeriodService,
		logger:           logger,
	}
}

// RegisterJobs adds all pay period jobs to the scheduler.
func (j *PayPeriodJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("ensure_current_pay_periods", 1*time.Hour, j.EnsureCurrentPeriods)
}

// EnsureCurrentPeriods walks every company and materializes the period
// covering now. Companies without a schedule are skipped; EnsureCurrent is
// idempotent so re-runs are cheap.
func (j *PayPeriodJobs) EnsureCurrentPeriods(ctx context.Context) error {
	companies, err := j.companyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	ensured := 0
	var failed int
	for _, c := range companies {
		actor := worker.Actor{CompanyID: c.ID, Role: worker.RoleAdmin}

		resp, err := j.payPeriodService.EnsureCurrent(ctx, actor)
		if err != nil {
			failed++
			j.logger.Error("failed to ensure current pay period",
				"company_id", c.ID, "error", err)
			continue
		}
		if resp != nil {
			ensured++
		}
	}

	if failed > 0 {
		j.logger.Info("ensured current pay periods",
			"companies", len(companies), "ensured", ensured, "failed", failed)
	}
	if failed > 0 {
		return fmt.Errorf("failed to ensure pay periods for %d of %d companies", failed, len(companies))
	}
	return nil
}
