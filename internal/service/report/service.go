package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/payperiod"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// ReportService produces payroll-facing reports over pay periods.
type ReportService interface {
	// PeriodSummary aggregates a period's minutes and labor cost per worker.
	PeriodSummary(ctx context.Context, actor worker.Actor, periodID string) (payperiod.Summary, error)

	// PeriodCSV renders a locked period's entries as CSV, one row per entry
	// with a trailing totals row, suitable for handing to an external payroll
	// system. Returns the document and a suggested filename. Open periods are
	// refused; the export view is a settled record, not a live one.
	PeriodCSV(ctx context.Context, actor worker.Actor, periodID string) ([]byte, string, error)
}

type reportServiceImpl struct {
	payPeriodService payperiod.Service
	payPeriodRepo    payperiod.Repository
	timeEntryRepo    timeentry.Repository
}

func NewReportService(
	payPeriodService payperiod.Service,
	payPeriodRepo payperiod.Repository,
	timeEntryRepo timeentry.Repository,
) ReportService {
	return &reportServiceImpl{
		payPeriodService: payPeriodService,
		payPeriodRepo:    payPeriodRepo,
		timeEntryRepo:    timeEntryRepo,
	}
}

// PeriodSummary implements ReportService.
func (s *reportServiceImpl) PeriodSummary(ctx context.Context, actor worker.Actor, periodID string) (payperiod.Summary, error) {
	return s.payPeriodService.Aggregate(ctx, actor, periodID)
}

var csvHeader = []string{
	"worker", "job", "date", "clock_in", "clock_out", "break_minutes",
	"regular_hours", "overtime_hours", "doubletime_hours", "hourly_rate",
	"regular_pay", "overtime_pay", "doubletime_pay", "total_pay", "status",
}

// PeriodCSV implements ReportService.
func (s *reportServiceImpl) PeriodCSV(ctx context.Context, actor worker.Actor, periodID string) ([]byte, string, error) {
	if !actor.IsAdmin() {
		return nil, "", worker.ErrAdminAccessRequired
	}

	period, err := s.payPeriodRepo.GetByID(ctx, periodID, actor.CompanyID)
	if err != nil {
		return nil, "", err
	}
	if period.Status == payperiod.StatusOpen {
		return nil, "", payperiod.ErrNotLocked
	}

	entries, err := s.timeEntryRepo.ListInRange(ctx, actor.CompanyID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list period entries: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, "", fmt.Errorf("failed to write csv header: %w", err)
	}

	var totalBreak, totalRegular, totalOvertime, totalDoubletime int
	var totalRegularPay, totalOvertimePay, totalDoubletimePay, totalPay decimal.Decimal

	for _, e := range entries {
		workerName := e.WorkerID
		if e.WorkerName != nil {
			workerName = *e.WorkerName
		}
		jobName := ""
		if e.JobName != nil {
			jobName = *e.JobName
		}
		clockOut := ""
		if e.ClockOut != nil {
			clockOut = e.ClockOut.UTC().Format(time.RFC3339)
		}

		row := []string{
			workerName,
			jobName,
			e.ClockIn.UTC().Format("2006-01-02"),
			e.ClockIn.UTC().Format(time.RFC3339),
			clockOut,
			strconv.Itoa(e.BreakMinutes),
			minutesToHours(e.RegularMinutes),
			minutesToHours(e.OvertimeMinutes),
			minutesToHours(e.DoubletimeMinutes),
			e.HourlyRate.StringFixed(2),
			e.RegularPay.StringFixed(2),
			e.OvertimePay.StringFixed(2),
			e.DoubletimePay.StringFixed(2),
			e.TotalPay.StringFixed(2),
			string(e.ApprovalStatus),
		}
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("failed to write csv row: %w", err)
		}

		totalBreak += e.BreakMinutes
		totalRegular += e.RegularMinutes
		totalOvertime += e.OvertimeMinutes
		totalDoubletime += e.DoubletimeMinutes
		totalRegularPay = totalRegularPay.Add(e.RegularPay)
		totalOvertimePay = totalOvertimePay.Add(e.OvertimePay)
		totalDoubletimePay = totalDoubletimePay.Add(e.DoubletimePay)
		totalPay = totalPay.Add(e.TotalPay)
	}

	totals := []string{
		"TOTAL", "", "", "", "",
		strconv.Itoa(totalBreak),
		minutesToHours(totalRegular),
		minutesToHours(totalOvertime),
		minutesToHours(totalDoubletime),
		"",
		totalRegularPay.StringFixed(2),
		totalOvertimePay.StringFixed(2),
		totalDoubletimePay.StringFixed(2),
		totalPay.StringFixed(2),
		"",
	}
	if err := w.Write(totals); err != nil {
		return nil, "", fmt.Errorf("failed to write csv totals: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("pay-period_%s_%s.csv",
		period.StartDate.UTC().Format("2006-01-02"), period.EndDate.UTC().Format("2006-01-02"))

	return buf.Bytes(), filename, nil
}

func minutesToHours(minutes int) string {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).StringFixed(2)
}
