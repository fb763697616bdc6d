package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/payperiod"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePeriodRepo struct {
	payperiod.Repository
	periods map[string]payperiod.PayPeriod
}

func (f *fakePeriodRepo) GetByID(ctx context.Context, id string, companyID string) (payperiod.PayPeriod, error) {
	p, ok := f.periods[id]
	if !ok || p.CompanyID != companyID {
		return payperiod.PayPeriod{}, payperiod.ErrPeriodNotFound
	}
	return p, nil
}

type fakeEntryRepo struct {
	timeentry.Repository
	entries []timeentry.TimeEntry
}

func (f *fakeEntryRepo) ListInRange(ctx context.Context, companyID string, start, end time.Time) ([]timeentry.TimeEntry, error) {
	return f.entries, nil
}

func strptr(s string) *string { return &s }

func lockedPeriod() payperiod.PayPeriod {
	return payperiod.PayPeriod{
		ID:        "period-1",
		CompanyID: "company-1",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC),
		Status:    payperiod.StatusLocked,
	}
}

func adminActor() worker.Actor {
	return worker.Actor{WorkerID: "admin-1", CompanyID: "company-1", Role: worker.RoleAdmin}
}

func TestPeriodCSV_RequiresAdmin(t *testing.T) {
	svc := NewReportService(nil, &fakePeriodRepo{}, &fakeEntryRepo{})
	actor := worker.Actor{WorkerID: "worker-1", CompanyID: "company-1", Role: worker.RoleWorker}

	_, _, err := svc.PeriodCSV(context.Background(), actor, "period-1")
	assert.ErrorIs(t, err, worker.ErrAdminAccessRequired)
}

func TestPeriodCSV_OpenPeriodRefused(t *testing.T) {
	open := lockedPeriod()
	open.Status = payperiod.StatusOpen
	svc := NewReportService(nil, &fakePeriodRepo{
		periods: map[string]payperiod.PayPeriod{"period-1": open},
	}, &fakeEntryRepo{})

	_, _, err := svc.PeriodCSV(context.Background(), adminActor(), "period-1")
	assert.ErrorIs(t, err, payperiod.ErrNotLocked)
}

func TestPeriodCSV_RowPerEntryWithTotals(t *testing.T) {
	out1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	out2 := time.Date(2026, 3, 3, 18, 30, 0, 0, time.UTC)
	rate := decimal.NewFromInt(20)

	entries := &fakeEntryRepo{entries: []timeentry.TimeEntry{
		{
			ID:             "entry-1",
			WorkerID:       "worker-1",
			CompanyID:      "company-1",
			JobID:          strptr("job-1"),
			EntryType:      timeentry.TypeJobTime,
			ClockIn:        time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
			ClockOut:       &out1,
			ApprovalStatus: timeentry.StatusApproved,
			HourlyRate:     rate,
			RegularMinutes: 120,
			RegularPay:     decimal.NewFromInt(40),
			TotalPay:       decimal.NewFromInt(40),
			WorkerName:     strptr("Jo Field"),
			JobName:        strptr("Main Street Site"),
		},
		{
			ID:              "entry-2",
			WorkerID:        "worker-2",
			CompanyID:       "company-1",
			EntryType:       timeentry.TypeTravelTime,
			ClockIn:         time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC),
			ClockOut:        &out2,
			BreakMinutes:    30,
			ApprovalStatus:  timeentry.StatusPending,
			HourlyRate:      rate,
			RegularMinutes:  480,
			OvertimeMinutes: 120,
			RegularPay:      decimal.NewFromInt(160),
			OvertimePay:     decimal.NewFromInt(60),
			TotalPay:        decimal.NewFromInt(220),
		},
	}}
	svc := NewReportService(nil, &fakePeriodRepo{
		periods: map[string]payperiod.PayPeriod{"period-1": lockedPeriod()},
	}, entries)

	doc, filename, err := svc.PeriodCSV(context.Background(), adminActor(), "period-1")
	require.NoError(t, err)
	assert.Equal(t, "pay-period_2026-03-01_2026-03-14.csv", filename)

	rows, err := csv.NewReader(bytes.NewReader(doc)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "header, one row per entry, totals")

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"Jo Field", "Main Street Site", "2026-03-02",
		"2026-03-02T08:00:00Z", "2026-03-02T10:00:00Z", "0",
		"2.00", "0.00", "0.00", "20.00",
		"40.00", "0.00", "0.00", "40.00", "APPROVED",
	}, rows[1])

	// Joined names missing: the worker id stands in and the job column is blank.
	assert.Equal(t, "worker-2", rows[2][0])
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "30", rows[2][5])
	assert.Equal(t, "8.00", rows[2][6])
	assert.Equal(t, "2.00", rows[2][7])
	assert.Equal(t, "PENDING", rows[2][14])

	assert.Equal(t, []string{
		"TOTAL", "", "", "", "", "30",
		"10.00", "2.00", "0.00", "",
		"200.00", "60.00", "0.00", "260.00", "",
	}, rows[3])
}

func TestPeriodCSV_ExportedPeriodStillRenders(t *testing.T) {
	exported := lockedPeriod()
	exported.Status = payperiod.StatusExported
	svc := NewReportService(nil, &fakePeriodRepo{
		periods: map[string]payperiod.PayPeriod{"period-1": exported},
	}, &fakeEntryRepo{})

	doc, _, err := svc.PeriodCSV(context.Background(), adminActor(), "period-1")
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(doc)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header and totals for an empty period")
	assert.Equal(t, "TOTAL", rows[1][0])
}
