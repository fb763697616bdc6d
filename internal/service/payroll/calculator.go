package payroll

import (
	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/job"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// Allocation is the result of splitting one shift into pay buckets.
type Allocation struct {
	RegularMinutes    int
	OvertimeMinutes   int
	DoubletimeMinutes int
	RegularPay        decimal.Decimal
	OvertimePay       decimal.Decimal
	DoubletimePay     decimal.Decimal
	TotalPay          decimal.Decimal
}

var minutesPerHour = decimal.NewFromInt(60)

// Allocate splits a shift's worked minutes into regular, overtime and
// doubletime buckets and prices each one. Pure: it depends on nothing but its
// arguments.
//
// The split happens in two passes. The daily pass carves the shift against the
// company's daily thresholds. The weekly pass then reclassifies regular
// minutes that push the worker's running weekly total over the weekly
// threshold into overtime. Doubletime minutes are never reclassified by the
// weekly pass; they already earn the higher multiplier.
//
// Each bucket's pay is rounded to 2 decimal places independently before the
// buckets are summed.
func Allocate(durationMinutes int, hourlyRate decimal.Decimal, settings company.OvertimeSettings, weeklyMinutesBefore int) Allocation {
	if durationMinutes < 0 {
		durationMinutes = 0
	}

	// Daily split
	regular := durationMinutes
	overtime := 0
	doubletime := 0

	if durationMinutes > settings.DailyOtThresholdMins {
		regular = settings.DailyOtThresholdMins
		overtime = durationMinutes - settings.DailyOtThresholdMins
	}
	if durationMinutes > settings.DailyDtThresholdMins {
		overtime = settings.DailyDtThresholdMins - settings.DailyOtThresholdMins
		doubletime = durationMinutes - settings.DailyDtThresholdMins
	}

	// Weekly reallocation
	if weeklyMinutesBefore+regular > settings.WeeklyOtThresholdMins {
		excess := weeklyMinutesBefore + regular - settings.WeeklyOtThresholdMins
		if excess > regular {
			excess = regular
		}
		regular -= excess
		overtime += excess
	}

	regularPay := bucketPay(regular, hourlyRate, decimal.NewFromInt(1))
	overtimePay := bucketPay(overtime, hourlyRate, settings.OtMultiplier)
	doubletimePay := bucketPay(doubletime, hourlyRate, settings.DtMultiplier)

	return Allocation{
		RegularMinutes:    regular,
		OvertimeMinutes:   overtime,
		DoubletimeMinutes: doubletime,
		RegularPay:        regularPay,
		OvertimePay:       overtimePay,
		DoubletimePay:     doubletimePay,
		TotalPay:          regularPay.Add(overtimePay).Add(doubletimePay),
	}
}

func bucketPay(minutes int, rate decimal.Decimal, multiplier decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).
		Div(minutesPerHour).
		Mul(rate).
		Mul(multiplier).
		Round(2)
}

// ResolveRate picks the effective hourly rate for a shift. Precedence, highest
// first: the worker's per-job override, the job's default rate, the worker's
// default rate. No rate anywhere yields zero; an entry may exist with unknown
// pay.
func ResolveRate(w worker.Worker, j *job.Job, override *worker.JobRate) decimal.Decimal {
	if override != nil {
		return override.HourlyRate
	}
	if j != nil && j.HourlyRate != nil {
		return *j.HourlyRate
	}
	if w.HourlyRate != nil {
		return *w.HourlyRate
	}
	return decimal.Zero
}
