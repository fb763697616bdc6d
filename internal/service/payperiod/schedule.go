package payperiod

import (
	"fmt"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/payperiod"
)

// ComputePeriod resolves the pay-period window covering the reference
// instant for a company's recurrence rule. Pure date math: same inputs always
// yield the same window.
//
// All arithmetic happens in UTC. The reference is first normalized to noon so
// that date subtraction never straddles a daylight-saving discontinuity, and
// the returned bounds are day-granular: start at 00:00:00.000, end at
// 23:59:59.999.
func ComputePeriod(schedule company.PayPeriodSchedule, reference time.Time) (time.Time, time.Time, error) {
	ref := noonUTC(reference)

	switch schedule.Type {
	case company.ScheduleWeekly:
		return computeWeekly(schedule.StartDay, ref)
	case company.ScheduleBiweekly:
		return computeAnchored(schedule.AnchorDate, 14, ref)
	case company.ScheduleSemimonthly:
		return computeSemimonthly(schedule.StartDay, ref)
	case company.ScheduleMonthly:
		return computeMonthly(schedule.StartDay, ref)
	case company.ScheduleCustom:
		if schedule.LengthDays < 1 || schedule.LengthDays > 31 {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: length_days must be between 1 and 31", payperiod.ErrInvalidSchedule)
		}
		return computeAnchored(schedule.AnchorDate, schedule.LengthDays, ref)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown schedule type %q", payperiod.ErrInvalidSchedule, schedule.Type)
	}
}

func computeWeekly(startDay int, ref time.Time) (time.Time, time.Time, error) {
	if startDay < 0 || startDay > 6 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: weekly start_day must be between 0 (Sunday) and 6", payperiod.ErrInvalidSchedule)
	}

	// Walk back to the most recent occurrence of startDay on/before ref.
	delta := (int(ref.Weekday()) - startDay + 7) % 7
	start := ref.AddDate(0, 0, -delta)
	end := start.AddDate(0, 0, 6)

	return dayStart(start), dayEnd(end), nil
}

func computeAnchored(anchor *time.Time, lengthDays int, ref time.Time) (time.Time, time.Time, error) {
	if anchor == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: anchor_date is required", payperiod.ErrInvalidSchedule)
	}

	anchorNoon := noonUTC(*anchor)
	elapsed := daysBetween(anchorNoon, ref)
	index := floorDiv(elapsed, lengthDays)

	start := anchorNoon.AddDate(0, 0, index*lengthDays)
	end := start.AddDate(0, 0, lengthDays-1)

	return dayStart(start), dayEnd(end), nil
}

func computeSemimonthly(startDay int, ref time.Time) (time.Time, time.Time, error) {
	if startDay < 1 || startDay > 15 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: semimonthly start_day must be between 1 and 15", payperiod.ErrInvalidSchedule)
	}

	year, month, day := ref.Date()

	switch {
	case day >= 16:
		// Second half: the 16th through the day before next month's startDay.
		// With startDay 1 the end lands on day zero of the next month, which
		// normalizes to the last day of this one.
		start := time.Date(year, month, 16, 12, 0, 0, 0, time.UTC)
		end := time.Date(year, month+1, startDay-1, 12, 0, 0, 0, time.UTC)
		return dayStart(start), dayEnd(end), nil
	case day >= startDay:
		start := time.Date(year, month, startDay, 12, 0, 0, 0, time.UTC)
		end := time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
		return dayStart(start), dayEnd(end), nil
	default:
		// Before this month's startDay: still inside the previous month's
		// second half.
		start := time.Date(year, month-1, 16, 12, 0, 0, 0, time.UTC)
		end := time.Date(year, month, startDay-1, 12, 0, 0, 0, time.UTC)
		return dayStart(start), dayEnd(end), nil
	}
}

func computeMonthly(startDay int, ref time.Time) (time.Time, time.Time, error) {
	if startDay < 1 || startDay > 28 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: monthly start_day must be between 1 and 28", payperiod.ErrInvalidSchedule)
	}

	year, month, day := ref.Date()

	startMonth := month
	if day < startDay {
		startMonth--
	}

	start := time.Date(year, startMonth, startDay, 12, 0, 0, 0, time.UTC)
	end := time.Date(year, startMonth+1, startDay-1, 12, 0, 0, 0, time.UTC)

	return dayStart(start), dayEnd(end), nil
}

func noonUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func dayStart(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dayEnd(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// daysBetween counts whole days from a to b; both must be noon-normalized so
// the division is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// floorDiv rounds toward negative infinity, unlike Go's integer division.
// References before the anchor land in the window preceding it.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
