package payperiod

import (
	"testing"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/payperiod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOf(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

func TestComputePeriod_Weekly(t *testing.T) {
	// Monday-anchored week; reference is a Wednesday.
	schedule := company.PayPeriodSchedule{Type: company.ScheduleWeekly, StartDay: 1}
	ref := time.Date(2026, time.March, 11, 15, 30, 0, 0, time.UTC) // Wednesday

	start, end, err := ComputePeriod(schedule, ref)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.March, 9), start) // prior Monday
	assert.Equal(t, endOf(2026, time.March, 15), end) // through Sunday

	t.Run("reference on the start day itself", func(t *testing.T) {
		start, end, err := ComputePeriod(schedule, date(2026, time.March, 9).Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.March, 9), start)
		assert.Equal(t, endOf(2026, time.March, 15), end)
	})

	t.Run("sunday start day", func(t *testing.T) {
		sunday := company.PayPeriodSchedule{Type: company.ScheduleWeekly, StartDay: 0}
		start, end, err := ComputePeriod(sunday, ref)
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.March, 8), start)
		assert.Equal(t, endOf(2026, time.March, 14), end)
	})

	t.Run("invalid start day", func(t *testing.T) {
		bad := company.PayPeriodSchedule{Type: company.ScheduleWeekly, StartDay: 7}
		_, _, err := ComputePeriod(bad, ref)
		assert.ErrorIs(t, err, payperiod.ErrInvalidSchedule)
	})
}

func TestComputePeriod_Biweekly(t *testing.T) {
	anchor := date(2026, time.January, 5) // a Monday
	schedule := company.PayPeriodSchedule{Type: company.ScheduleBiweekly, AnchorDate: &anchor}

	t.Run("inside the first window", func(t *testing.T) {
		start, end, err := ComputePeriod(schedule, date(2026, time.January, 10))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.January, 5), start)
		assert.Equal(t, endOf(2026, time.January, 18), end)
	})

	t.Run("a later window", func(t *testing.T) {
		start, end, err := ComputePeriod(schedule, date(2026, time.February, 3))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.February, 2), start)
		assert.Equal(t, endOf(2026, time.February, 15), end)
	})

	t.Run("reference before the anchor", func(t *testing.T) {
		start, end, err := ComputePeriod(schedule, date(2026, time.January, 2))
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.December, 22), start)
		assert.Equal(t, endOf(2026, time.January, 4), end)
	})

	t.Run("missing anchor", func(t *testing.T) {
		bad := company.PayPeriodSchedule{Type: company.ScheduleBiweekly}
		_, _, err := ComputePeriod(bad, date(2026, time.January, 10))
		assert.ErrorIs(t, err, payperiod.ErrInvalidSchedule)
	})
}

func TestComputePeriod_Semimonthly(t *testing.T) {
	schedule := company.PayPeriodSchedule{Type: company.ScheduleSemimonthly, StartDay: 1}

	t.Run("first half", func(t *testing.T) {
		start, end, err := ComputePeriod(schedule, date(2026, time.April, 10))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.April, 1), start)
		assert.Equal(t, endOf(2026, time.April, 15), end)
	})

	t.Run("second half runs to end of month", func(t *testing.T) {
		start, end, err := ComputePeriod(schedule, date(2026, time.April, 20))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.April, 16), start)
		assert.Equal(t, endOf(2026, time.April, 30), end)
	})

	t.Run("second half of february", func(t *testing.T) {
		start, end, err := ComputePeriod(schedule, date(2026, time.February, 25))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.February, 16), start)
		assert.Equal(t, endOf(2026, time.February, 28), end)
	})

	t.Run("nonzero start day before start", func(t *testing.T) {
		s5 := company.PayPeriodSchedule{Type: company.ScheduleSemimonthly, StartDay: 5}
		start, end, err := ComputePeriod(s5, date(2026, time.April, 2))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.March, 16), start)
		assert.Equal(t, endOf(2026, time.April, 4), end)
	})

	t.Run("invalid start day", func(t *testing.T) {
		bad := company.PayPeriodSchedule{Type: company.ScheduleSemimonthly, StartDay: 16}
		_, _, err := ComputePeriod(bad, date(2026, time.April, 10))
		assert.ErrorIs(t, err, payperiod.ErrInvalidSchedule)
	})
}

func TestComputePeriod_Monthly(t *testing.T) {
	t.Run("first of month", func(t *testing.T) {
		schedule := company.PayPeriodSchedule{Type: company.ScheduleMonthly, StartDay: 1}
		start, end, err := ComputePeriod(schedule, date(2026, time.April, 18))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.April, 1), start)
		assert.Equal(t, endOf(2026, time.April, 30), end)
	})

	t.Run("mid-month start day, reference before it", func(t *testing.T) {
		schedule := company.PayPeriodSchedule{Type: company.ScheduleMonthly, StartDay: 15}
		start, end, err := ComputePeriod(schedule, date(2026, time.April, 10))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.March, 15), start)
		assert.Equal(t, endOf(2026, time.April, 14), end)
	})

	t.Run("mid-month start day, reference after it", func(t *testing.T) {
		schedule := company.PayPeriodSchedule{Type: company.ScheduleMonthly, StartDay: 15}
		start, end, err := ComputePeriod(schedule, date(2026, time.April, 20))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.April, 15), start)
		assert.Equal(t, endOf(2026, time.May, 14), end)
	})

	t.Run("year boundary", func(t *testing.T) {
		schedule := company.PayPeriodSchedule{Type: company.ScheduleMonthly, StartDay: 1}
		start, end, err := ComputePeriod(schedule, date(2025, time.December, 31))
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.December, 1), start)
		assert.Equal(t, endOf(2025, time.December, 31), end)
	})
}

func TestComputePeriod_Custom(t *testing.T) {
	anchor := date(2026, time.January, 1)

	t.Run("ten day windows", func(t *testing.T) {
		schedule := company.PayPeriodSchedule{Type: company.ScheduleCustom, AnchorDate: &anchor, LengthDays: 10}
		start, end, err := ComputePeriod(schedule, date(2026, time.January, 25))
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.January, 21), start)
		assert.Equal(t, endOf(2026, time.January, 30), end)
	})

	t.Run("length out of bounds", func(t *testing.T) {
		schedule := company.PayPeriodSchedule{Type: company.ScheduleCustom, AnchorDate: &anchor, LengthDays: 45}
		_, _, err := ComputePeriod(schedule, date(2026, time.January, 25))
		assert.ErrorIs(t, err, payperiod.ErrInvalidSchedule)
	})
}

func TestComputePeriod_Idempotent(t *testing.T) {
	anchor := date(2026, time.January, 5)
	schedules := []company.PayPeriodSchedule{
		{Type: company.ScheduleWeekly, StartDay: 1},
		{Type: company.ScheduleBiweekly, AnchorDate: &anchor},
		{Type: company.ScheduleSemimonthly, StartDay: 1},
		{Type: company.ScheduleMonthly, StartDay: 1},
		{Type: company.ScheduleCustom, AnchorDate: &anchor, LengthDays: 7},
	}

	// Any instant inside a computed window must map back to that same window.
	ref := time.Date(2026, time.June, 17, 9, 45, 12, 0, time.UTC)
	for _, s := range schedules {
		start, end, err := ComputePeriod(s, ref)
		require.NoError(t, err)
		assert.True(t, !ref.Before(start) && !ref.After(end), "%s: ref outside [%s, %s]", s.Type, start, end)

		again, againEnd, err := ComputePeriod(s, start.Add(30*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, start, again, "%s window shifted", s.Type)
		assert.Equal(t, end, againEnd, "%s window shifted", s.Type)
	}
}
