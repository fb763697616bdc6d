package company

import (
	"time"

	"github.com/shopspring/decimal"
)

type Company struct {
	ID        string
	Name      string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OvertimeSettings is the company's typed overtime configuration. Fields are
// explicit and versioned; an update overrides fields one by one rather than
// merging loose JSON.
type OvertimeSettings struct {
	CompanyID             string
	Version               int
	DailyOtThresholdMins  int
	DailyDtThresholdMins  int
	WeeklyOtThresholdMins int
	OtMultiplier          decimal.Decimal
	DtMultiplier          decimal.Decimal
	UpdatedAt             time.Time
}

// Defaults when a company has never configured overtime: OT after 8h/day,
// DT after 12h/day, weekly OT after 40h.
const (
	DefaultDailyOtThresholdMins  = 480
	DefaultDailyDtThresholdMins  = 720
	DefaultWeeklyOtThresholdMins = 2400
)

func DefaultOvertimeSettings(companyID string) OvertimeSettings {
	return OvertimeSettings{
		CompanyID:             companyID,
		Version:               1,
		DailyOtThresholdMins:  DefaultDailyOtThresholdMins,
		DailyDtThresholdMins:  DefaultDailyDtThresholdMins,
		WeeklyOtThresholdMins: DefaultWeeklyOtThresholdMins,
		OtMultiplier:          decimal.NewFromFloat(1.5),
		DtMultiplier:          decimal.NewFromFloat(2.0),
	}
}

// ScheduleType enumerates the supported pay-period recurrence rules.
type ScheduleType string

const (
	ScheduleWeekly      ScheduleType = "WEEKLY"
	ScheduleBiweekly    ScheduleType = "BIWEEKLY"
	ScheduleSemimonthly ScheduleType = "SEMIMONTHLY"
	ScheduleMonthly     ScheduleType = "MONTHLY"
	ScheduleCustom      ScheduleType = "CUSTOM"
)

// PayPeriodSchedule is a company's recurrence rule for pay periods.
//
// StartDay is a weekday (0=Sunday) for WEEKLY and a day of month for
// SEMIMONTHLY/MONTHLY. AnchorDate anchors BIWEEKLY and CUSTOM windows.
// LengthDays is only used by CUSTOM (1-31).
type PayPeriodSchedule struct {
	CompanyID  string
	Type       ScheduleType
	StartDay   int
	AnchorDate *time.Time
	LengthDays int
	UpdatedAt  time.Time
}
