package company

import (
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type OvertimeSettingsRequest struct {
	DailyOtThresholdMins  int             `json:"daily_ot_threshold_mins"`
	DailyDtThresholdMins  int             `json:"daily_dt_threshold_mins"`
	WeeklyOtThresholdMins int             `json:"weekly_ot_threshold_mins"`
	OtMultiplier          decimal.Decimal `json:"ot_multiplier"`
	DtMultiplier          decimal.Decimal `json:"dt_multiplier"`
}

func (r *OvertimeSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DailyOtThresholdMins <= 0 || r.DailyOtThresholdMins > 1440 {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_ot_threshold_mins",
			Message: "daily_ot_threshold_mins must be between 1 and 1440",
		})
	}

	if r.DailyDtThresholdMins <= r.DailyOtThresholdMins || r.DailyDtThresholdMins > 1440 {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_dt_threshold_mins",
			Message: "daily_dt_threshold_mins must be greater than daily_ot_threshold_mins and at most 1440",
		})
	}

	if r.WeeklyOtThresholdMins <= 0 || r.WeeklyOtThresholdMins > 10080 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekly_ot_threshold_mins",
			Message: "weekly_ot_threshold_mins must be between 1 and 10080",
		})
	}

	one := decimal.NewFromInt(1)
	if r.OtMultiplier.LessThan(one) {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_multiplier",
			Message: "ot_multiplier must be at least 1",
		})
	}

	if r.DtMultiplier.LessThan(r.OtMultiplier) {
		errs = append(errs, validator.ValidationError{
			Field:   "dt_multiplier",
			Message: "dt_multiplier must be at least ot_multiplier",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleRequest struct {
	Type       string  `json:"type"`
	StartDay   int     `json:"start_day"`
	AnchorDate *string `json:"anchor_date,omitempty"`
	LengthDays int     `json:"length_days,omitempty"`
}

func (r *ScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	switch ScheduleType(r.Type) {
	case ScheduleWeekly, ScheduleBiweekly, ScheduleSemimonthly, ScheduleMonthly, ScheduleCustom:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be WEEKLY, BIWEEKLY, SEMIMONTHLY, MONTHLY, or CUSTOM",
		})
	}

	if r.AnchorDate != nil {
		if _, ok := validator.IsValidDate(*r.AnchorDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "anchor_date",
				Message: "anchor_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeSettingsResponse struct {
	CompanyID             string          `json:"company_id"`
	Version               int             `json:"version"`
	DailyOtThresholdMins  int             `json:"daily_ot_threshold_mins"`
	DailyDtThresholdMins  int             `json:"daily_dt_threshold_mins"`
	WeeklyOtThresholdMins int             `json:"weekly_ot_threshold_mins"`
	OtMultiplier          decimal.Decimal `json:"ot_multiplier"`
	DtMultiplier          decimal.Decimal `json:"dt_multiplier"`
	UpdatedAt             *string         `json:"updated_at,omitempty"`
}

type ScheduleResponse struct {
	CompanyID  string  `json:"company_id"`
	Type       string  `json:"type"`
	StartDay   int     `json:"start_day"`
	AnchorDate *string `json:"anchor_date,omitempty"`
	LengthDays int     `json:"length_days,omitempty"`
	UpdatedAt  *string `json:"updated_at,omitempty"`
}

func ToSettingsResponse(s OvertimeSettings) OvertimeSettingsResponse {
	resp := OvertimeSettingsResponse{
		CompanyID:             s.CompanyID,
		Version:               s.Version,
		DailyOtThresholdMins:  s.DailyOtThresholdMins,
		DailyDtThresholdMins:  s.DailyDtThresholdMins,
		WeeklyOtThresholdMins: s.WeeklyOtThresholdMins,
		OtMultiplier:          s.OtMultiplier,
		DtMultiplier:          s.DtMultiplier,
	}
	if !s.UpdatedAt.IsZero() {
		formatted := s.UpdatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &formatted
	}
	return resp
}

func ToScheduleResponse(s PayPeriodSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		CompanyID:  s.CompanyID,
		Type:       string(s.Type),
		StartDay:   s.StartDay,
		LengthDays: s.LengthDays,
	}
	if s.AnchorDate != nil {
		formatted := s.AnchorDate.UTC().Format("2006-01-02")
		resp.AnchorDate = &formatted
	}
	if !s.UpdatedAt.IsZero() {
		formatted := s.UpdatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &formatted
	}
	return resp
}
