package company

import "errors"

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrNoScheduleSet    = errors.New("company has no pay period schedule configured")
	ErrSettingsNotFound = errors.New("overtime settings not found")
)
