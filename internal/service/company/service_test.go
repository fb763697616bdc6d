package company

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/punchd-app/punchd-backend-go/internal/domain/audit"
	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyRepo struct {
	company.Repository
	settings      *company.OvertimeSettings
	schedule      *company.PayPeriodSchedule
	savedSettings *company.OvertimeSettings
	savedSchedule *company.PayPeriodSchedule
}

func (f *fakeCompanyRepo) GetOvertimeSettings(ctx context.Context, companyID string) (company.OvertimeSettings, error) {
	if f.settings == nil {
		return company.OvertimeSettings{}, company.ErrSettingsNotFound
	}
	return *f.settings, nil
}

func (f *fakeCompanyRepo) UpsertOvertimeSettings(ctx context.Context, settings company.OvertimeSettings) (company.OvertimeSettings, error) {
	settings.Version = 2
	f.savedSettings = &settings
	return settings, nil
}

func (f *fakeCompanyRepo) GetPayPeriodSchedule(ctx context.Context, companyID string) (company.PayPeriodSchedule, error) {
	if f.schedule == nil {
		return company.PayPeriodSchedule{}, company.ErrNoScheduleSet
	}
	return *f.schedule, nil
}

func (f *fakeCompanyRepo) UpsertPayPeriodSchedule(ctx context.Context, schedule company.PayPeriodSchedule) (company.PayPeriodSchedule, error) {
	f.savedSchedule = &schedule
	return schedule, nil
}

type nullRecorder struct{}

func (nullRecorder) Record(ctx context.Context, event audit.Event) error { return nil }

func newService(repo *fakeCompanyRepo) company.Service {
	return NewCompanyService(repo, nullRecorder{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func adminActor() worker.Actor {
	return worker.Actor{WorkerID: "admin-1", CompanyID: "company-1", Role: worker.RoleAdmin}
}

func validSettingsRequest() company.OvertimeSettingsRequest {
	return company.OvertimeSettingsRequest{
		DailyOtThresholdMins:  480,
		DailyDtThresholdMins:  720,
		WeeklyOtThresholdMins: 2400,
		OtMultiplier:          decimal.NewFromFloat(1.5),
		DtMultiplier:          decimal.NewFromFloat(2.0),
	}
}

func TestGetOvertimeSettings_DefaultsWhenUnset(t *testing.T) {
	svc := newService(&fakeCompanyRepo{})

	resp, err := svc.GetOvertimeSettings(context.Background(), adminActor())
	require.NoError(t, err)

	assert.Equal(t, "company-1", resp.CompanyID)
	assert.Equal(t, company.DefaultDailyOtThresholdMins, resp.DailyOtThresholdMins)
	assert.Equal(t, company.DefaultWeeklyOtThresholdMins, resp.WeeklyOtThresholdMins)
	assert.True(t, resp.OtMultiplier.Equal(decimal.NewFromFloat(1.5)))
}

func TestGetOvertimeSettings_ReturnsStored(t *testing.T) {
	stored := company.DefaultOvertimeSettings("company-1")
	stored.DailyOtThresholdMins = 600
	stored.Version = 3
	svc := newService(&fakeCompanyRepo{settings: &stored})

	resp, err := svc.GetOvertimeSettings(context.Background(), adminActor())
	require.NoError(t, err)

	assert.Equal(t, 600, resp.DailyOtThresholdMins)
	assert.Equal(t, 3, resp.Version)
}

func TestUpdateOvertimeSettings_RequiresAdmin(t *testing.T) {
	svc := newService(&fakeCompanyRepo{})
	actor := worker.Actor{WorkerID: "worker-1", CompanyID: "company-1", Role: worker.RoleWorker}

	_, err := svc.UpdateOvertimeSettings(context.Background(), actor, validSettingsRequest())
	assert.ErrorIs(t, err, worker.ErrAdminAccessRequired)
}

func TestUpdateOvertimeSettings_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*company.OvertimeSettingsRequest)
	}{
		{"daily ot zero", func(r *company.OvertimeSettingsRequest) { r.DailyOtThresholdMins = 0 }},
		{"daily ot above a day", func(r *company.OvertimeSettingsRequest) { r.DailyOtThresholdMins = 1500 }},
		{"dt not above ot", func(r *company.OvertimeSettingsRequest) { r.DailyDtThresholdMins = 480 }},
		{"weekly zero", func(r *company.OvertimeSettingsRequest) { r.WeeklyOtThresholdMins = 0 }},
		{"ot multiplier below one", func(r *company.OvertimeSettingsRequest) { r.OtMultiplier = decimal.NewFromFloat(0.9) }},
		{"dt multiplier below ot", func(r *company.OvertimeSettingsRequest) { r.DtMultiplier = decimal.NewFromFloat(1.2) }},
	}

	repo := &fakeCompanyRepo{}
	svc := newService(repo)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSettingsRequest()
			tc.mutate(&req)

			_, err := svc.UpdateOvertimeSettings(context.Background(), adminActor(), req)

			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
			assert.Nil(t, repo.savedSettings)
		})
	}
}

func TestUpdateOvertimeSettings_Saves(t *testing.T) {
	repo := &fakeCompanyRepo{}
	svc := newService(repo)

	req := validSettingsRequest()
	req.DailyOtThresholdMins = 540

	resp, err := svc.UpdateOvertimeSettings(context.Background(), adminActor(), req)
	require.NoError(t, err)

	assert.Equal(t, 540, resp.DailyOtThresholdMins)
	assert.Equal(t, 2, resp.Version)
	require.NotNil(t, repo.savedSettings)
	assert.Equal(t, "company-1", repo.savedSettings.CompanyID)
}

func TestGetSchedule_NotSet(t *testing.T) {
	svc := newService(&fakeCompanyRepo{})

	_, err := svc.GetSchedule(context.Background(), adminActor())
	assert.ErrorIs(t, err, company.ErrNoScheduleSet)
}

func TestUpdateSchedule_RequiresAdmin(t *testing.T) {
	svc := newService(&fakeCompanyRepo{})
	actor := worker.Actor{WorkerID: "worker-1", CompanyID: "company-1", Role: worker.RoleWorker}

	_, err := svc.UpdateSchedule(context.Background(), actor, company.ScheduleRequest{Type: "WEEKLY", StartDay: 1})
	assert.ErrorIs(t, err, worker.ErrAdminAccessRequired)
}

func TestUpdateSchedule_SavesWeekly(t *testing.T) {
	repo := &fakeCompanyRepo{}
	svc := newService(repo)

	resp, err := svc.UpdateSchedule(context.Background(), adminActor(), company.ScheduleRequest{
		Type:     "WEEKLY",
		StartDay: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "WEEKLY", resp.Type)
	require.NotNil(t, repo.savedSchedule)
	assert.Equal(t, company.ScheduleWeekly, repo.savedSchedule.Type)
}

func TestUpdateSchedule_DryRunRejectsBadRule(t *testing.T) {
	repo := &fakeCompanyRepo{}
	svc := newService(repo)

	// BIWEEKLY passes request validation shape-wise but cannot generate
	// periods without an anchor date.
	_, err := svc.UpdateSchedule(context.Background(), adminActor(), company.ScheduleRequest{
		Type: "BIWEEKLY",
	})
	assert.Error(t, err)
	assert.Nil(t, repo.savedSchedule)
}

func TestUpdateSchedule_SavesAnchored(t *testing.T) {
	repo := &fakeCompanyRepo{}
	svc := newService(repo)

	anchor := "2026-01-05"
	resp, err := svc.UpdateSchedule(context.Background(), adminActor(), company.ScheduleRequest{
		Type:       "BIWEEKLY",
		AnchorDate: &anchor,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.AnchorDate)
	require.NotNil(t, repo.savedSchedule)
	require.NotNil(t, repo.savedSchedule.AnchorDate)
	assert.Equal(t, "2026-01-05", repo.savedSchedule.AnchorDate.Format("2006-01-02"))
}
