package timesheet

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/audit"
	"github.com/punchd-app/punchd-backend-go/internal/domain/notification"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timesheet"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheetRepo struct {
	timesheet.Repository
	sheets        map[string]timesheet.Timesheet
	statusUpdates int
}

func (f *fakeSheetRepo) GetByID(ctx context.Context, id string, companyID string) (timesheet.Timesheet, error) {
	ts, ok := f.sheets[id]
	if !ok || ts.CompanyID != companyID {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return ts, nil
}

func (f *fakeSheetRepo) UpdateStatus(ctx context.Context, ts timesheet.Timesheet, expected timesheet.Status) error {
	stored, ok := f.sheets[ts.ID]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	if stored.Status != expected {
		return timesheet.ErrNotDraft
	}
	f.sheets[ts.ID] = ts
	f.statusUpdates++
	return nil
}

type fakeEligibilityRepo struct {
	timeentry.Repository
	eligible []timeentry.TimeEntry
}

func (f *fakeEligibilityRepo) ListEligible(ctx context.Context, workerID string, companyID string, ids []string, from, to *time.Time) ([]timeentry.TimeEntry, error) {
	return f.eligible, nil
}

type silentNotifier struct {
	adminNotifs int
	queued      int
}

func (s *silentNotifier) Queue(ctx context.Context, req notification.CreateNotificationRequest) error {
	s.queued++
	return nil
}

func (s *silentNotifier) NotifyAdmins(ctx context.Context, companyID string, notifType notification.NotificationType, title, message string, data map[string]interface{}) error {
	s.adminNotifs++
	return nil
}

func (s *silentNotifier) List(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (s *silentNotifier) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	return nil
}

func (s *silentNotifier) Stop() {}

type nullRecorder struct{}

func (nullRecorder) Record(ctx context.Context, event audit.Event) error { return nil }

type fixture struct {
	svc      timesheet.Service
	sheets   *fakeSheetRepo
	entries  *fakeEligibilityRepo
	notifier *silentNotifier
}

func newFixture() *fixture {
	sheets := &fakeSheetRepo{sheets: map[string]timesheet.Timesheet{}}
	entries := &fakeEligibilityRepo{}
	notifier := &silentNotifier{}

	svc := NewTimesheetService(
		nil,
		sheets,
		entries,
		nil,
		notifier,
		nil,
		nullRecorder{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return &fixture{svc: svc, sheets: sheets, entries: entries, notifier: notifier}
}

func workerActor() worker.Actor {
	return worker.Actor{WorkerID: "worker-1", CompanyID: "company-1", Role: worker.RoleWorker}
}

func seedSheet(f *fixture, status timesheet.Status, entryCount int) timesheet.Timesheet {
	ts := timesheet.Timesheet{
		ID:          "sheet-1",
		WorkerID:    "worker-1",
		CompanyID:   "company-1",
		PeriodStart: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 8, 23, 59, 59, 0, time.UTC),
		Status:      status,
		EntryCount:  entryCount,
	}
	if status != timesheet.StatusDraft {
		submitted := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
		ts.SubmittedAt = &submitted
	}
	f.sheets.sheets[ts.ID] = ts
	return ts
}

func TestCreate_NoEligibleEntries(t *testing.T) {
	f := newFixture()
	from, to := "2026-03-02", "2026-03-08"

	_, err := f.svc.Create(context.Background(), workerActor(), timesheet.CreateRequest{
		DateFrom: &from,
		DateTo:   &to,
	})
	assert.ErrorIs(t, err, timesheet.ErrNoEligibleEntries)
}

func TestCreate_PartialSelection(t *testing.T) {
	f := newFixture()
	out := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	f.entries.eligible = []timeentry.TimeEntry{{
		ID:       "entry-1",
		WorkerID: "worker-1",
		ClockIn:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		ClockOut: &out,
	}}

	// Two requested, one eligible: the whole creation is refused.
	_, err := f.svc.Create(context.Background(), workerActor(), timesheet.CreateRequest{
		EntryIDs: []string{"entry-1", "entry-2"},
	})
	assert.ErrorIs(t, err, timesheet.ErrPartialSelection)
}

func TestCreate_RequiresSelection(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), workerActor(), timesheet.CreateRequest{})
	assert.Error(t, err)
}

func TestSubmit_NotOwner(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusDraft, 2)
	other := worker.Actor{WorkerID: "worker-2", CompanyID: "company-1", Role: worker.RoleWorker}

	_, err := f.svc.Submit(context.Background(), other, "sheet-1")
	assert.ErrorIs(t, err, timesheet.ErrUnauthorized)
}

func TestSubmit_NotDraft(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusSubmitted, 2)

	_, err := f.svc.Submit(context.Background(), workerActor(), "sheet-1")
	assert.ErrorIs(t, err, timesheet.ErrNotDraft)
}

func TestSubmit_EmptyTimesheet(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusDraft, 0)

	_, err := f.svc.Submit(context.Background(), workerActor(), "sheet-1")
	assert.ErrorIs(t, err, timesheet.ErrEmptyTimesheet)
}

func TestSubmit_NotifiesAdmins(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusDraft, 2)

	resp, err := f.svc.Submit(context.Background(), workerActor(), "sheet-1")
	require.NoError(t, err)

	assert.Equal(t, string(timesheet.StatusSubmitted), resp.Status)
	assert.NotNil(t, resp.SubmittedAt)
	assert.Equal(t, 1, f.notifier.adminNotifs)
}

func TestWithdraw_ReturnsToDraft(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusSubmitted, 2)

	resp, err := f.svc.Withdraw(context.Background(), workerActor(), "sheet-1")
	require.NoError(t, err)

	assert.Equal(t, string(timesheet.StatusDraft), resp.Status)
	assert.Nil(t, resp.SubmittedAt)
}

func TestWithdraw_NotSubmitted(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusDraft, 2)

	_, err := f.svc.Withdraw(context.Background(), workerActor(), "sheet-1")
	assert.ErrorIs(t, err, timesheet.ErrNotSubmitted)
}

func TestWithdraw_ApprovedIsFinal(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusApproved, 2)

	_, err := f.svc.Withdraw(context.Background(), workerActor(), "sheet-1")
	assert.ErrorIs(t, err, timesheet.ErrNotSubmitted)
}

func TestReview_RequiresAdmin(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusSubmitted, 2)

	_, err := f.svc.Review(context.Background(), workerActor(), timesheet.ReviewRequest{
		ID:      "sheet-1",
		Approve: true,
	})
	assert.ErrorIs(t, err, timesheet.ErrUnauthorized)
}

func TestReview_NotSubmitted(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusDraft, 2)
	admin := worker.Actor{WorkerID: "admin-1", CompanyID: "company-1", Role: worker.RoleAdmin}

	_, err := f.svc.Review(context.Background(), admin, timesheet.ReviewRequest{
		ID:      "sheet-1",
		Approve: true,
	})
	assert.ErrorIs(t, err, timesheet.ErrNotSubmitted)
}

func TestUpdate_NotEditable(t *testing.T) {
	f := newFixture()
	seedSheet(f, timesheet.StatusSubmitted, 2)

	_, err := f.svc.Update(context.Background(), workerActor(), timesheet.UpdateRequest{
		ID:       "sheet-1",
		EntryIDs: []string{"entry-1"},
	})
	assert.ErrorIs(t, err, timesheet.ErrNotEditable)
}

func TestDeriveTotals(t *testing.T) {
	out1 := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	out2 := time.Date(2026, 3, 5, 15, 30, 0, 0, time.UTC)
	entries := []timeentry.TimeEntry{
		{
			// 8h on site minus a 30 minute break.
			ClockIn:      time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			ClockOut:     &out1,
			BreakMinutes: 30,
		},
		{
			// 8.5h, no break.
			ClockIn:  time.Date(2026, 3, 5, 7, 0, 0, 0, time.UTC),
			ClockOut: &out2,
		},
	}

	start, end, totalMinutes, breakMinutes := deriveTotals(entries)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 5, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)
	assert.Equal(t, 960, totalMinutes)
	assert.Equal(t, 30, breakMinutes)
}
