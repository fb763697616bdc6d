package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/notification"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaleRepo struct {
	timeentry.Repository
	stale []timeentry.TimeEntry
}

func (f *fakeStaleRepo) GetStaleOpenSessions(ctx context.Context, olderThanHours int) ([]timeentry.TimeEntry, error) {
	return f.stale, nil
}

type fakeWorkerLookup struct {
	worker.Repository
	workers map[string]worker.Worker
}

func (f *fakeWorkerLookup) GetByID(ctx context.Context, id string, companyID string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

type adminAlert struct {
	companyID string
	notifType notification.NotificationType
	message   string
}

type captureNotifier struct {
	notification.Service
	alerts []adminAlert
}

func (c *captureNotifier) NotifyAdmins(ctx context.Context, companyID string, notifType notification.NotificationType, title, message string, data map[string]interface{}) error {
	c.alerts = append(c.alerts, adminAlert{companyID: companyID, notifType: notifType, message: message})
	return nil
}

func staleEntry(id string) timeentry.TimeEntry {
	return timeentry.TimeEntry{
		ID:        id,
		WorkerID:  "worker-1",
		CompanyID: "company-1",
		EntryType: timeentry.TypeTravelTime,
		ClockIn:   time.Now().UTC().Add(-14 * time.Hour),
	}
}

func newJobs(repo *fakeStaleRepo, notifier *captureNotifier) *TimeEntryJobs {
	workers := &fakeWorkerLookup{workers: map[string]worker.Worker{
		"worker-1": {ID: "worker-1", CompanyID: "company-1", FullName: "Jo Field"},
	}}
	return NewTimeEntryJobs(repo, workers, notifier, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFlagStaleOpenSessions_AlertsOncePerSession(t *testing.T) {
	repo := &fakeStaleRepo{stale: []timeentry.TimeEntry{staleEntry("entry-1")}}
	notifier := &captureNotifier{}
	jobs := newJobs(repo, notifier)

	require.NoError(t, jobs.FlagStaleOpenSessions(context.Background()))
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, "company-1", notifier.alerts[0].companyID)
	assert.Equal(t, notification.TypeStaleSession, notifier.alerts[0].notifType)
	assert.Contains(t, notifier.alerts[0].message, "Jo Field")

	// A second sweep over the same stale session stays quiet.
	require.NoError(t, jobs.FlagStaleOpenSessions(context.Background()))
	assert.Len(t, notifier.alerts, 1)
}

func TestFlagStaleOpenSessions_ReopenedSessionAlertsAgain(t *testing.T) {
	repo := &fakeStaleRepo{stale: []timeentry.TimeEntry{staleEntry("entry-1")}}
	notifier := &captureNotifier{}
	jobs := newJobs(repo, notifier)

	require.NoError(t, jobs.FlagStaleOpenSessions(context.Background()))
	require.Len(t, notifier.alerts, 1)

	// The session was closed; its bookkeeping is pruned.
	repo.stale = nil
	require.NoError(t, jobs.FlagStaleOpenSessions(context.Background()))

	// It shows up stale again later and alerts a second time.
	repo.stale = []timeentry.TimeEntry{staleEntry("entry-1")}
	require.NoError(t, jobs.FlagStaleOpenSessions(context.Background()))
	assert.Len(t, notifier.alerts, 2)
}

func TestFlagStaleOpenSessions_NoStaleSessions(t *testing.T) {
	notifier := &captureNotifier{}
	jobs := newJobs(&fakeStaleRepo{}, notifier)

	require.NoError(t, jobs.FlagStaleOpenSessions(context.Background()))
	assert.Empty(t, notifier.alerts)
}
