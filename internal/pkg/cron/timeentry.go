package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/notification"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
)

// StaleSessionHours is how long a session may stay open before admins are
// alerted about a likely forgotten clock-out.
const StaleSessionHours = 12

// TimeEntryJobs holds the background jobs that watch clock sessions.
type TimeEntryJobs struct {
	timeEntryRepo timeentry.Repository
	workerRepo    worker.Repository
	notifier      notification.Service
	logger        *slog.Logger

	mu       sync.Mutex
	notified map[string]time.Time
}

func NewTimeEntryJobs(
	timeEntryRepo timeentry.Repository,
	workerRepo worker.Repository,
	notifier notification.Service,
	logger *slog.Logger,
) *TimeEntryJobs {
	return &TimeEntryJobs{
		timeEntryRepo: timeEntryRepo,
		workerRepo:    workerRepo,
		notifier:      notifier,
		logger:        logger,
		notified:      make(map[string]time.Time),
	}
}

// RegisterJobs adds all time entry jobs to the scheduler.
func (j *TimeEntryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("flag_stale_open_sessions", 1*time.Hour, j.FlagStaleOpenSessions)
}

// FlagStaleOpenSessions finds sessions that have been open longer than
// StaleSessionHours and alerts the company's admins once per session. Sessions
// are never closed automatically; an admin has to create or fix the entry.
func (j *TimeEntryJobs) FlagStaleOpenSessions(ctx context.Context) error {
	entries, err := j.timeEntryRepo.GetStaleOpenSessions(ctx, StaleSessionHours)
	if err != nil {
		return fmt.Errorf("failed to list stale open sessions: %w", err)
	}
	if len(entries) == 0 {
		j.pruneNotified(entries)
		return nil
	}

	flagged := 0
	for _, entry := range entries {
		if j.alreadyNotified(entry.ID) {
			continue
		}

		workerName := entry.WorkerID
		if w, err := j.workerRepo.GetByID(ctx, entry.WorkerID, entry.CompanyID); err == nil {
			workerName = w.FullName
		}

		openFor := time.Since(entry.ClockIn).Round(time.Minute)
		err := j.notifier.NotifyAdmins(ctx, entry.CompanyID, notification.TypeStaleSession,
			"Stale clock session",
			fmt.Sprintf("%s has been clocked in for %s without clocking out", workerName, openFor),
			map[string]interface{}{
				"time_entry_id": entry.ID,
				"worker_id":     entry.WorkerID,
				"clock_in":      entry.ClockIn.Format(time.RFC3339),
			},
		)
		if err != nil {
			j.logger.Error("failed to notify admins of stale session",
				"time_entry_id", entry.ID, "error", err)
			continue
		}

		j.markNotified(entry.ID)
		flagged++
	}

	j.pruneNotified(entries)

	if flagged > 0 {
		j.logger.Info("flagged stale open sessions", "count", flagged)
	}
	return nil
}

func (j *TimeEntryJobs) alreadyNotified(entryID string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, ok := j.notified[entryID]
	return ok
}

func (j *TimeEntryJobs) markNotified(entryID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.notified[entryID] = time.Now()
}

// pruneNotified drops bookkeeping for sessions that are no longer stale, so
// the map does not grow forever and a reopened entry can alert again.
func (j *TimeEntryJobs) pruneNotified(current []timeentry.TimeEntry) {
	stillStale := make(map[string]struct{}, len(current))
	for _, entry := range current {
		stillStale[entry.ID] = struct{}{}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	for id := range j.notified {
		if _, ok := stillStale[id]; !ok {
			delete(j.notified, id)
		}
	}
}
