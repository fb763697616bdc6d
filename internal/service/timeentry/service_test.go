package timeentry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"testing"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/domain/audit"
	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/domain/job"
	"github.com/punchd-app/punchd-backend-go/internal/domain/notification"
	"github.com/punchd-app/punchd-backend-go/internal/domain/timeentry"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. Methods the tests never reach fall through to the embedded
// nil interface and panic loudly if something unexpected calls them.

type fakeEntryRepo struct {
	timeentry.Repository
	entries         map[string]timeentry.TimeEntry
	seq             int
	hasOpenSession  bool
	weeklyBefore    int
	deletedIDs      []string
	updateCalls     int
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: map[string]timeentry.TimeEntry{}}
}

func (f *fakeEntryRepo) CreateActive(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	if f.hasOpenSession {
		return timeentry.TimeEntry{}, timeentry.ErrAlreadyClockedIn
	}
	f.seq++
	entry.ID = fmt.Sprintf("entry-%d", f.seq)
	entry.CreatedAt = time.Now().UTC()
	entry.UpdatedAt = entry.CreatedAt
	f.entries[entry.ID] = entry
	f.hasOpenSession = true
	return entry, nil
}

func (f *fakeEntryRepo) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	f.seq++
	entry.ID = fmt.Sprintf("entry-%d", f.seq)
	entry.CreatedAt = time.Now().UTC()
	entry.UpdatedAt = entry.CreatedAt
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeEntryRepo) GetOpenSession(ctx context.Context, workerID string) (timeentry.TimeEntry, error) {
	for _, e := range f.entries {
		if e.WorkerID == workerID && e.ClockOut == nil {
			return e, nil
		}
	}
	return timeentry.TimeEntry{}, timeentry.ErrNotClockedIn
}

func (f *fakeEntryRepo) GetByID(ctx context.Context, id string, companyID string) (timeentry.TimeEntry, error) {
	e, ok := f.entries[id]
	if !ok || e.CompanyID != companyID {
		return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeEntryRepo) Update(ctx context.Context, entry timeentry.TimeEntry) error {
	stored, ok := f.entries[entry.ID]
	if !ok {
		return timeentry.ErrEntryNotFound
	}
	if stored.IsLocked {
		return timeentry.ErrEntryLocked
	}
	f.entries[entry.ID] = entry
	f.updateCalls++
	return nil
}

func (f *fakeEntryRepo) Delete(ctx context.Context, id string, companyID string) error {
	delete(f.entries, id)
	f.deletedIDs = append(f.deletedIDs, id)
	f.hasOpenSession = false
	return nil
}

func (f *fakeEntryRepo) WeeklyMinutesBefore(ctx context.Context, workerID string, weekStart, before time.Time) (int, error) {
	return f.weeklyBefore, nil
}

type fakeWorkerRepo struct {
	worker.Repository
	workers      map[string]worker.Worker
	admins       []worker.Worker
	referenceSet map[string]string
	jobRates     map[string]worker.JobRate
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{
		workers:      map[string]worker.Worker{},
		referenceSet: map[string]string{},
		jobRates:     map[string]worker.JobRate{},
	}
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string, companyID string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok || w.CompanyID != companyID {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) ListAdmins(ctx context.Context, companyID string) ([]worker.Worker, error) {
	return f.admins, nil
}

func (f *fakeWorkerRepo) GetJobRate(ctx context.Context, workerID string, jobID string) (*worker.JobRate, error) {
	if r, ok := f.jobRates[workerID+"/"+jobID]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeWorkerRepo) SetReferencePhoto(ctx context.Context, workerID string, companyID string, url string) error {
	if _, ok := f.referenceSet[workerID]; ok {
		return nil
	}
	f.referenceSet[workerID] = url
	return nil
}

type fakeJobRepo struct {
	jobs map[string]job.Job
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id string, companyID string) (job.Job, error) {
	j, ok := f.jobs[id]
	if !ok || j.CompanyID != companyID {
		return job.Job{}, job.ErrJobNotFound
	}
	return j, nil
}

type fakeCompanyRepo struct {
	company.Repository
	settings *company.OvertimeSettings
}

func (f *fakeCompanyRepo) GetOvertimeSettings(ctx context.Context, companyID string) (company.OvertimeSettings, error) {
	if f.settings == nil {
		return company.OvertimeSettings{}, company.ErrSettingsNotFound
	}
	return *f.settings, nil
}

type fakeFileService struct {
	uploads   int
	uploadErr error
}

func (f *fakeFileService) UploadClockPhoto(ctx context.Context, workerID string, at time.Time, file io.Reader, filename string, clockType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads++
	return fmt.Sprintf("punches/%s-%s-%d.jpg", workerID, clockType, f.uploads), nil
}

func (f *fakeFileService) UploadReferencePhoto(ctx context.Context, workerID string, file io.Reader, filename string) (string, error) {
	return "references/" + workerID + ".jpg", nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error { return nil }

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return path, nil
}

type fakeComparator struct {
	confidence float64
	err        error
	calls      int
}

func (f *fakeComparator) Compare(ctx context.Context, referenceURL, candidateURL string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.confidence, nil
}

type queuedNotification struct {
	recipientID string
	notifType   notification.NotificationType
}

type fakeNotifier struct {
	queued      []queuedNotification
	adminNotifs []notification.NotificationType
}

func (f *fakeNotifier) Queue(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, queuedNotification{recipientID: req.RecipientID, notifType: req.Type})
	return nil
}

func (f *fakeNotifier) NotifyAdmins(ctx context.Context, companyID string, notifType notification.NotificationType, title, message string, data map[string]interface{}) error {
	f.adminNotifs = append(f.adminNotifs, notifType)
	return nil
}

func (f *fakeNotifier) List(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	return nil
}

func (f *fakeNotifier) Stop() {}

type noopRecorder struct{}

func (noopRecorder) Record(ctx context.Context, event audit.Event) error { return nil }

// fakePhoto satisfies multipart.File over an in-memory buffer.
type fakePhoto struct {
	*bytes.Reader
}

func (fakePhoto) Close() error { return nil }

func newFakePhoto() (multipart.File, *multipart.FileHeader) {
	return fakePhoto{bytes.NewReader([]byte("jpeg-bytes"))}, &multipart.FileHeader{Filename: "photo.jpg"}
}

// Job site at a fixed coordinate; offsets below are in degrees of latitude,
// where one degree is roughly 111.2 km.
const (
	siteLat    = 40.0
	siteLng    = -74.0
	siteRadius = 100.0

	nearbyLat = 40.00045 // ~50 m north
	farLat    = 40.0018  // ~200 m north
)

type fixture struct {
	svc       timeentry.Service
	entryRepo *fakeEntryRepo
	workers   *fakeWorkerRepo
	jobs      *fakeJobRepo
	files     *fakeFileService
	faces     *fakeComparator
	notifier  *fakeNotifier
	actor     worker.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	entryRepo := newFakeEntryRepo()
	workers := newFakeWorkerRepo()
	jobs := &fakeJobRepo{jobs: map[string]job.Job{}}
	files := &fakeFileService{}
	faces := &fakeComparator{confidence: 95}
	notifier := &fakeNotifier{}

	rate := decimal.NewFromInt(20)
	workers.workers["worker-1"] = worker.Worker{
		ID:         "worker-1",
		CompanyID:  "company-1",
		FullName:   "Jo Field",
		Email:      "jo@example.com",
		Role:       worker.RoleWorker,
		HourlyRate: &rate,
		IsActive:   true,
	}
	jobs.jobs["job-1"] = job.Job{
		ID:           "job-1",
		CompanyID:    "company-1",
		Name:         "Main Street Site",
		Latitude:     siteLat,
		Longitude:    siteLng,
		RadiusMeters: siteRadius,
	}

	svc := NewTimeEntryService(
		entryRepo,
		workers,
		jobs,
		&fakeCompanyRepo{},
		files,
		faces,
		0,
		notifier,
		nil,
		noopRecorder{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return &fixture{
		svc:       svc,
		entryRepo: entryRepo,
		workers:   workers,
		jobs:      jobs,
		files:     files,
		faces:     faces,
		notifier:  notifier,
		actor:     worker.Actor{WorkerID: "worker-1", CompanyID: "company-1", Role: worker.RoleWorker},
	}
}

func TestClockIn_TravelTime(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ClockIn(context.Background(), f.actor, timeentry.ClockInRequest{
		EntryType: "TRAVEL_TIME",
		Latitude:  40.1,
		Longitude: -74.1,
	})
	require.NoError(t, err)

	assert.Equal(t, "TRAVEL_TIME", resp.EntryType)
	assert.Equal(t, string(timeentry.StatusPending), resp.ApprovalStatus)
	assert.Nil(t, resp.ClockOut)
}

func TestClockIn_JobTimeWithinGeofence(t *testing.T) {
	f := newFixture(t)
	jobID := "job-1"

	resp, err := f.svc.ClockIn(context.Background(), f.actor, timeentry.ClockInRequest{
		EntryType: "JOB_TIME",
		JobID:     &jobID,
		Latitude:  nearbyLat,
		Longitude: siteLng,
	})
	require.NoError(t, err)
	assert.Equal(t, "JOB_TIME", resp.EntryType)
}

func TestClockIn_OutsideGeofence(t *testing.T) {
	f := newFixture(t)
	jobID := "job-1"

	_, err := f.svc.ClockIn(context.Background(), f.actor, timeentry.ClockInRequest{
		EntryType: "JOB_TIME",
		JobID:     &jobID,
		Latitude:  farLat,
		Longitude: siteLng,
	})

	var geofenceErr *timeentry.GeofenceViolationError
	require.ErrorAs(t, err, &geofenceErr)
	assert.Equal(t, siteRadius, geofenceErr.RadiusMeters)
	assert.Equal(t, "Main Street Site", geofenceErr.JobName)
	assert.Greater(t, geofenceErr.DistanceMeters, siteRadius)

	// No entry recorded for the rejected attempt.
	assert.Empty(t, f.entryRepo.entries)
}

func TestClockIn_AlreadyClockedIn(t *testing.T) {
	f := newFixture(t)
	f.entryRepo.hasOpenSession = true

	_, err := f.svc.ClockIn(context.Background(), f.actor, timeentry.ClockInRequest{
		EntryType: "TRAVEL_TIME",
		Latitude:  40.1,
		Longitude: -74.1,
	})
	assert.ErrorIs(t, err, timeentry.ErrAlreadyClockedIn)
}

func TestClockIn_FirstPhotoBecomesReference(t *testing.T) {
	f := newFixture(t)
	file, header := newFakePhoto()

	_, err := f.svc.ClockIn(context.Background(), f.actor, timeentry.ClockInRequest{
		EntryType:  "TRAVEL_TIME",
		Latitude:   40.1,
		Longitude:  -74.1,
		File:       file,
		FileHeader: header,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, f.workers.referenceSet["worker-1"])
	assert.Zero(t, f.faces.calls, "no comparison against a reference that did not exist")
}

func TestClockIn_IdentityMismatchRollsBack(t *testing.T) {
	f := newFixture(t)
	ref := "references/worker-1.jpg"
	w := f.workers.workers["worker-1"]
	w.ReferencePhotoURL = &ref
	f.workers.workers["worker-1"] = w
	f.faces.confidence = 40

	file, header := newFakePhoto()
	_, err := f.svc.ClockIn(context.Background(), f.actor, timeentry.ClockInRequest{
		EntryType:  "TRAVEL_TIME",
		Latitude:   40.1,
		Longitude:  -74.1,
		File:       file,
		FileHeader: header,
	})

	var mismatchErr *timeentry.IdentityMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, 40.0, mismatchErr.Confidence)
	assert.Equal(t, DefaultMatchThreshold, mismatchErr.Threshold)

	assert.Len(t, f.entryRepo.deletedIDs, 1, "tentative entry rolled back")
	require.Len(t, f.notifier.adminNotifs, 1)
	assert.Equal(t, notification.TypeIdentityMismatch, f.notifier.adminNotifs[0])
}

func TestClockIn_FaceVerifyOutageProceedsFlagged(t *testing.T) {
	f := newFixture(t)
	ref := "references/worker-1.jpg"
	w := f.workers.workers["worker-1"]
	w.ReferencePhotoURL = &ref
	f.workers.workers["worker-1"] = w
	f.faces.err = errors.New("comparison api unreachable")

	file, header := newFakePhoto()
	resp, err := f.svc.ClockIn(context.Background(), f.actor, timeentry.ClockInRequest{
		EntryType:  "TRAVEL_TIME",
		Latitude:   40.1,
		Longitude:  -74.1,
		File:       file,
		FileHeader: header,
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Flags, timeentry.FlagFaceVerifyUnavailable)
	assert.Empty(t, f.entryRepo.deletedIDs)
}

func TestClockIn_PhotoUploadFailureProceedsFlagged(t *testing.T) {
	f := newFixture(t)
	f.files.uploadErr = errors.New("storage down")

	file, header := newFakePhoto()
	resp, err := f.svc.ClockIn(context.Background(), f.actor, timeentry.ClockInRequest{
		EntryType:  "TRAVEL_TIME",
		Latitude:   40.1,
		Longitude:  -74.1,
		File:       file,
		FileHeader: header,
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Flags, timeentry.FlagPhotoUploadFailed)
	assert.Zero(t, f.faces.calls, "no photo, no verification")
}

func seedOpenSession(f *fixture, clockedInAgo time.Duration) timeentry.TimeEntry {
	entry := timeentry.TimeEntry{
		ID:             "entry-open",
		WorkerID:       "worker-1",
		CompanyID:      "company-1",
		EntryType:      timeentry.TypeTravelTime,
		ClockIn:        time.Now().UTC().Add(-clockedInAgo),
		ApprovalStatus: timeentry.StatusPending,
	}
	f.entryRepo.entries[entry.ID] = entry
	f.entryRepo.hasOpenSession = true
	return entry
}

func TestClockOut_ComputesPayBuckets(t *testing.T) {
	f := newFixture(t)
	seedOpenSession(f, 2*time.Hour)

	resp, err := f.svc.ClockOut(context.Background(), f.actor, timeentry.ClockOutRequest{
		Latitude:  40.2,
		Longitude: -74.2,
	})
	require.NoError(t, err)

	assert.Equal(t, 120, resp.RegularMinutes)
	assert.Equal(t, 0, resp.OvertimeMinutes)
	assert.True(t, resp.HourlyRate.Equal(decimal.NewFromInt(20)), "rate falls back to the worker default")
	assert.True(t, resp.TotalPay.Equal(decimal.NewFromInt(40)), "2h at $20, got %s", resp.TotalPay)
	assert.NotNil(t, resp.ClockOut)
}

func TestClockOut_SplitsOvertime(t *testing.T) {
	f := newFixture(t)
	seedOpenSession(f, 10*time.Hour)

	resp, err := f.svc.ClockOut(context.Background(), f.actor, timeentry.ClockOutRequest{
		Latitude:  40.2,
		Longitude: -74.2,
	})
	require.NoError(t, err)

	assert.Equal(t, 480, resp.RegularMinutes)
	assert.Equal(t, 120, resp.OvertimeMinutes)
	assert.Equal(t, 0, resp.DoubletimeMinutes)
	// 8h at $20 plus 2h at $30.
	assert.True(t, resp.TotalPay.Equal(decimal.NewFromInt(220)), "got %s", resp.TotalPay)
}

func TestClockOut_WeeklyOvertimeReallocation(t *testing.T) {
	f := newFixture(t)
	seedOpenSession(f, 5*time.Hour)
	f.entryRepo.weeklyBefore = 2300

	resp, err := f.svc.ClockOut(context.Background(), f.actor, timeentry.ClockOutRequest{
		Latitude:  40.2,
		Longitude: -74.2,
	})
	require.NoError(t, err)

	// 300 minutes on the day, but only 100 fit under the 2400 weekly cap.
	assert.Equal(t, 100, resp.RegularMinutes)
	assert.Equal(t, 200, resp.OvertimeMinutes)
}

func TestClockOut_NotClockedIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockOut(context.Background(), f.actor, timeentry.ClockOutRequest{
		Latitude:  40.2,
		Longitude: -74.2,
	})
	assert.ErrorIs(t, err, timeentry.ErrNotClockedIn)
}

func TestClockOut_WhileOnBreak(t *testing.T) {
	f := newFixture(t)
	entry := seedOpenSession(f, 2*time.Hour)
	entry.OnBreak = true
	f.entryRepo.entries[entry.ID] = entry

	_, err := f.svc.ClockOut(context.Background(), f.actor, timeentry.ClockOutRequest{
		Latitude:  40.2,
		Longitude: -74.2,
	})
	assert.ErrorIs(t, err, timeentry.ErrOnBreak)
}

func TestClockOut_ExcessiveDuration(t *testing.T) {
	f := newFixture(t)
	seedOpenSession(f, 25*time.Hour)

	_, err := f.svc.ClockOut(context.Background(), f.actor, timeentry.ClockOutRequest{
		Latitude:  40.2,
		Longitude: -74.2,
	})
	assert.ErrorIs(t, err, timeentry.ErrExcessiveDuration)
}

func TestBreakLifecycle(t *testing.T) {
	f := newFixture(t)
	entry := seedOpenSession(f, 2*time.Hour)

	resp, err := f.svc.StartBreak(context.Background(), f.actor)
	require.NoError(t, err)
	assert.True(t, resp.OnBreak)

	_, err = f.svc.StartBreak(context.Background(), f.actor)
	assert.ErrorIs(t, err, timeentry.ErrAlreadyOnBreak)

	// Rewind the break start so minutes accumulate.
	stored := f.entryRepo.entries[entry.ID]
	started := time.Now().UTC().Add(-10 * time.Minute)
	stored.BreakStartedAt = &started
	f.entryRepo.entries[entry.ID] = stored

	resp, err = f.svc.EndBreak(context.Background(), f.actor)
	require.NoError(t, err)
	assert.False(t, resp.OnBreak)
	assert.Equal(t, 10, resp.BreakMinutes)

	_, err = f.svc.EndBreak(context.Background(), f.actor)
	assert.ErrorIs(t, err, timeentry.ErrNotOnBreak)
}

func TestApprove_RequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Approve(context.Background(), f.actor, "entry-1")
	assert.ErrorIs(t, err, timeentry.ErrUnauthorized)
}

func TestApprove_OpenSessionRejected(t *testing.T) {
	f := newFixture(t)
	entry := seedOpenSession(f, 1*time.Hour)
	admin := worker.Actor{WorkerID: "admin-1", CompanyID: "company-1", Role: worker.RoleAdmin}

	_, err := f.svc.Approve(context.Background(), admin, entry.ID)
	assert.ErrorIs(t, err, timeentry.ErrNotClockedIn)
}

func TestApprove_CompletedEntry(t *testing.T) {
	f := newFixture(t)
	entry := seedOpenSession(f, 0)
	out := time.Now().UTC()
	entry.ClockOut = &out
	f.entryRepo.entries[entry.ID] = entry
	admin := worker.Actor{WorkerID: "admin-1", CompanyID: "company-1", Role: worker.RoleAdmin}

	resp, err := f.svc.Approve(context.Background(), admin, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, string(timeentry.StatusApproved), resp.ApprovalStatus)
}

func TestApprove_LockedEntry(t *testing.T) {
	f := newFixture(t)
	entry := seedOpenSession(f, 0)
	out := time.Now().UTC()
	entry.ClockOut = &out
	entry.IsLocked = true
	f.entryRepo.entries[entry.ID] = entry
	admin := worker.Actor{WorkerID: "admin-1", CompanyID: "company-1", Role: worker.RoleAdmin}

	_, err := f.svc.Approve(context.Background(), admin, entry.ID)
	assert.ErrorIs(t, err, timeentry.ErrEntryLocked)
}

func TestGetByID_WorkerCannotSeeOthers(t *testing.T) {
	f := newFixture(t)
	other := timeentry.TimeEntry{
		ID:        "entry-other",
		WorkerID:  "worker-2",
		CompanyID: "company-1",
		EntryType: timeentry.TypeTravelTime,
		ClockIn:   time.Now().UTC(),
	}
	f.entryRepo.entries[other.ID] = other

	_, err := f.svc.GetByID(context.Background(), f.actor, other.ID)
	assert.ErrorIs(t, err, timeentry.ErrUnauthorized)
}

func TestCreateManual_StoresParsedBoundsInUTC(t *testing.T) {
	f := newFixture(t)
	admin := worker.Actor{WorkerID: "admin-1", CompanyID: "company-1", Role: worker.RoleAdmin}

	resp, err := f.svc.CreateManual(context.Background(), admin, timeentry.ManualEntryRequest{
		WorkerID:     "worker-1",
		EntryType:    "TRAVEL_TIME",
		ClockIn:      "2026-03-02T08:00:00-05:00",
		ClockOut:     "2026-03-02T12:00:00-05:00",
		BreakMinutes: 30,
	})
	require.NoError(t, err)

	stored := f.entryRepo.entries[resp.ID]
	assert.Equal(t, time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC), stored.ClockIn)
	require.NotNil(t, stored.ClockOut)
	assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), *stored.ClockOut)
	assert.Equal(t, 210, stored.RegularMinutes)
	assert.Equal(t, timeentry.StatusApproved, stored.ApprovalStatus)
}

func TestCreateManual_RejectsMalformedTimestamp(t *testing.T) {
	f := newFixture(t)
	admin := worker.Actor{WorkerID: "admin-1", CompanyID: "company-1", Role: worker.RoleAdmin}

	_, err := f.svc.CreateManual(context.Background(), admin, timeentry.ManualEntryRequest{
		WorkerID:  "worker-1",
		EntryType: "TRAVEL_TIME",
		ClockIn:   "03/02/2026 8:00am",
		ClockOut:  "2026-03-02T12:00:00Z",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, f.entryRepo.entries)
}

func TestManualEntryRequest_WindowSurfacesParseFailure(t *testing.T) {
	req := timeentry.ManualEntryRequest{
		ClockIn:  "not-a-timestamp",
		ClockOut: "2026-03-02T12:00:00Z",
	}

	_, _, err := req.Window()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}
