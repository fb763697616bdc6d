package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/config"
	appHTTP "github.com/punchd-app/punchd-backend-go/internal/handler/http"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/cron"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/email"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/faceverify"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/jwt"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/sse"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/storage"
	"github.com/punchd-app/punchd-backend-go/internal/repository/postgresql"
	companyService "github.com/punchd-app/punchd-backend-go/internal/service/company"
	"github.com/punchd-app/punchd-backend-go/internal/service/file"
	notificationService "github.com/punchd-app/punchd-backend-go/internal/service/notification"
	payperiodService "github.com/punchd-app/punchd-backend-go/internal/service/payperiod"
	reportService "github.com/punchd-app/punchd-backend-go/internal/service/report"
	timeentryService "github.com/punchd-app/punchd-backend-go/internal/service/timeentry"
	timesheetService "github.com/punchd-app/punchd-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	logLevel := slog.LevelInfo
	if cfg.App.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).With(
		slog.String("app", "punchd-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	workerRepo := postgresql.NewWorkerRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	payPeriodRepo := postgresql.NewPayPeriodRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	auditRecorder := postgresql.NewAuditRecorder(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}
	fileService := file.NewFileService(fileStorage)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	comparator := faceverify.NewClient(cfg.FaceVerify.BaseURL, cfg.FaceVerify.APIKey, cfg.FaceVerify.Timeout)

	hub := sse.NewHub()
	notifier := notificationService.NewNotificationService(
		notificationRepo, workerRepo, hub, notificationService.Config{}, logger)

	timeEntrySvc := timeentryService.NewTimeEntryService(
		timeEntryRepo,
		workerRepo,
		jobRepo,
		companyRepo,
		fileService,
		comparator,
		cfg.FaceVerify.MatchThreshold,
		notifier,
		emailService,
		auditRecorder,
		logger,
	)
	payPeriodSvc := payperiodService.NewPayPeriodService(
		db, payPeriodRepo, companyRepo, timeEntryRepo, auditRecorder, logger)
	timesheetSvc := timesheetService.NewTimesheetService(
		db, timesheetRepo, timeEntryRepo, workerRepo, notifier, emailService, auditRecorder, logger)
	companySvc := companyService.NewCompanyService(companyRepo, auditRecorder, logger)
	reportSvc := reportService.NewReportService(payPeriodSvc, payPeriodRepo, timeEntryRepo)

	scheduler := cron.NewScheduler(logger)
	cron.NewTimeEntryJobs(timeEntryRepo, workerRepo, notifier, logger).RegisterJobs(scheduler)
	cron.NewPayPeriodJobs(companyRepo, payPeriodSvc, logger).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:          jwtService,
		Logger:              logger,
		TimeEntryHandler:    appHTTP.NewTimeEntryHandler(timeEntrySvc),
		PayPeriodHandler:    appHTTP.NewPayPeriodHandler(payPeriodSvc),
		TimesheetHandler:    appHTTP.NewTimesheetHandler(timesheetSvc),
		CompanyHandler:      appHTTP.NewCompanyHandler(companySvc),
		ReportHandler:       appHTTP.NewReportHandler(reportSvc),
		NotificationHandler: appHTTP.NewNotificationHandler(notifier, hub, jwtService),
		AllowedOrigins:      []string{cfg.App.FrontendURL},
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	scheduler.Stop()
	notifier.Stop()
	logger.Info("shutdown complete")
}
