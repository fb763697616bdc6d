package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/punchd-app/punchd-backend-go/internal/handler/http/middleware"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	JWTService          jwt.Service
	Logger              *slog.Logger
	TimeEntryHandler    TimeEntryHandler
	PayPeriodHandler    PayPeriodHandler
	TimesheetHandler    TimesheetHandler
	CompanyHandler      CompanyHandler
	ReportHandler       ReportHandler
	NotificationHandler NotificationHandler
	AllowedOrigins      []string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(deps.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		// The SSE stream authenticates with a short-lived query token; it
		// cannot go through the Authorization header middleware.
		r.Get("/notifications/stream", deps.NotificationHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/time-entries", func(r chi.Router) {
				r.Post("/clock-in", deps.TimeEntryHandler.ClockIn)
				r.Post("/clock-out", deps.TimeEntryHandler.ClockOut)
				r.Post("/break/start", deps.TimeEntryHandler.StartBreak)
				r.Post("/break/end", deps.TimeEntryHandler.EndBreak)
				r.Get("/my", deps.TimeEntryHandler.ListMine)
				r.Get("/{id}", deps.TimeEntryHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", deps.TimeEntryHandler.List)
					r.Post("/manual", deps.TimeEntryHandler.CreateManual)
					r.Post("/{id}/approve", deps.TimeEntryHandler.Approve)
					r.Post("/{id}/reject", deps.TimeEntryHandler.Reject)
				})
			})

			r.Route("/pay-periods", func(r chi.Router) {
				r.Get("/current", deps.PayPeriodHandler.GetCurrent)
				r.Get("/", deps.PayPeriodHandler.List)
				r.Get("/{id}", deps.PayPeriodHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", deps.PayPeriodHandler.Create)
					r.Post("/{id}/lock", deps.PayPeriodHandler.Lock)
					r.Post("/{id}/export", deps.PayPeriodHandler.Export)
					r.Get("/{id}/summary", deps.PayPeriodHandler.Summary)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Post("/{id}/unlock", deps.PayPeriodHandler.Unlock)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/", deps.TimesheetHandler.Create)
				r.Get("/my", deps.TimesheetHandler.ListMine)
				r.Get("/{id}", deps.TimesheetHandler.Get)
				r.Put("/{id}", deps.TimesheetHandler.Update)
				r.Post("/{id}/submit", deps.TimesheetHandler.Submit)
				r.Post("/{id}/withdraw", deps.TimesheetHandler.Withdraw)
				r.Delete("/{id}", deps.TimesheetHandler.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", deps.TimesheetHandler.List)
					r.Post("/{id}/review", deps.TimesheetHandler.Review)
				})
			})

			r.Route("/company", func(r chi.Router) {
				r.Get("/overtime-settings", deps.CompanyHandler.GetOvertimeSettings)
				r.Get("/pay-period-schedule", deps.CompanyHandler.GetSchedule)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/overtime-settings", deps.CompanyHandler.UpdateOvertimeSettings)
					r.Put("/pay-period-schedule", deps.CompanyHandler.UpdateSchedule)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/pay-periods/{id}/summary", deps.ReportHandler.PeriodSummary)
				r.Get("/pay-periods/{id}/csv", deps.ReportHandler.PeriodCSV)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", deps.NotificationHandler.List)
				r.Post("/read", deps.NotificationHandler.MarkRead)
				r.Get("/sse-token", deps.NotificationHandler.GetSSEToken)
			})
		})
	})

	return r
}
