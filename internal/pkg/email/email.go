package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/punchd-app/punchd-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService sends the out-of-band alerts the time-tracking workflows
// produce.
type EmailService interface {
	SendIdentityAlert(to, workerName, jobName string, confidence float64, occurredAt string) error
	SendTimesheetReviewed(to, workerName, timesheetName, outcome string, notes *string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type identityAlertData struct {
	WorkerName string
	JobName    string
	Confidence float64
	OccurredAt string
}

// SendIdentityAlert notifies an admin that a clock-in photo failed
// verification against the worker's reference photo.
func (s *emailServiceImpl) SendIdentityAlert(to, workerName, jobName string, confidence float64, occurredAt string) error {
	data := identityAlertData{
		WorkerName: workerName,
		JobName:    jobName,
		Confidence: confidence,
		OccurredAt: occurredAt,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "identity_alert.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Identity check failed for %s", workerName), body.String())
}

type timesheetReviewedData struct {
	WorkerName    string
	TimesheetName string
	Outcome       string
	Notes         string
}

// SendTimesheetReviewed tells a worker their submitted timesheet was resolved.
func (s *emailServiceImpl) SendTimesheetReviewed(to, workerName, timesheetName, outcome string, notes *string) error {
	data := timesheetReviewedData{
		WorkerName:    workerName,
		TimesheetName: timesheetName,
		Outcome:       outcome,
	}
	if notes != nil {
		data.Notes = *notes
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "timesheet_reviewed.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your timesheet was %s", outcome), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
