package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/punchd-app/punchd-backend-go/internal/handler/http/middleware"
	"github.com/punchd-app/punchd-backend-go/internal/handler/http/response"
	"github.com/punchd-app/punchd-backend-go/internal/service/report"
)

type ReportHandler interface {
	PeriodSummary(w http.ResponseWriter, r *http.Request)
	PeriodCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// PeriodSummary implements ReportHandler.
func (h *reportHandlerImpl) PeriodSummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pay period ID is required", nil)
		return
	}

	result, err := h.reportService.PeriodSummary(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PeriodCSV implements ReportHandler. Streams the export as a file download.
func (h *reportHandlerImpl) PeriodCSV(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pay period ID is required", nil)
		return
	}

	data, filename, err := h.reportService.PeriodCSV(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
