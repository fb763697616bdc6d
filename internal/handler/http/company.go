package http

import (
	"encoding/json"
	"net/http"

	"github.com/punchd-app/punchd-backend-go/internal/domain/company"
	"github.com/punchd-app/punchd-backend-go/internal/handler/http/middleware"
	"github.com/punchd-app/punchd-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetOvertimeSettings(w http.ResponseWriter, r *http.Request)
	UpdateOvertimeSettings(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)
	UpdateSchedule(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.Service
}

func NewCompanyHandler(companyService company.Service) CompanyHandler {
	return &companyHandlerImpl{companyService: companyService}
}

// GetOvertimeSettings implements CompanyHandler.
func (h *companyHandlerImpl) GetOvertimeSettings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.companyService.GetOvertimeSettings(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateOvertimeSettings implements CompanyHandler.
func (h *companyHandlerImpl) UpdateOvertimeSettings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req company.OvertimeSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.companyService.UpdateOvertimeSettings(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime settings updated", result)
}

// GetSchedule implements CompanyHandler.
func (h *companyHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.companyService.GetSchedule(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSchedule implements CompanyHandler.
func (h *companyHandlerImpl) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req company.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.companyService.UpdateSchedule(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period schedule updated", result)
}
