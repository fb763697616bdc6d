package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/payperiod"
	"github.com/punchd-app/punchd-backend-go/internal/handler/http/middleware"
	"github.com/punchd-app/punchd-backend-go/internal/handler/http/response"
)

type PayPeriodHandler interface {
	GetCurrent(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Lock(w http.ResponseWriter, r *http.Request)
	Unlock(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type payPeriodHandlerImpl struct {
	payPeriodService payperiod.Service
}

func NewPayPeriodHandler(payPeriodService payperiod.Service) PayPeriodHandler {
	return &payPeriodHandlerImpl{payPeriodService: payPeriodService}
}

// GetCurrent implements PayPeriodHandler. Materializes the period covering
// now when the company has a schedule; responds 404 when it does not.
func (h *payPeriodHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.payPeriodService.EnsureCurrent(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result == nil {
		response.NotFound(w, "No pay period schedule configured")
		return
	}

	response.Success(w, result)
}

// Create implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req payperiod.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payPeriodService.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay period created", result)
}

// Get implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.payPeriodService.GetByID(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	periods, total, err := h.payPeriodService.List(r.Context(), actor, page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	response.SuccessWithMeta(w, periods, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// Lock implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Lock(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.payPeriodService.Lock(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period locked", result)
}

// Unlock implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Unlock(w http.ResponseWriter, r *http.Request) {
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

	var req payperiod.UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payPeriodService.Unlock(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period unlocked", result)
}

// Export implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.payPeriodService.Export(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period exported", result)
}

// Summary implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.payPeriodService.Aggregate(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
