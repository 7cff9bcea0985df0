package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Retire(w http.ResponseWriter, r *http.Request)
	AdjustPaidLeave(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	resp, err := h.employeeService.Create(r.Context(), actor, &createReq)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", resp)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var status *employee.EmploymentStatus
	if s := r.URL.Query().Get("status"); s != "" {
		es := employee.EmploymentStatus(s)
		status = &es
	}

	resp, err := h.employeeService.List(r.Context(), actor, status)
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.employeeService.Get(r.Context(), actor, employeeID)
	if err != nil {
		slog.Error("Get employee service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Retire implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Retire(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.employeeService.Retire(r.Context(), actor, employeeID)
	if err != nil {
		slog.Error("Retire employee service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee retired", resp)
}

// AdjustPaidLeave implements EmployeeHandler.
func (h *EmployeeHandlerImpl) AdjustPaidLeave(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")

	var adjustReq employee.AdjustPaidLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&adjustReq); err != nil {
		slog.Error("AdjustPaidLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	resp, err := h.employeeService.AdjustPaidLeave(r.Context(), actor, employeeID, &adjustReq)
	if err != nil {
		slog.Error("AdjustPaidLeave service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Paid leave balance adjusted", resp)
}
