package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	SubmitMonth(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.ClockIn(r.Context(), actor)
	if err != nil {
		slog.Error("ClockIn service error", "error", err, "employee_id", actor.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", resp)
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.ClockOut(r.Context(), actor)
	if err != nil {
		slog.Error("ClockOut service error", "error", err, "employee_id", actor.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", resp)
}

// GetHistory implements AttendanceHandler. The employee defaults to the
// caller; admins may pass ?employee_id= to inspect someone else.
func (h *AttendanceHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	historyReq := attendance.HistoryRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		YearMonth:  r.URL.Query().Get("year_month"),
	}
	if historyReq.EmployeeID == "" {
		historyReq.EmployeeID = actor.EmployeeID
	}

	resp, err := h.attendanceService.GetHistory(r.Context(), actor, &historyReq)
	if err != nil {
		slog.Error("GetHistory service error", "error", err, "employee_id", historyReq.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// SubmitMonth implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SubmitMonth(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var submitReq attendance.MonthlySubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("SubmitMonth decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	resp, err := h.attendanceService.SubmitMonth(r.Context(), actor, &submitReq)
	if err != nil {
		slog.Error("SubmitMonth service error", "error", err, "employee_id", actor.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month submitted", resp)
}
