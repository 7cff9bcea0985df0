package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/request"
	"github.com/kintai-hq/kintai-backend-go/internal/handler/http/response"
)

type RequestHandler interface {
	SubmitLeave(w http.ResponseWriter, r *http.Request)
	SubmitAdjustment(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService request.Service
}

func NewRequestHandler(requestService request.Service) RequestHandler {
	return &RequestHandlerImpl{requestService: requestService}
}

// SubmitLeave implements RequestHandler.
func (h *RequestHandlerImpl) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var leaveReq request.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&leaveReq); err != nil {
		slog.Error("SubmitLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	resp, err := h.requestService.SubmitLeave(r.Context(), actor, &leaveReq)
	if err != nil {
		slog.Error("SubmitLeave service error", "error", err, "employee_id", actor.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", resp)
}

// SubmitAdjustment implements RequestHandler.
func (h *RequestHandlerImpl) SubmitAdjustment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var adjustmentReq request.SubmitAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&adjustmentReq); err != nil {
		slog.Error("SubmitAdjustment decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	resp, err := h.requestService.SubmitAdjustment(r.Context(), actor, &adjustmentReq)
	if err != nil {
		slog.Error("SubmitAdjustment service error", "error", err, "employee_id", actor.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment request submitted", resp)
}

// Approve implements RequestHandler.
func (h *RequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	requestType := request.Type(r.URL.Query().Get("type"))

	if err := h.requestService.Approve(r.Context(), actor, requestType, requestID); err != nil {
		slog.Error("Approve service error", "error", err, "request_id", requestID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request approved", nil)
}

// Reject implements RequestHandler.
func (h *RequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	requestType := request.Type(r.URL.Query().Get("type"))

	var rejectReq request.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&rejectReq); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	if err := h.requestService.Reject(r.Context(), actor, requestType, requestID, &rejectReq); err != nil {
		slog.Error("Reject service error", "error", err, "request_id", requestID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request rejected", nil)
}

// List implements RequestHandler.
func (h *RequestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := request.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Type:       request.Type(r.URL.Query().Get("type")),
		Status:     request.Status(r.URL.Query().Get("status")),
	}

	resp, err := h.requestService.List(r.Context(), actor, &filter)
	if err != nil {
		slog.Error("List requests service error", "error", err, "employee_id", actor.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
