package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)

	Apply(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Revert(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// ListTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	types, err := h.leaveService.GetLeaveTypes(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, types)
}

// GetSummary implements LeaveHandler.
func (h *LeaveHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	summary, err := h.leaveService.GetSummary(r.Context(), p, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// Apply implements LeaveHandler.
func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Apply(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", result)
}

// GetRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	result, err := h.leaveService.GetRequest(r.Context(), p, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	filter := leave.LeaveRequestFilter{Page: 1, Limit: 20}
	q := r.URL.Query()
	if v := q.Get("leave_type_id"); v != "" {
		filter.LeaveTypeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	requests, total, err := h.leaveService.ListOwn(r.Context(), p, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, requests, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// PendingApprovals implements LeaveHandler.
func (h *LeaveHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	requests, err := h.leaveService.PendingApprovals(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.Approve(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", result)
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("Reject leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Reject(r.Context(), p, chi.URLParam(r, "id"), body.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// Cancel implements LeaveHandler.
func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.Cancel(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request cancelled", result)
}

// Revert implements LeaveHandler.
func (h *LeaveHandlerImpl) Revert(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.Revert(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request reverted", result)
}
