package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/extrashift"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

type ExtraShiftHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type ExtraShiftHandlerImpl struct {
	extraShiftService extrashift.Service
}

func NewExtraShiftHandler(extraShiftService extrashift.Service) ExtraShiftHandler {
	return &ExtraShiftHandlerImpl{extraShiftService: extraShiftService}
}

// Submit implements ExtraShiftHandler.
func (h *ExtraShiftHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req extrashift.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit extra shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.extraShiftService.Submit(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Extra shift request submitted", result)
}

// ListOwn implements ExtraShiftHandler.
func (h *ExtraShiftHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	limit, offset := limitOffset(r)
	requests, err := h.extraShiftService.ListOwn(r.Context(), p, limit, offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// PendingApprovals implements ExtraShiftHandler.
func (h *ExtraShiftHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	requests, err := h.extraShiftService.PendingApprovals(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// Approve implements ExtraShiftHandler.
func (h *ExtraShiftHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.extraShiftService.Approve(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Extra shift request approved", result)
}

// Reject implements ExtraShiftHandler.
func (h *ExtraShiftHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("Reject extra shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.extraShiftService.Reject(r.Context(), p, chi.URLParam(r, "id"), body.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Extra shift request rejected", result)
}

// Cancel implements ExtraShiftHandler.
func (h *ExtraShiftHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.extraShiftService.Cancel(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Extra shift request cancelled", result)
}
