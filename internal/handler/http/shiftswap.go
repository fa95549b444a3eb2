package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/shiftswap"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

type ShiftSwapHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Respond(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type ShiftSwapHandlerImpl struct {
	swapService shiftswap.Service
}

func NewShiftSwapHandler(swapService shiftswap.Service) ShiftSwapHandler {
	return &ShiftSwapHandlerImpl{swapService: swapService}
}

// Submit implements ShiftSwapHandler.
func (h *ShiftSwapHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req shiftswap.SubmitSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit swap decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.Submit(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift swap request submitted", result)
}

// Respond implements ShiftSwapHandler.
func (h *ShiftSwapHandlerImpl) Respond(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req shiftswap.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Swap respond decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.Respond(r.Context(), p, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Response recorded", result)
}

// ListOwn implements ShiftSwapHandler.
func (h *ShiftSwapHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	limit, offset := limitOffset(r)
	swaps, err := h.swapService.ListOwn(r.Context(), p, limit, offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, swaps)
}

// PendingApprovals implements ShiftSwapHandler.
func (h *ShiftSwapHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	swaps, err := h.swapService.PendingApprovals(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, swaps)
}

// Approve implements ShiftSwapHandler.
func (h *ShiftSwapHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.swapService.Approve(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift swap approved", result)
}

// Reject implements ShiftSwapHandler.
func (h *ShiftSwapHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("Reject swap decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.Reject(r.Context(), p, chi.URLParam(r, "id"), body.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift swap rejected", result)
}

// Cancel implements ShiftSwapHandler.
func (h *ShiftSwapHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.swapService.Cancel(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift swap cancelled", result)
}
