package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/claim"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

type ClaimHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type ClaimHandlerImpl struct {
	claimService claim.ClaimService
}

func NewClaimHandler(claimService claim.ClaimService) ClaimHandler {
	return &ClaimHandlerImpl{claimService: claimService}
}

// ListTypes implements ClaimHandler.
func (h *ClaimHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	types, err := h.claimService.GetClaimTypes(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, types)
}

// Submit implements ClaimHandler.
func (h *ClaimHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req claim.SubmitClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit claim decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.claimService.Submit(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Claim submitted", result)
}

// ListOwn implements ClaimHandler.
func (h *ClaimHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	limit, offset := limitOffset(r)
	claims, err := h.claimService.ListOwn(r.Context(), p, limit, offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, claims)
}

// PendingApprovals implements ClaimHandler.
func (h *ClaimHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	claims, err := h.claimService.PendingApprovals(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, claims)
}

// Approve implements ClaimHandler.
func (h *ClaimHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.claimService.Approve(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Claim approved", result)
}

// Reject implements ClaimHandler.
func (h *ClaimHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("Reject claim decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.claimService.Reject(r.Context(), p, chi.URLParam(r, "id"), body.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Claim rejected", result)
}

// Cancel implements ClaimHandler.
func (h *ClaimHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.claimService.Cancel(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Claim cancelled", result)
}
