package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tandemhr/ess-backend-go/internal/domain/attendance"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	PendingOT(w http.ResponseWriter, r *http.Request)
	DecideOTBatch(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Punch implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Punch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Punch(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.Today(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// History implements AttendanceHandler.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	records, err := h.attendanceService.History(r.Context(), p, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// PendingOT implements AttendanceHandler.
func (h *AttendanceHandlerImpl) PendingOT(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	records, err := h.attendanceService.PendingOT(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// DecideOTBatch implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DecideOTBatch(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req attendance.BatchOTDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideOTBatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.DecideOTBatch(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime decisions applied", result)
}
