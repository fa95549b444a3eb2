package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/schedule"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	GetOwn(w http.ResponseWriter, r *http.Request)
	GetTeam(w http.ResponseWriter, r *http.Request)
	BulkCreate(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ValidateWeek(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}

// GetOwn implements ScheduleHandler.
func (h *ScheduleHandlerImpl) GetOwn(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	schedules, err := h.scheduleService.GetOwn(r.Context(), p, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, schedules)
}

// GetTeam implements ScheduleHandler.
func (h *ScheduleHandlerImpl) GetTeam(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	schedules, err := h.scheduleService.GetTeam(r.Context(), p, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, schedules)
}

// BulkCreate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) BulkCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req schedule.BulkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkCreate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.BulkCreate(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Schedules created", result)
}

// Update implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var entry schedule.ScheduleEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		slog.Error("Schedule update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.Update(r.Context(), p, chi.URLParam(r, "id"), entry)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule updated", result)
}

// Delete implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	if err := h.scheduleService.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule deleted", nil)
}

// ValidateWeek implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ValidateWeek(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.scheduleService.ValidateWeek(r.Context(), p, r.URL.Query().Get("week_of"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListTemplates implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	templates, err := h.scheduleService.ListTemplates(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, templates)
}
