package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// GetProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	profile, err := h.employeeService.GetProfile(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

// UpdateProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req employee.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := h.employeeService.UpdateProfile(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated successfully", profile)
}
