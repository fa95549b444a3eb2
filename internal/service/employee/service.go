package employee

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, p identity.Principal) (employee.ProfileResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.ToProfileResponse(emp), nil
}

// UpdateProfile implements employee.EmployeeService. Only the caller's own
// profile is reachable; the employee id comes from the session, never the
// request body.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, p identity.Principal, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	req.EmployeeID = p.EmployeeID
	if err := s.employeeRepo.UpdateProfile(ctx, req); err != nil {
		return employee.ProfileResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.ToProfileResponse(emp), nil
}
