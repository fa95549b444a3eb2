package employee

import "context"

// EmployeeRepository - interface for the employees table
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, companyID, employeeCode string) (Employee, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	GetByOutletIDs(ctx context.Context, outletIDs []string) ([]Employee, error)
	GetByDepartmentIDs(ctx context.Context, departmentIDs []string) ([]Employee, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
}

// EmployeeOutletRepository - interface for the employee_outlets table
type EmployeeOutletRepository interface {
	GetOutletIDsByEmployee(ctx context.Context, employeeID string) ([]string, error)
}

// PositionRepository - interface for the positions table
type PositionRepository interface {
	GetByID(ctx context.Context, id string) (Position, error)
}
