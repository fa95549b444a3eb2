package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("Company not found")
	ErrOutletNotFound     = errors.New("Outlet not found")
	ErrDepartmentNotFound = errors.New("Department not found")
)
