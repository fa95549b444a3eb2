package company

import (
	"context"
	"time"
)

// CompanyRepository - interface for the companies table
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
}

// OutletRepository - interface for the outlets table
type OutletRepository interface {
	GetByID(ctx context.Context, id string) (Outlet, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Outlet, error)
}

// DepartmentRepository - interface for the departments table
type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (Department, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Department, error)
}

// PublicHolidayRepository - interface for the public_holidays table.
// Company-scoped rows and global rows (company_id IS NULL) both apply.
type PublicHolidayRepository interface {
	GetByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]PublicHoliday, error)
}
