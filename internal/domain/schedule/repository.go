package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (*Schedule, error)
	GetByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Schedule, error)
	GetByGroupRange(ctx context.Context, companyID string, outletIDs, departmentIDs []string, from, to time.Time) ([]Schedule, error)
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id string) error
}

type ShiftTemplateRepository interface {
	GetByID(ctx context.Context, id string) (*ShiftTemplate, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]ShiftTemplate, error)
}
