package extrashift

import (
	"context"
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
)

type Filter struct {
	CompanyID     string
	EmployeeID    *string
	OutletIDs     []string
	DepartmentIDs []string
	Status        *approval.Status
	Limit         int
	Offset        int
}

type Repository interface {
	Create(ctx context.Context, r *ExtraShiftRequest) error
	GetByID(ctx context.Context, id string) (*ExtraShiftRequest, error)
	GetByFilter(ctx context.Context, filter Filter) ([]ExtraShiftRequest, error)
	CheckPendingByDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	UpdateTransition(ctx context.Context, id string, tr approval.Transition, actorID string, reason *string) error
}
