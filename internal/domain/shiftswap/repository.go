package shiftswap

import (
	"context"

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
	Create(ctx context.Context, s *ShiftSwapRequest) error
	GetByID(ctx context.Context, id string) (*ShiftSwapRequest, error)
	GetByFilter(ctx context.Context, filter Filter) ([]ShiftSwapRequest, error)
	SetTargetResponse(ctx context.Context, id string, accepted bool) error
	UpdateTransition(ctx context.Context, id string, tr approval.Transition, actorID string, reason *string) error
}
