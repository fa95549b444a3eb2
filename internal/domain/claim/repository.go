package claim

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
)

type ClaimFilter struct {
	CompanyID     string
	EmployeeID    *string
	OutletIDs     []string
	DepartmentIDs []string
	Status        *approval.Status
	Limit         int
	Offset        int
}

type ClaimTypeRepository interface {
	GetByID(ctx context.Context, id string) (*ClaimType, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]ClaimType, error)
}

type ClaimRequestRepository interface {
	Create(ctx context.Context, c *ClaimRequest) error
	GetByID(ctx context.Context, id string) (*ClaimRequest, error)
	GetByFilter(ctx context.Context, filter ClaimFilter) ([]ClaimRequest, error)
	UpdateTransition(ctx context.Context, id string, tr approval.Transition, actorID string, reason *string) error
}
