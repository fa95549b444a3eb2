package employee

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type EmployeeService interface {
	GetProfile(ctx context.Context, p identity.Principal) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, p identity.Principal, req UpdateProfileRequest) (ProfileResponse, error)
}
