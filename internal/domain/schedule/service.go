package schedule

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type ScheduleService interface {
	GetOwn(ctx context.Context, p identity.Principal, from, to string) ([]ScheduleResponse, error)
	GetTeam(ctx context.Context, p identity.Principal, from, to string) ([]ScheduleResponse, error)

	// BulkCreate applies the T+2 rule per row and reports per-row errors
	// without aborting the batch.
	BulkCreate(ctx context.Context, p identity.Principal, req BulkCreateRequest) (BulkCreateResponse, error)
	Update(ctx context.Context, p identity.Principal, scheduleID string, entry ScheduleEntry) (ScheduleResponse, error)
	Delete(ctx context.Context, p identity.Principal, scheduleID string) error

	// ValidateWeek summarises the scoped group's week and flags employees
	// scheduled without a rest day.
	ValidateWeek(ctx context.Context, p identity.Principal, weekOf string) (WeeklyValidationResponse, error)
	ListTemplates(ctx context.Context, p identity.Principal) ([]ShiftTemplate, error)
}
