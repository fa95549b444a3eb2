package shiftswap

import (
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
)

// ShiftSwapRequest trades the requester's schedule on one date with a
// colleague's schedule on another. Both schedules swap owners when the
// request reaches final approval.
type ShiftSwapRequest struct {
	ID                string
	CompanyID         string
	RequesterID       string
	TargetID          string
	RequesterSchedule string
	TargetSchedule    string
	Reason            *string

	TargetAccepted    *bool
	TargetRespondedAt *time.Time

	Status               approval.Status
	ApprovalLevel        approval.Level
	AutoApproved         bool
	SupervisorApprovedBy *string
	SupervisorApprovedAt *time.Time
	ManagerApprovedBy    *string
	ManagerApprovedAt    *time.Time
	AdminApprovedBy      *string
	AdminApprovedAt      *time.Time
	RejectionReason      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	RequesterName *string
	TargetName    *string
	RequesterDate *time.Time
	TargetDate    *time.Time
	OwnerRole     *string
}
