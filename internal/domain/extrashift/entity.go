package extrashift

import (
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
)

// ExtraShiftRequest asks for a working day on a date the employee is not
// scheduled. Approval at the final level creates the schedule row.
type ExtraShiftRequest struct {
	ID         string
	CompanyID  string
	EmployeeID string
	ShiftDate  time.Time
	ShiftStart string
	ShiftEnd   string
	Reason     *string

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
	EmployeeName *string
	OwnerRole    *string
}
