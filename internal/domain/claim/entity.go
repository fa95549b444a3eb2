package claim

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
)

type ClaimType struct {
	ID        string
	CompanyID string
	Name      string
	MaxAmount *decimal.Decimal
	IsActive  bool
}

type ClaimRequest struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	ClaimTypeID string
	ClaimDate   time.Time
	Amount      decimal.Decimal
	Description *string
	ReceiptURL  string

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
	EmployeeName  *string
	ClaimTypeName *string
	OwnerRole     *string
}
