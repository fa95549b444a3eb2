package leave

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
)

// LeaveType entity
type LeaveType struct {
	ID        string
	CompanyID *string // nil when the type is shared by every company
	Code      string  // AL, SL, HL, MAT, PAT, CL, EL, UL, ...
	Name      string

	IsPaid             bool
	RequiresAttachment bool
	IsConsecutive      bool // maternity/paternity: every calendar day counts
	CarriesForward     bool
	AutoApprove        bool // office-company paid AL auto-approves on creation

	MaxOccurrences    *int
	MinServiceDays    *int
	GenderRestriction *string
	MaxCarryForward   *float64

	DefaultDaysPerYear float64
	EntitlementRules   EntitlementRules

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntitlementRule maps a service-year threshold to an annual entitlement.
type EntitlementRule struct {
	MinServiceYears float64 `json:"min_service_years"`
	Days            float64 `json:"days"`
}

// EntitlementRules is the ordered JSONB rule table on leave_types.
type EntitlementRules []EntitlementRule

// Value implements driver.Valuer for database storage
func (er EntitlementRules) Value() (driver.Value, error) {
	if len(er) == 0 {
		return nil, nil
	}
	return json.Marshal(er)
}

// Scan implements sql.Scanner for database retrieval
func (er *EntitlementRules) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan EntitlementRules: invalid type")
	}

	return json.Unmarshal(bytes, er)
}

// LeaveBalance is keyed by (employee, leave type, year). Rows are lazily
// materialized and thereafter updated only by leave engine transitions.
type LeaveBalance struct {
	ID             string
	EmployeeID     string
	LeaveTypeID    string
	Year           int
	EntitledDays   float64
	CarriedForward float64
	UsedDays       float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Remaining is the full-year balance (entitled + carried - used).
func (b LeaveBalance) Remaining() float64 {
	return b.EntitledDays + b.CarriedForward - b.UsedDays
}

// LeaveRequest entity. All attributes except status, approval level, the
// per-level approver fields and the rejection reason are immutable after
// creation.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays float64
	HalfDay   bool
	Reason    string
	MCUrl     *string

	Status        approval.Status
	ApprovalLevel approval.Level
	AutoApproved  bool

	SupervisorApprovedBy *string
	SupervisorApprovedAt *time.Time
	ManagerApprovedBy    *string
	ManagerApprovedAt    *time.Time
	AdminApprovedBy      *string
	AdminApprovedAt      *time.Time
	RejectionReason      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeCode *string
	LeaveTypeName *string
	EmployeeName  *string
	// OwnerRole is the requester's employee role, joined in for the
	// approver feed's hierarchy filtering.
	OwnerRole *string
}

// Summary is the derived balance view handed back to callers.
type Summary struct {
	LeaveTypeID    string  `json:"leave_type_id"`
	LeaveTypeCode  string  `json:"leave_type_code"`
	Year           int     `json:"year"`
	EntitledDays   float64 `json:"entitled_days"`
	CarriedForward float64 `json:"carried_forward"`
	UsedDays       float64 `json:"used_days"`
	YTDEarned      float64 `json:"ytd_earned"`
	AdvanceLeave   float64 `json:"advance_leave"`
	// EarnedBalance may be negative and is surfaced as such.
	EarnedBalance float64 `json:"earned_balance"`
}
