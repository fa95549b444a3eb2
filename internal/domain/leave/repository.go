package leave

import (
	"context"
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
)

// LeaveTypeRepository - interface for the leave_types table
type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]LeaveType, error)
}

// LeaveBalanceRepository - interface for the leave_balances table
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	// AddUsedDays applies a signed delta to used_days; the deduction
	// protocol calls it with +total_days on approval and -total_days on
	// reversal, always inside the transition's transaction.
	AddUsedDays(ctx context.Context, balanceID string, delta float64) error
}

// LeaveRequestFilter narrows list queries.
type LeaveRequestFilter struct {
	EmployeeID  *string
	LeaveTypeID *string
	Status      *string
	StartDate   *string
	EndDate     *string
	Page        int
	Limit       int
}

// LeaveRequestRepository - interface for the leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	GetPendingByGroup(ctx context.Context, companyID string, groupIDs []string, wholeCompany bool) ([]LeaveRequest, error)
	CheckOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	CountByTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)
	// UpdateTransition writes the mutable transition fields in one statement.
	UpdateTransition(ctx context.Context, request LeaveRequest) error
	GetStalePending(ctx context.Context, asOf time.Time) ([]LeaveRequest, error)
}

// StatusFilter is a convenience for callers building filters.
func StatusFilter(s approval.Status) *string {
	v := string(s)
	return &v
}
