package employee

import "time"

// EmployeeRole is the operational role an employee holds inside their
// company, independent of the account role used for authentication.
type EmployeeRole string

const (
	RoleStaff      EmployeeRole = "staff"
	RoleSupervisor EmployeeRole = "supervisor"
	RoleManager    EmployeeRole = "manager"
	RoleDirector   EmployeeRole = "director"
	RoleBoss       EmployeeRole = "boss"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type EmploymentType string

const (
	EmploymentTypePermanent EmploymentType = "permanent"
	EmploymentTypeContract  EmploymentType = "contract"
	EmploymentTypePartTime  EmploymentType = "part_time"
)

type EmploymentStatus string

const (
	EmploymentStatusActive          EmploymentStatus = "active"
	EmploymentStatusNotice          EmploymentStatus = "notice"
	EmploymentStatusResignedPending EmploymentStatus = "resigned_pending"
	EmploymentStatusResigned        EmploymentStatus = "resigned"
	EmploymentStatusTerminated      EmploymentStatus = "terminated"
)

// Employee belongs to exactly one outlet or one department, matching the
// company's grouping type; the other reference is null.
type Employee struct {
	ID           string
	CompanyID    string
	OutletID     *string
	DepartmentID *string
	PositionID   *string
	EmployeeCode string
	FullName     string
	Gender       Gender
	PhoneNumber  *string
	Address      *string
	BankName     *string
	BankAccount  *string

	EmployeeRole     EmployeeRole
	EmploymentType   EmploymentType
	EmploymentStatus EmploymentStatus
	JoinDate         time.Time
	LastWorkingDay   *time.Time

	ESSEnabled        bool
	ClockInRequired   bool
	IsScheduleManager bool // designated office-company schedule/leave approver

	// Position free-text, used as the last resort when deriving the
	// hierarchy level.
	Position *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsPartTimer reports whether the employee is excluded from overtime
// candidacy.
func (e Employee) IsPartTimer() bool {
	return e.EmploymentType == EmploymentTypePartTime
}

// GroupID returns the outlet or department the employee belongs to.
func (e Employee) GroupID() string {
	if e.OutletID != nil {
		return *e.OutletID
	}
	if e.DepartmentID != nil {
		return *e.DepartmentID
	}
	return ""
}

// EmployeeOutlet is the N:M assignment used when a manager covers
// multiple outlets.
type EmployeeOutlet struct {
	EmployeeID string
	OutletID   string
}

// Position carries the canonical role string mapped through the hierarchy
// table.
type Position struct {
	ID        string
	CompanyID string
	Name      string
	Role      string
}
