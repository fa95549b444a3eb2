package company

import "time"

// GroupingType distinguishes the two operating models the suite serves:
// outlet/shift-based F&B operators and department/office-based operators.
// It is immutable once the company has employees.
type GroupingType string

const (
	GroupingOutlet     GroupingType = "outlet"
	GroupingDepartment GroupingType = "department"
)

// ProrationRounding controls how year-to-date earned leave is rounded.
type ProrationRounding string

const (
	RoundUp      ProrationRounding = "up"
	RoundDown    ProrationRounding = "down"
	RoundNearest ProrationRounding = "nearest" // nearest half-day
)

type Company struct {
	ID           string
	Name         string
	GroupingType GroupingType
	Settings     Settings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Settings is stored as JSONB on the companies table.
type Settings struct {
	LeaveProrationRounding ProrationRounding `json:"leave_proration_rounding"`
	// UnscheduledOTThresholdMinutes is the daily span beyond which worked
	// time counts as overtime when the employee has no schedule that day.
	UnscheduledOTThresholdMinutes int `json:"unscheduled_ot_threshold_minutes"`
}

// IsOutletBased reports whether employees of this company are grouped by
// outlet (true) or by department (false).
func (c Company) IsOutletBased() bool {
	return c.GroupingType == GroupingOutlet
}

type Outlet struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Department struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicHoliday applies to one company, or to all when CompanyID is nil.
type PublicHoliday struct {
	ID        string
	CompanyID *string
	Date      time.Time
	Name      string
}
