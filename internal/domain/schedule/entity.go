package schedule

import "time"

type ScheduleStatus string

const (
	StatusScheduled ScheduleStatus = "scheduled"
	StatusOff       ScheduleStatus = "off"
)

// Schedule pins a shift to a date; an employee has at most one schedule
// per date.
type Schedule struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	OutletID     *string
	DepartmentID *string
	ScheduleDate time.Time

	ShiftTemplateID *string
	ShiftStart      string // "15:04"
	ShiftEnd        string
	BreakMinutes    int
	Status          ScheduleStatus
	IsPublicHoliday bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
	TemplateCode *string
}

// SpanMinutes is the scheduled working span net of the break. Shifts that
// cross midnight wrap to the next day.
func (s Schedule) SpanMinutes() int {
	start, err := time.Parse("15:04", s.ShiftStart)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", s.ShiftEnd)
	if err != nil {
		return 0
	}
	span := int(end.Sub(start).Minutes())
	if span < 0 {
		span += 24 * 60
	}
	span -= s.BreakMinutes
	if span < 0 {
		span = 0
	}
	return span
}

type ShiftTemplate struct {
	ID           string
	CompanyID    string
	Code         string
	StartTime    string
	EndTime      string
	BreakMinutes int
	IsOff        bool
	IsActive     bool
}
