package schedule

import (
	"fmt"
	"time"

	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
)

type ScheduleEntry struct {
	EmployeeID      string  `json:"employee_id"`
	ScheduleDate    string  `json:"schedule_date"`
	ShiftTemplateID *string `json:"shift_template_id"`
	ShiftStart      *string `json:"shift_start"`
	ShiftEnd        *string `json:"shift_end"`
	BreakMinutes    *int    `json:"break_minutes"`
	IsOff           bool    `json:"is_off"`
}

type BulkCreateRequest struct {
	Entries []ScheduleEntry `json:"entries"`
}

func (r *BulkCreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{Field: "entries", Message: "entries must not be empty"})
		return errs
	}
	for i, e := range r.Entries {
		field := func(name string) string { return fmt.Sprintf("entries[%d].%s", i, name) }
		if !validator.IsValidUUID(e.EmployeeID) {
			errs = append(errs, validator.ValidationError{Field: field("employee_id"), Message: "employee_id must be a valid UUID"})
		}
		if _, ok := validator.IsValidDate(e.ScheduleDate); !ok {
			errs = append(errs, validator.ValidationError{Field: field("schedule_date"), Message: "schedule_date must be in YYYY-MM-DD format"})
		}
		if !e.IsOff && e.ShiftTemplateID == nil {
			if e.ShiftStart == nil || e.ShiftEnd == nil {
				errs = append(errs, validator.ValidationError{Field: field("shift_start"), Message: "shift_start and shift_end are required when no template is given"})
			} else {
				if _, ok := validator.IsValidTimeOfDay(*e.ShiftStart); !ok {
					errs = append(errs, validator.ValidationError{Field: field("shift_start"), Message: "shift_start must be in HH:MM format"})
				}
				if _, ok := validator.IsValidTimeOfDay(*e.ShiftEnd); !ok {
					errs = append(errs, validator.ValidationError{Field: field("shift_end"), Message: "shift_end must be in HH:MM format"})
				}
			}
		}
		if e.BreakMinutes != nil && *e.BreakMinutes < 0 {
			errs = append(errs, validator.ValidationError{Field: field("break_minutes"), Message: "break_minutes must not be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RowError reports a single rejected entry in a bulk create; accepted rows
// are committed regardless.
type RowError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type BulkCreateResponse struct {
	Created int        `json:"created"`
	Errors  []RowError `json:"errors"`
}

type ScheduleResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	ScheduleDate    string  `json:"schedule_date"`
	ShiftTemplateID *string `json:"shift_template_id,omitempty"`
	TemplateCode    *string `json:"template_code,omitempty"`
	ShiftStart      string  `json:"shift_start"`
	ShiftEnd        string  `json:"shift_end"`
	BreakMinutes    int     `json:"break_minutes"`
	Status          string  `json:"status"`
	IsPublicHoliday bool    `json:"is_public_holiday"`
}

func ToResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		ScheduleDate:    s.ScheduleDate.Format("2006-01-02"),
		ShiftTemplateID: s.ShiftTemplateID,
		TemplateCode:    s.TemplateCode,
		ShiftStart:      s.ShiftStart,
		ShiftEnd:        s.ShiftEnd,
		BreakMinutes:    s.BreakMinutes,
		Status:          string(s.Status),
		IsPublicHoliday: s.IsPublicHoliday,
	}
}

// WeeklyReport summarises one employee's week for the rest-day check.
type WeeklyReport struct {
	EmployeeID         string   `json:"employee_id"`
	EmployeeName       *string  `json:"employee_name,omitempty"`
	WeekStart          string   `json:"week_start"`
	WorkDays           int      `json:"work_days"`
	OffDays            int      `json:"off_days"`
	UnscheduledDays    int      `json:"unscheduled_days"`
	MaxConsecutiveWork int      `json:"max_consecutive_work"`
	Warnings           []string `json:"warnings"`
}

type WeeklyValidationResponse struct {
	WeekStart string         `json:"week_start"`
	Reports   []WeeklyReport `json:"reports"`
}

// WeekStartOf normalises any date to the Monday of its week.
func WeekStartOf(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return time.Date(d.Year(), d.Month(), d.Day()-offset, 0, 0, 0, 0, d.Location())
}
