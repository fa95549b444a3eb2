package schedule

import "errors"

var (
	ErrScheduleNotFound      = errors.New("Schedule not found")
	ErrShiftTemplateNotFound = errors.New("Shift template not found")
	ErrShiftTemplateInactive = errors.New("Shift template is no longer active")
	ErrDuplicateSchedule     = errors.New("Employee already has a schedule on this date")
	ErrScheduleLocked        = errors.New("Schedules can only be changed at least two days in advance")
	ErrNotScheduleManager    = errors.New("You are not allowed to manage schedules")
	ErrOutsideManagedGroup   = errors.New("Employee is outside the groups you manage")
	ErrInvalidShiftTimes     = errors.New("Shift end time must differ from start time")
)
