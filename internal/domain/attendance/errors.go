package attendance

import "errors"

var (
	ErrRecordNotFound    = errors.New("Attendance record not found")
	ErrDayComplete       = errors.New("All punches for today are already recorded")
	ErrClockInNotEnabled = errors.New("Clock-in is not enabled for this employee")
	ErrNotOTCandidate    = errors.New("Record is not pending overtime approval")
)
