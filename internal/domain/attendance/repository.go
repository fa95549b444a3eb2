package attendance

import (
	"context"
	"time"
)

// AttendanceRepository - interface for the clock_in_records table
type AttendanceRepository interface {
	Create(ctx context.Context, record ClockInRecord) (ClockInRecord, error)
	GetByID(ctx context.Context, id string) (ClockInRecord, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, workDate time.Time) (ClockInRecord, error)
	GetByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]ClockInRecord, error)
	// SetPunch writes exactly one punch slot plus the derived measures;
	// slots already set are never rewritten.
	SetPunch(ctx context.Context, record ClockInRecord, slot PunchSlot) error
	GetPendingOT(ctx context.Context, companyID string, groupIDs []string, wholeCompany bool) ([]ClockInRecord, error)
	DecideOT(ctx context.Context, recordID string, approved bool, decidedBy string, reason *string) error
}
