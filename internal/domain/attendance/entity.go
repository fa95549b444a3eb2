package attendance

import "time"

// PunchSlot names the four ordered punches of a workday.
type PunchSlot string

const (
	PunchIn1  PunchSlot = "clock_in_1"
	PunchOut1 PunchSlot = "clock_out_1"
	PunchIn2  PunchSlot = "clock_in_2"
	PunchOut2 PunchSlot = "clock_out_2"
	PunchDone PunchSlot = "done"
)

// Punch captures one slot: the moment plus the selfie and GPS evidence.
type Punch struct {
	At        time.Time
	PhotoURL  *string
	Latitude  *float64
	Longitude *float64
	Address   *string
}

// ClockInRecord is keyed by (employee_id, work_date). Punch slots are
// append-only: once set, a slot is never rewritten in-band.
type ClockInRecord struct {
	ID         string
	EmployeeID string
	CompanyID  string
	WorkDate   time.Time

	ClockIn1  *Punch
	ClockOut1 *Punch
	ClockIn2  *Punch
	ClockOut2 *Punch

	ScheduleID       *string
	InsideSchedule   bool
	TotalWorkMinutes int
	BreakMinutes     int
	OTMinutes        int
	OTFlagged        bool

	// OTApproved is tri-state: nil = pending decision, true/false =
	// decided.
	OTApproved        *bool
	OTApprovedBy      *string
	OTApprovedAt      *time.Time
	OTRejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
	// OwnerRole is the owner's employee role, joined in for the pending-OT
	// feed's hierarchy filtering.
	OwnerRole *string
}

// NextAction returns the first empty punch slot in protocol order.
func (r ClockInRecord) NextAction() PunchSlot {
	switch {
	case r.ClockIn1 == nil:
		return PunchIn1
	case r.ClockOut1 == nil:
		return PunchOut1
	case r.ClockIn2 == nil:
		return PunchIn2
	case r.ClockOut2 == nil:
		return PunchOut2
	}
	return PunchDone
}

// OTPending reports whether this record sits in the overtime approval feed.
func (r ClockInRecord) OTPending() bool {
	return r.OTFlagged && r.OTApproved == nil
}
