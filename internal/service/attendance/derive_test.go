package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tandemhr/ess-backend-go/internal/domain/attendance"
	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/schedule"
)

func punchAt(h, m int) *attendance.Punch {
	return &attendance.Punch{At: time.Date(2025, time.March, 10, h, m, 0, 0, time.UTC)}
}

func fullDay() *attendance.ClockInRecord {
	return &attendance.ClockInRecord{
		ClockIn1:  punchAt(9, 0),
		ClockOut1: punchAt(13, 0),
		ClockIn2:  punchAt(14, 0),
		ClockOut2: punchAt(19, 0),
	}
}

func TestDeriveMeasuresScheduled(t *testing.T) {
	rec := fullDay()
	sched := &schedule.Schedule{
		ShiftStart:   "09:00",
		ShiftEnd:     "17:00",
		BreakMinutes: 60,
		Status:       schedule.StatusScheduled,
	}

	DeriveMeasures(rec, sched, employee.Employee{}, company.Settings{})

	assert.Equal(t, 540, rec.TotalWorkMinutes)
	assert.Equal(t, 60, rec.BreakMinutes)
	// 540 worked against a 420-minute span.
	assert.Equal(t, 120, rec.OTMinutes)
	assert.True(t, rec.OTFlagged)
}

func TestDeriveMeasuresBelowFlagThreshold(t *testing.T) {
	rec := &attendance.ClockInRecord{
		ClockIn1:  punchAt(9, 0),
		ClockOut1: punchAt(17, 30),
	}
	sched := &schedule.Schedule{ShiftStart: "09:00", ShiftEnd: "17:00", Status: schedule.StatusScheduled}

	DeriveMeasures(rec, sched, employee.Employee{}, company.Settings{})

	assert.Equal(t, 30, rec.OTMinutes)
	assert.False(t, rec.OTFlagged)
}

func TestDeriveMeasuresUnscheduled(t *testing.T) {
	rec := fullDay()

	// No threshold configured: no overtime accrues without a schedule.
	DeriveMeasures(rec, nil, employee.Employee{}, company.Settings{})
	assert.Equal(t, 0, rec.OTMinutes)

	DeriveMeasures(rec, nil, employee.Employee{}, company.Settings{UnscheduledOTThresholdMinutes: 480})
	assert.Equal(t, 60, rec.OTMinutes)
	assert.True(t, rec.OTFlagged)
}

func TestDeriveMeasuresOffDay(t *testing.T) {
	rec := fullDay()
	off := &schedule.Schedule{Status: schedule.StatusOff}

	// An off-day schedule behaves like no schedule.
	DeriveMeasures(rec, off, employee.Employee{}, company.Settings{UnscheduledOTThresholdMinutes: 480})
	assert.Equal(t, 60, rec.OTMinutes)
}

func TestDeriveMeasuresPartTimer(t *testing.T) {
	rec := fullDay()
	sched := &schedule.Schedule{ShiftStart: "09:00", ShiftEnd: "17:00", Status: schedule.StatusScheduled}
	partTimer := employee.Employee{EmploymentType: employee.EmploymentTypePartTime}

	DeriveMeasures(rec, sched, partTimer, company.Settings{})

	assert.Equal(t, 540, rec.TotalWorkMinutes)
	assert.Equal(t, 0, rec.OTMinutes)
	assert.False(t, rec.OTFlagged)
}

func TestDeriveMeasuresPartialDay(t *testing.T) {
	rec := &attendance.ClockInRecord{
		ClockIn1:  punchAt(9, 0),
		ClockOut1: punchAt(13, 0),
		ClockIn2:  punchAt(14, 0),
	}

	DeriveMeasures(rec, nil, employee.Employee{}, company.Settings{})

	// The open second session contributes nothing yet.
	assert.Equal(t, 240, rec.TotalWorkMinutes)
	assert.Equal(t, 60, rec.BreakMinutes)
}

func TestScheduleSpanMidnightWrap(t *testing.T) {
	s := schedule.Schedule{ShiftStart: "22:00", ShiftEnd: "06:00", BreakMinutes: 60}
	assert.Equal(t, 7*60, s.SpanMinutes())
}
