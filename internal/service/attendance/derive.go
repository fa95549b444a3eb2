package attendance

import (
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/attendance"
	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/schedule"
)

const otFlagThresholdMinutes = 60

// DeriveMeasures recomputes the workday's derived minutes from the punches
// recorded so far. A missing second session contributes nothing; overtime
// measures against the matched schedule's span, or against the company's
// unscheduled threshold when there is no working schedule that day.
func DeriveMeasures(rec *attendance.ClockInRecord, sched *schedule.Schedule, emp employee.Employee, settings company.Settings) {
	total := 0
	if rec.ClockIn1 != nil && rec.ClockOut1 != nil {
		total += minutesBetween(rec.ClockIn1.At, rec.ClockOut1.At)
	}
	if rec.ClockIn2 != nil && rec.ClockOut2 != nil {
		total += minutesBetween(rec.ClockIn2.At, rec.ClockOut2.At)
	}

	breakMinutes := 0
	if rec.ClockOut1 != nil && rec.ClockIn2 != nil {
		breakMinutes = minutesBetween(rec.ClockOut1.At, rec.ClockIn2.At)
	}

	rec.TotalWorkMinutes = total
	rec.BreakMinutes = breakMinutes

	ot := 0
	if sched != nil && sched.Status == schedule.StatusScheduled {
		ot = total - sched.SpanMinutes()
	} else if settings.UnscheduledOTThresholdMinutes > 0 {
		ot = total - settings.UnscheduledOTThresholdMinutes
	}
	if ot < 0 || emp.IsPartTimer() {
		ot = 0
	}

	rec.OTMinutes = ot
	rec.OTFlagged = ot >= otFlagThresholdMinutes
}

func minutesBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
