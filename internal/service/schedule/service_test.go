package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStartOf(t *testing.T) {
	monday := day(2025, time.September, 1)
	for i := 0; i < 7; i++ {
		got := schedule.WeekStartOf(monday.AddDate(0, 0, i))
		assert.Equal(t, monday, got, "day offset %d", i)
	}
	assert.Equal(t, day(2025, time.August, 25), schedule.WeekStartOf(day(2025, time.August, 31)))
}

func TestCheckEditable(t *testing.T) {
	now := day(2025, time.September, 10)
	svc := &ScheduleServiceImpl{now: func() time.Time { return now }}

	// Today and tomorrow sit inside the horizon.
	assert.ErrorIs(t, svc.checkEditable(day(2025, time.September, 10), false), schedule.ErrScheduleLocked)
	assert.ErrorIs(t, svc.checkEditable(day(2025, time.September, 11), false), schedule.ErrScheduleLocked)
	assert.ErrorIs(t, svc.checkEditable(day(2025, time.September, 1), false), schedule.ErrScheduleLocked)

	// Day after tomorrow onward is editable.
	assert.NoError(t, svc.checkEditable(day(2025, time.September, 12), false))
	assert.NoError(t, svc.checkEditable(day(2025, time.October, 1), false))

	// Exempt principals edit anything.
	assert.NoError(t, svc.checkEditable(day(2025, time.September, 1), true))
}

func TestWeeklyReport(t *testing.T) {
	weekStart := day(2025, time.September, 1)
	member := employee.Employee{ID: "e1", FullName: "Ava"}

	statuses := func(days ...schedule.ScheduleStatus) map[string]schedule.ScheduleStatus {
		m := make(map[string]schedule.ScheduleStatus, len(days))
		for i, st := range days {
			if st != "" {
				m[weekStart.AddDate(0, 0, i).Format("2006-01-02")] = st
			}
		}
		return m
	}

	t.Run("full week without rest warns", func(t *testing.T) {
		work := schedule.StatusScheduled
		report := weeklyReport(member, weekStart, statuses(work, work, work, work, work, work, work))
		assert.Equal(t, 7, report.WorkDays)
		assert.Equal(t, 0, report.OffDays)
		assert.Equal(t, 7, report.MaxConsecutiveWork)
		assert.Equal(t, []string{"no rest day"}, report.Warnings)
	})

	t.Run("one off day clears the warning", func(t *testing.T) {
		work, off := schedule.StatusScheduled, schedule.StatusOff
		report := weeklyReport(member, weekStart, statuses(work, work, work, off, work, work, work))
		assert.Equal(t, 6, report.WorkDays)
		assert.Equal(t, 1, report.OffDays)
		assert.Equal(t, 3, report.MaxConsecutiveWork)
		assert.Empty(t, report.Warnings)
	})

	t.Run("unscheduled days break the run without counting as rest", func(t *testing.T) {
		work := schedule.StatusScheduled
		report := weeklyReport(member, weekStart, statuses(work, work, "", work, work, work, work))
		assert.Equal(t, 6, report.WorkDays)
		assert.Equal(t, 1, report.UnscheduledDays)
		assert.Equal(t, 4, report.MaxConsecutiveWork)
		assert.Empty(t, report.Warnings)
	})

	t.Run("empty week", func(t *testing.T) {
		report := weeklyReport(member, weekStart, statuses())
		assert.Equal(t, 7, report.UnscheduledDays)
		assert.Empty(t, report.Warnings)
	})
}
