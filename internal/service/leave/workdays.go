package leave

import (
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
)

const dateKeyLayout = "2006-01-02"

// HolidaySet indexes public holidays by date for range counting.
type HolidaySet map[string]struct{}

func NewHolidaySet(holidays []company.PublicHoliday) HolidaySet {
	set := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		set[h.Date.Format(dateKeyLayout)] = struct{}{}
	}
	return set
}

func (s HolidaySet) Contains(d time.Time) bool {
	_, ok := s[d.Format(dateKeyLayout)]
	return ok
}

// CountDays computes total_days for a leave range. Outlet companies work
// Monday through Sunday and skip only public holidays; office companies
// additionally skip weekends. Consecutive types count every calendar day.
func CountDays(start, end time.Time, grouping company.GroupingType, consecutive bool, holidays HolidaySet) float64 {
	var days float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if consecutive {
			days++
			continue
		}
		if grouping == company.GroupingDepartment {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
		}
		if holidays.Contains(d) {
			continue
		}
		days++
	}
	return days
}
