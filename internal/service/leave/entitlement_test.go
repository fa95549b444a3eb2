package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSelectEntitlement(t *testing.T) {
	lt := leave.LeaveType{
		DefaultDaysPerYear: 12,
		EntitlementRules: leave.EntitlementRules{
			{MinServiceYears: 2, Days: 14},
			{MinServiceYears: 5, Days: 18},
		},
	}

	today := day(2025, time.June, 1)
	assert.Equal(t, 12.0, SelectEntitlement(lt, day(2024, time.June, 1), today))
	assert.Equal(t, 14.0, SelectEntitlement(lt, day(2022, time.January, 1), today))
	assert.Equal(t, 18.0, SelectEntitlement(lt, day(2018, time.January, 1), today))
}

func TestCompletedMonths(t *testing.T) {
	today := day(2025, time.June, 15)

	// Tenured employees accrue from January; the running month does not
	// count until it is over.
	assert.Equal(t, 5, CompletedMonths(day(2020, time.March, 1), today))
	assert.Equal(t, 2, CompletedMonths(day(2020, time.June, 1), day(2025, time.March, 1)))

	// Current-year joiners accrue only from the join month.
	assert.Equal(t, 3, CompletedMonths(day(2025, time.March, 10), today))
	assert.Equal(t, 0, CompletedMonths(day(2025, time.June, 1), today))
}

func TestProrate(t *testing.T) {
	// 12 days over 5 completed months: raw 5.0
	assert.Equal(t, 5.0, Prorate(12, 5, company.RoundDown))

	// 14 days over 5 months: raw 5.8333...
	assert.Equal(t, 5.0, Prorate(14, 5, company.RoundDown))
	assert.Equal(t, 6.0, Prorate(14, 5, company.RoundUp))
	assert.Equal(t, 6.0, Prorate(14, 5, company.RoundNearest))

	// Nearest rounds to halves: 12 over 7 months is 7.0; 15 over 5 is 6.25 -> 6.5
	assert.Equal(t, 6.5, Prorate(15, 5, company.RoundNearest))
}

func TestCountDays(t *testing.T) {
	// 2025-09-01 is a Monday.
	monday := day(2025, time.September, 1)
	sunday := day(2025, time.September, 7)
	holidays := NewHolidaySet([]company.PublicHoliday{{Date: day(2025, time.September, 3)}})

	// Outlet companies count all seven days minus holidays.
	assert.Equal(t, 6.0, CountDays(monday, sunday, company.GroupingOutlet, false, holidays))

	// Office companies also skip the weekend.
	assert.Equal(t, 4.0, CountDays(monday, sunday, company.GroupingDepartment, false, holidays))

	// Consecutive types count every calendar day, holidays included.
	assert.Equal(t, 7.0, CountDays(monday, sunday, company.GroupingOutlet, true, holidays))

	// Single day.
	assert.Equal(t, 1.0, CountDays(monday, monday, company.GroupingOutlet, false, holidays))
}
