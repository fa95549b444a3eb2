package leave

import (
	"math"
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
)

// ServiceYears measures tenure in fractional years.
func ServiceYears(joinDate, today time.Time) float64 {
	return today.Sub(joinDate).Hours() / 24 / 365.25
}

// SelectEntitlement picks the annual entitlement for the employee's tenure:
// the days of the largest rule threshold not exceeding the service years,
// falling back to the type's default.
func SelectEntitlement(lt leave.LeaveType, joinDate, today time.Time) float64 {
	years := ServiceYears(joinDate, today)

	entitled := lt.DefaultDaysPerYear
	best := -1.0
	for _, rule := range lt.EntitlementRules {
		if years >= rule.MinServiceYears && rule.MinServiceYears > best {
			best = rule.MinServiceYears
			entitled = rule.Days
		}
	}
	return entitled
}

// CompletedMonths counts the fully elapsed months of the current year that
// contribute to year-to-date accrual: the current month never counts, and
// joiners mid-year accrue only from their join month.
func CompletedMonths(joinDate, today time.Time) int {
	if joinDate.Year() == today.Year() {
		months := int(today.Month()) - int(joinDate.Month())
		if months < 0 {
			months = 0
		}
		return months
	}
	return int(today.Month()) - 1
}

// Prorate computes the year-to-date earned days and applies the company's
// rounding policy.
func Prorate(entitled float64, completedMonths int, rounding company.ProrationRounding) float64 {
	raw := entitled * float64(completedMonths) / 12

	switch rounding {
	case company.RoundUp:
		return math.Ceil(raw)
	case company.RoundDown:
		return math.Floor(raw)
	case company.RoundNearest:
		return math.Round(raw*2) / 2
	}
	return raw
}
