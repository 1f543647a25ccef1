package member

import (
	"time"

	"github.com/irontrack/gymdesk/internal/models"
)

// Pure membership window arithmetic. Everything takes an explicit now so the
// service layer and tests control time.

// endOfDay returns 23:59:59.999 on t's calendar day in t's location.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// addCalendarMonths keeps the day-of-month, clamped to the last day of the
// target month (Jan 31 + 1 month = Feb 28/29, not Mar 2/3).
func addCalendarMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + months
	ty := y + total/12
	tm := time.Month(total%12 + 1)
	if last := daysInMonth(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// registrationWindow computes the first membership window for a plan.
func registrationWindow(plan *models.Plan, now time.Time) (start, end time.Time) {
	if plan.DurationInMonths == 0 {
		return now, endOfDay(now)
	}
	return now, addCalendarMonths(now, plan.DurationInMonths)
}

// renewalWindow computes the next window given the current membership.
// Single-visit plans are always "today only" and never roll over a prior
// window; monthly plans extend a still-active membership from its current end
// date and restart an expired one from now.
func renewalWindow(plan *models.Plan, current models.Membership, now time.Time) (start, end time.Time) {
	if plan.DurationInMonths == 0 {
		return now, endOfDay(now)
	}
	start = now
	if current.EndDate.After(now) {
		start = current.EndDate
	}
	return start, addCalendarMonths(start, plan.DurationInMonths)
}
