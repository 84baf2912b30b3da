package core

import "time"

// Window is the date range a run bills for, in the account's timezone.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow computes the billing window for the month containing now:
// first day of the month at 00:00:00 through the last day at 23:59:59,
// both in loc. lookbackWeeks backdates the start to catch entries logged
// late; zero keeps the plain calendar month.
func MonthWindow(now time.Time, loc *time.Location, lookbackWeeks int) Window {
	local := now.In(loc)
	year, month, _ := local.Date()

	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	if lookbackWeeks > 0 {
		start = start.AddDate(0, 0, -7*lookbackWeeks)
	}
	// Day 0 of the next month normalizes to the last day of this one,
	// which keeps February correct in leap years.
	end := time.Date(year, month+1, 0, 23, 59, 59, 0, loc)

	return Window{Start: start, End: end}
}
