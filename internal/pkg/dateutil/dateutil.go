package dateutil

import (
	"time"
)

const (
	yearMonthLayout = "2006-01"
	dateLayout      = "2006-01-02"
)

// DateOf truncates a timestamp to its calendar date, normalized to midnight
// UTC so dates compare cleanly against DATE columns.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseYearMonth parses a "YYYY-MM" string into the first day of that month
// (midnight UTC).
func ParseYearMonth(s string) (time.Time, error) {
	t, err := time.Parse(yearMonthLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// ParseDate parses a "YYYY-MM-DD" string into a midnight-UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// FormatDate renders a date as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// MonthRange returns the first and last day of the month containing firstDay.
func MonthRange(firstDay time.Time) (time.Time, time.Time) {
	start := time.Date(firstDay.Year(), firstDay.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// IsWorkingDay reports whether the date falls on Monday through Friday.
// Public holidays are not modeled.
func IsWorkingDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WorkingDays lists the business days of the month containing firstDay,
// in ascending order.
func WorkingDays(firstDay time.Time) []time.Time {
	start, end := MonthRange(firstDay)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}
