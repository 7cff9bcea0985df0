package timecalc

import "time"

// Standard working day definition. All boundaries are time-of-day values in
// the business timezone; callers must convert punch timestamps before
// passing them in.
const (
	StandardStartMinutes   = 9 * 60  // 09:00
	StandardEndMinutes     = 18 * 60 // 18:00
	LunchStartMinutes      = 12 * 60 // 12:00
	LunchEndMinutes        = 13 * 60 // 13:00
	LunchBreakMinutes      = 60
	StandardWorkingMinutes = 480

	nightStartHour = 22 // 22:00 on the clock-in date
	nightEndHour   = 29 // 05:00 on the following day
)

// Result holds the five derived metrics for one punch pair.
type Result struct {
	LateMinutes       int
	EarlyLeaveMinutes int
	WorkingMinutes    int
	OvertimeMinutes   int
	NightShiftMinutes int
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// LateMinutes returns the minutes between 09:00 and the clock-in
// time-of-day, or 0 when clock-in is at or before 09:00.
func LateMinutes(clockIn time.Time) int {
	m := minutesOfDay(clockIn)
	if m > StandardStartMinutes {
		return m - StandardStartMinutes
	}
	return 0
}

// EarlyLeaveMinutes returns the minutes between the clock-out time-of-day
// and 18:00, or 0 when clock-out is at or after 18:00.
//
// Only the time-of-day component is considered: a clock-out at 01:00 on the
// following calendar day yields 1020 minutes. Downstream consumers rely on
// this exact behavior, so it is kept as is.
func EarlyLeaveMinutes(clockOut time.Time) int {
	m := minutesOfDay(clockOut)
	if m < StandardEndMinutes {
		return StandardEndMinutes - m
	}
	return 0
}

// WorkingMinutes returns the elapsed minutes between the punches, minus the
// 60-minute lunch break when the interval's time-of-day span overlaps the
// 12:00-13:00 window on the clock-in day. Never negative.
func WorkingMinutes(clockIn, clockOut time.Time) int {
	total := int(clockOut.Sub(clockIn).Minutes())
	if minutesOfDay(clockIn) < LunchEndMinutes && minutesOfDay(clockOut) > LunchStartMinutes {
		total -= LunchBreakMinutes
	}
	if total < 0 {
		return 0
	}
	return total
}

// OvertimeMinutes returns the worked minutes exceeding the 480-minute
// standard day.
func OvertimeMinutes(workingMinutes int) int {
	if workingMinutes > StandardWorkingMinutes {
		return workingMinutes - StandardWorkingMinutes
	}
	return 0
}

// NightShiftMinutes returns the overlap between the punch interval and the
// night-differential window, 22:00 on the clock-in date through 05:00 the
// next day. The window is split at midnight into two contiguous, disjoint
// intervals so no minute is counted twice.
func NightShiftMinutes(clockIn, clockOut time.Time) int {
	day := time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(), 0, 0, 0, 0, clockIn.Location())

	night := overlapMinutes(clockIn, clockOut, day.Add(nightStartHour*time.Hour), day.Add(24*time.Hour))
	night += overlapMinutes(clockIn, clockOut, day.Add(24*time.Hour), day.Add(nightEndHour*time.Hour))
	return night
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if start.Before(end) {
		return int(end.Sub(start).Minutes())
	}
	return 0
}

// Calculate derives all five metrics from an optional punch pair. A missing
// clock-in leaves lateness at zero, a missing clock-out leaves early-leave
// at zero, and metrics needing both endpoints are zero unless both are set.
func Calculate(clockIn, clockOut *time.Time) Result {
	var r Result
	if clockIn != nil {
		r.LateMinutes = LateMinutes(*clockIn)
	}
	if clockOut != nil {
		r.EarlyLeaveMinutes = EarlyLeaveMinutes(*clockOut)
	}
	if clockIn != nil && clockOut != nil {
		r.WorkingMinutes = WorkingMinutes(*clockIn, *clockOut)
		r.OvertimeMinutes = OvertimeMinutes(r.WorkingMinutes)
		r.NightShiftMinutes = NightShiftMinutes(*clockIn, *clockOut)
	}
	return r
}
