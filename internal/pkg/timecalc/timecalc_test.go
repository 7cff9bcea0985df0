package timecalc

import (
	"testing"
	"time"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func at(loc *time.Location, day, hour, min int) time.Time {
	return time.Date(2024, 6, day, hour, min, 0, 0, loc)
}

func TestLateMinutes(t *testing.T) {
	loc := mustLoc(t)
	cases := []struct {
		clockIn time.Time
		want    int
	}{
		{at(loc, 10, 9, 0), 0},
		{at(loc, 10, 8, 30), 0},
		{at(loc, 10, 9, 1), 1},
		{at(loc, 10, 9, 15), 15},
		{at(loc, 10, 13, 0), 240},
	}
	for _, c := range cases {
		got := LateMinutes(c.clockIn)
		if got != c.want {
			t.Errorf("LateMinutes(%v) = %d, want %d", c.clockIn, got, c.want)
		}
	}
}

func TestEarlyLeaveMinutes(t *testing.T) {
	loc := mustLoc(t)
	cases := []struct {
		clockOut time.Time
		want     int
	}{
		{at(loc, 10, 18, 0), 0},
		{at(loc, 10, 19, 30), 0},
		{at(loc, 10, 17, 30), 30},
		{at(loc, 10, 14, 30), 210},
		// Time-of-day only: an overnight clock-out still compares against
		// 18:00 on the clock.
		{at(loc, 11, 1, 0), 1020},
	}
	for _, c := range cases {
		got := EarlyLeaveMinutes(c.clockOut)
		if got != c.want {
			t.Errorf("EarlyLeaveMinutes(%v) = %d, want %d", c.clockOut, got, c.want)
		}
	}
}

func TestWorkingMinutes(t *testing.T) {
	loc := mustLoc(t)
	cases := []struct {
		name     string
		clockIn  time.Time
		clockOut time.Time
		want     int
	}{
		{"standard day", at(loc, 10, 9, 0), at(loc, 10, 18, 0), 480},
		{"spans lunch", at(loc, 10, 11, 30), at(loc, 10, 14, 30), 120},
		{"starts at lunch end", at(loc, 10, 13, 0), at(loc, 10, 17, 0), 240},
		{"ends before lunch", at(loc, 10, 9, 0), at(loc, 10, 12, 0), 180},
		{"overnight, no lunch overlap", at(loc, 10, 9, 15), at(loc, 11, 1, 0), 945},
		{"zero interval", at(loc, 10, 9, 0), at(loc, 10, 9, 0), 0},
	}
	for _, c := range cases {
		got := WorkingMinutes(c.clockIn, c.clockOut)
		if got != c.want {
			t.Errorf("%s: WorkingMinutes = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestOvertimeMinutes(t *testing.T) {
	cases := []struct {
		working int
		want    int
	}{
		{480, 0},
		{479, 0},
		{481, 1},
		{945, 465},
	}
	for _, c := range cases {
		got := OvertimeMinutes(c.working)
		if got != c.want {
			t.Errorf("OvertimeMinutes(%d) = %d, want %d", c.working, got, c.want)
		}
	}
}

func TestNightShiftMinutes(t *testing.T) {
	loc := mustLoc(t)
	cases := []struct {
		name     string
		clockIn  time.Time
		clockOut time.Time
		want     int
	}{
		{"day shift", at(loc, 10, 9, 0), at(loc, 10, 18, 0), 0},
		{"ends at window start", at(loc, 10, 9, 0), at(loc, 10, 22, 0), 0},
		{"one hour into window", at(loc, 10, 9, 0), at(loc, 10, 23, 0), 60},
		{"crosses midnight", at(loc, 10, 9, 15), at(loc, 11, 1, 0), 180},
		{"through to five", at(loc, 10, 9, 0), at(loc, 11, 5, 0), 420},
		{"past window end", at(loc, 10, 22, 0), at(loc, 11, 6, 0), 420},
	}
	for _, c := range cases {
		got := NightShiftMinutes(c.clockIn, c.clockOut)
		if got != c.want {
			t.Errorf("%s: NightShiftMinutes = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestCalculate(t *testing.T) {
	loc := mustLoc(t)

	in := at(loc, 10, 9, 15)
	out := at(loc, 11, 1, 0)
	r := Calculate(&in, &out)

	if r.LateMinutes != 15 {
		t.Errorf("LateMinutes = %d, want 15", r.LateMinutes)
	}
	if r.EarlyLeaveMinutes != 1020 {
		t.Errorf("EarlyLeaveMinutes = %d, want 1020", r.EarlyLeaveMinutes)
	}
	if r.WorkingMinutes != 945 {
		t.Errorf("WorkingMinutes = %d, want 945", r.WorkingMinutes)
	}
	if r.OvertimeMinutes != 465 {
		t.Errorf("OvertimeMinutes = %d, want 465", r.OvertimeMinutes)
	}
	if r.NightShiftMinutes != 180 {
		t.Errorf("NightShiftMinutes = %d, want 180", r.NightShiftMinutes)
	}
}

func TestCalculatePartialPunches(t *testing.T) {
	loc := mustLoc(t)
	in := at(loc, 10, 9, 30)

	r := Calculate(&in, nil)
	if r.LateMinutes != 30 {
		t.Errorf("LateMinutes = %d, want 30", r.LateMinutes)
	}
	if r.WorkingMinutes != 0 || r.OvertimeMinutes != 0 || r.NightShiftMinutes != 0 {
		t.Errorf("pair metrics should be zero without clock-out: %+v", r)
	}

	r = Calculate(nil, nil)
	if r != (Result{}) {
		t.Errorf("Calculate(nil, nil) = %+v, want zero", r)
	}
}
