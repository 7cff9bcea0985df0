package dateutil

import (
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	got := DateOf(time.Date(2024, 6, 10, 23, 45, 0, 0, loc))
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf = %v, want %v", got, want)
	}
}

func TestParseYearMonth(t *testing.T) {
	got, err := ParseYearMonth("2024-06")
	if err != nil {
		t.Fatalf("ParseYearMonth: %v", err)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseYearMonth = %v, want %v", got, want)
	}

	if _, err := ParseYearMonth("2024/06"); err == nil {
		t.Error("ParseYearMonth accepted invalid format")
	}
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		in        string
		wantStart string
		wantEnd   string
	}{
		{"2024-06", "2024-06-01", "2024-06-30"},
		{"2024-02", "2024-02-01", "2024-02-29"},
		{"2023-02", "2023-02-01", "2023-02-28"},
		{"2024-12", "2024-12-01", "2024-12-31"},
	}
	for _, c := range cases {
		month, err := ParseYearMonth(c.in)
		if err != nil {
			t.Fatalf("ParseYearMonth(%q): %v", c.in, err)
		}
		start, end := MonthRange(month)
		if FormatDate(start) != c.wantStart || FormatDate(end) != c.wantEnd {
			t.Errorf("MonthRange(%s) = %s..%s, want %s..%s",
				c.in, FormatDate(start), FormatDate(end), c.wantStart, c.wantEnd)
		}
	}
}

func TestIsWorkingDay(t *testing.T) {
	// 2024-06-10 is a Monday.
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if !IsWorkingDay(monday.AddDate(0, 0, i)) {
			t.Errorf("%v should be a working day", monday.AddDate(0, 0, i))
		}
	}
	for i := 5; i < 7; i++ {
		if IsWorkingDay(monday.AddDate(0, 0, i)) {
			t.Errorf("%v should not be a working day", monday.AddDate(0, 0, i))
		}
	}
}

func TestWorkingDays(t *testing.T) {
	month, err := ParseYearMonth("2024-06")
	if err != nil {
		t.Fatalf("ParseYearMonth: %v", err)
	}

	days := WorkingDays(month)
	if len(days) != 20 {
		t.Fatalf("June 2024 has %d working days, want 20", len(days))
	}
	if FormatDate(days[0]) != "2024-06-03" {
		t.Errorf("first working day = %s, want 2024-06-03", FormatDate(days[0]))
	}
	if FormatDate(days[len(days)-1]) != "2024-06-28" {
		t.Errorf("last working day = %s, want 2024-06-28", FormatDate(days[len(days)-1]))
	}
}
