package attendance

import (
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

type HistoryRequest struct {
	EmployeeID string
	YearMonth  string
}

func (r *HistoryRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "employee_id",
			Message: "Employee ID is required",
		})
	}

	if validator.IsEmpty(r.YearMonth) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "year_month",
			Message: "Year-month is required",
		})
	} else if !validator.IsValidYearMonth(r.YearMonth) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "year_month",
			Message: "Year-month must be in YYYY-MM format",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

type MonthlySubmitRequest struct {
	YearMonth string `json:"year_month"`
}

func (r *MonthlySubmitRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if validator.IsEmpty(r.YearMonth) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "year_month",
			Message: "Year-month is required",
		})
	} else if !validator.IsValidYearMonth(r.YearMonth) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "year_month",
			Message: "Year-month must be in YYYY-MM format",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

type ClockResponse struct {
	AttendanceID string     `json:"attendance_id"`
	Date         string     `json:"date"`
	ClockIn      *time.Time `json:"clock_in,omitempty"`
	ClockOut     *time.Time `json:"clock_out,omitempty"`
	LateMinutes  int        `json:"late_minutes"`
}

type AttendanceInfo struct {
	ID                string     `json:"id"`
	Date              string     `json:"date"`
	ClockIn           *time.Time `json:"clock_in,omitempty"`
	ClockOut          *time.Time `json:"clock_out,omitempty"`
	WorkingMinutes    int        `json:"working_minutes"`
	LateMinutes       int        `json:"late_minutes"`
	EarlyLeaveMinutes int        `json:"early_leave_minutes"`
	OvertimeMinutes   int        `json:"overtime_minutes"`
	NightShiftMinutes int        `json:"night_shift_minutes"`
	Status            string     `json:"status"`
	SubmissionStatus  string     `json:"submission_status"`
	Fixed             bool       `json:"fixed"`
}

type Summary struct {
	TotalWorkingMinutes    int `json:"total_working_minutes"`
	TotalLateMinutes       int `json:"total_late_minutes"`
	TotalEarlyLeaveMinutes int `json:"total_early_leave_minutes"`
	TotalOvertimeMinutes   int `json:"total_overtime_minutes"`
	TotalNightShiftMinutes int `json:"total_night_shift_minutes"`
	PaidLeaveDays          int `json:"paid_leave_days"`
	AbsentDays             int `json:"absent_days"`
}

type HistoryResponse struct {
	EmployeeID string           `json:"employee_id"`
	YearMonth  string           `json:"year_month"`
	Records    []AttendanceInfo `json:"records"`
	Summary    Summary          `json:"summary"`
}

type MonthlySubmitResponse struct {
	YearMonth      string   `json:"year_month"`
	SubmittedCount int      `json:"submitted_count"`
	AbsentDates    []string `json:"absent_dates,omitempty"`
}
