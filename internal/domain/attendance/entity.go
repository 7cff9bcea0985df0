package attendance

import "time"

type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	ClockIn           *time.Time
	ClockOut          *time.Time
	LateMinutes       int
	EarlyLeaveMinutes int
	OvertimeMinutes   int
	NightShiftMinutes int
	Status            Status
	SubmissionStatus  SubmissionStatus
	Fixed             bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Status classifies the day itself, independent of punches.
type Status string

const (
	StatusNormal    Status = "normal"
	StatusPaidLeave Status = "paid_leave"
	StatusAbsent    Status = "absent"
)

// SubmissionStatus tracks monthly closing. Once a record is submitted its
// Fixed flag is set and no further edits are accepted.
type SubmissionStatus string

const (
	SubmissionStatusUnsubmitted SubmissionStatus = "unsubmitted"
	SubmissionStatusSubmitted   SubmissionStatus = "submitted"
)

// Complete reports whether the day needs no further punches for monthly
// closing. Paid-leave and absent days carry no punch requirement.
func (a *Attendance) Complete() bool {
	if a.Status == StatusPaidLeave || a.Status == StatusAbsent {
		return true
	}
	return a.ClockIn != nil && a.ClockOut != nil
}
