package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrAlreadyClockedIn      = errors.New("already clocked in today")
	ErrNotClockedIn          = errors.New("not clocked in today")
	ErrAlreadyClockedOut     = errors.New("already clocked out today")
	ErrFixedAttendance       = errors.New("attendance record is fixed and cannot be modified")
	ErrMonthAlreadySubmitted = errors.New("month has already been submitted")
)

// IncompleteAttendanceError reports the working days that block a monthly
// submission, plus the absent days carried through for visibility.
type IncompleteAttendanceError struct {
	MissingDates []string
	AbsentDates  []string
}

func (e *IncompleteAttendanceError) Error() string {
	return fmt.Sprintf("month has %d working days with incomplete attendance", len(e.MissingDates))
}
