package request

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Type string

const (
	TypeLeave      Type = "leave"
	TypeAdjustment Type = "adjustment"
)

type LeaveRequest struct {
	ID              string
	EmployeeID      string
	LeaveDate       time.Time
	Reason          string
	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// EmployeeName is populated on admin listings.
	EmployeeName *string
}

type AdjustmentRequest struct {
	ID                string
	EmployeeID        string
	TargetDate        time.Time
	OriginalClockIn   *time.Time
	OriginalClockOut  *time.Time
	RequestedClockIn  *time.Time
	RequestedClockOut *time.Time
	Reason            string
	Status            Status
	ApprovedBy        *string
	ApprovedAt        *time.Time
	RejectionReason   *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	EmployeeName *string
}
