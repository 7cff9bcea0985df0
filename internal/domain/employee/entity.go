package employee

import (
	"time"
)

type Employee struct {
	ID                     string
	EmployeeCode           string
	EmployeeName           string
	Email                  string
	PasswordHash           string
	Role                   Role
	EmploymentStatus       EmploymentStatus
	HiredAt                time.Time
	RetiredAt              *time.Time
	PaidLeaveRemainingDays int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

type EmploymentStatus string

const (
	EmploymentStatusActive  EmploymentStatus = "active"
	EmploymentStatusRetired EmploymentStatus = "retired"
)

// Paid-leave balance bounds.
const (
	MinPaidLeaveDays     = 0
	MaxPaidLeaveDays     = 99
	InitialPaidLeaveDays = 10
)

// Actor is the resolved identity a caller supplies with every operation.
// Services never look identity up from ambient state.
type Actor struct {
	EmployeeID string
	Role       Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
