package employee

import (
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	HiredAt      string `json:"hired_at"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "employee_code",
			Message: "Employee code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "employee_code",
			Message: "Employee code must be 3-10 alphanumeric characters",
		})
	}

	if validator.IsEmpty(r.EmployeeName) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "employee_name",
			Message: "Employee name is required",
		})
	} else if !validator.MaxRunes(r.EmployeeName, 50) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "employee_name",
			Message: "Employee name must be 50 characters or less",
		})
	}

	if validator.IsEmpty(r.Email) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "email",
			Message: "Email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "email",
			Message: "Email format is invalid",
		})
	}

	if len(r.Password) < 8 || len(r.Password) > 72 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "password",
			Message: "Password must be between 8 and 72 characters",
		})
	}

	if !validator.IsInSlice(r.Role, []string{string(RoleEmployee), string(RoleAdmin)}) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "role",
			Message: "Role must be either employee or admin",
		})
	}

	if validator.IsEmpty(r.HiredAt) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "hired_at",
			Message: "Hire date is required",
		})
	} else if !validator.IsValidDate(r.HiredAt) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "hired_at",
			Message: "Hire date must be in YYYY-MM-DD format",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

type AdjustPaidLeaveRequest struct {
	AdjustmentDays int    `json:"adjustment_days"`
	Reason         string `json:"reason"`
}

func (r *AdjustPaidLeaveRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if r.AdjustmentDays == 0 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "adjustment_days",
			Message: "Adjustment days must not be zero",
		})
	}

	if validator.IsEmpty(r.Reason) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "reason",
			Message: "Reason is required",
		})
	} else if !validator.MaxRunes(r.Reason, 200) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "reason",
			Message: "Reason must be 200 characters or less",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

type EmployeeResponse struct {
	ID                     string     `json:"id"`
	EmployeeCode           string     `json:"employee_code"`
	EmployeeName           string     `json:"employee_name"`
	Email                  string     `json:"email"`
	Role                   string     `json:"role"`
	EmploymentStatus       string     `json:"employment_status"`
	HiredAt                string     `json:"hired_at"`
	RetiredAt              *string    `json:"retired_at,omitempty"`
	PaidLeaveRemainingDays int        `json:"paid_leave_remaining_days"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func NewEmployeeResponse(e *Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                     e.ID,
		EmployeeCode:           e.EmployeeCode,
		EmployeeName:           e.EmployeeName,
		Email:                  e.Email,
		Role:                   string(e.Role),
		EmploymentStatus:       string(e.EmploymentStatus),
		HiredAt:                e.HiredAt.Format("2006-01-02"),
		PaidLeaveRemainingDays: e.PaidLeaveRemainingDays,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
	if e.RetiredAt != nil {
		retired := e.RetiredAt.Format("2006-01-02")
		resp.RetiredAt = &retired
	}
	return resp
}

type AdjustPaidLeaveResponse struct {
	EmployeeID   string `json:"employee_id"`
	PreviousDays int    `json:"previous_days"`
	NewDays      int    `json:"new_days"`
}
