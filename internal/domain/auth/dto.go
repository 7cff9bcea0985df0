package auth

import (
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	EmployeeCode string `json:"employee_code"`
	Password     string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "employee_code",
			Message: "Employee code is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "password",
			Message: "Password is required",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresAt    int64  `json:"expires_at"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Role         string `json:"role"`
}
