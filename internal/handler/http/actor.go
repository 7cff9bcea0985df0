package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
)

// actorFromRequest resolves the authenticated employee from the verified JWT
// claims. The auth middleware runs first, so missing claims mean a broken
// token rather than a missing one.
func actorFromRequest(r *http.Request) (employee.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return employee.Actor{}, auth.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return employee.Actor{}, auth.ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok {
		return employee.Actor{}, auth.ErrInvalidToken
	}

	return employee.Actor{
		EmployeeID: employeeID,
		Role:       employee.Role(role),
	}, nil
}
