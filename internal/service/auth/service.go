package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/event"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/jwt"
)

type authServiceImpl struct {
	employeeRepo employee.Repository
	jwtService   jwt.Service
	clock        clock.Clock
	bus          event.Bus
}

func NewAuthService(employeeRepo employee.Repository, jwtService jwt.Service, clk clock.Clock, bus event.Bus) auth.Service {
	return &authServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		clock:        clk,
		bus:          bus,
	}
}

// Login implements auth.Service.
func (s *authServiceImpl) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		// Not found maps to invalid credentials so login never leaks
		// which employee codes exist.
		if err == employee.ErrEmployeeNotFound {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	if emp.EmploymentStatus == employee.EmploymentStatusRetired {
		return nil, employee.ErrEmployeeRetired
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.EmployeeCode, emp.Role)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Type:       event.TypeLogin,
		EmployeeID: emp.ID,
		ActorID:    emp.ID,
		OccurredAt: s.clock.Now(),
		Detail: map[string]interface{}{
			"employee_code": emp.EmployeeCode,
		},
	})

	return &auth.LoginResponse{
		AccessToken:  token,
		ExpiresAt:    expiresAt,
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		EmployeeName: emp.EmployeeName,
		Role:         string(emp.Role),
	}, nil
}
