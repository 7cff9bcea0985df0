package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/event"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/dateutil"
	"github.com/kintai-hq/kintai-backend-go/internal/repository/postgresql"
)

type employeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.Repository
	clock        clock.Clock
	bus          event.Bus
}

func NewEmployeeService(db *database.DB, employeeRepo employee.Repository, clk clock.Clock, bus event.Bus) employee.Service {
	return &employeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		clock:        clk,
		bus:          bus,
	}
}

// Create implements employee.Service.
func (s *employeeServiceImpl) Create(ctx context.Context, actor employee.Actor, req *employee.CreateEmployeeRequest) (*employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return nil, auth.ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hiredAt, err := dateutil.ParseDate(req.HiredAt)
	if err != nil {
		return nil, fmt.Errorf("parse hire date: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	emp := &employee.Employee{
		EmployeeCode:           req.EmployeeCode,
		EmployeeName:           req.EmployeeName,
		Email:                  req.Email,
		PasswordHash:           string(hash),
		Role:                   employee.Role(req.Role),
		EmploymentStatus:       employee.EmploymentStatusActive,
		HiredAt:                hiredAt,
		PaidLeaveRemainingDays: employee.InitialPaidLeaveDays,
	}

	if err := s.employeeRepo.Create(ctx, emp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "employees_email_key":
				return nil, employee.ErrEmailExists
			default:
				return nil, employee.ErrEmployeeCodeExists
			}
		}
		return nil, err
	}

	resp := employee.NewEmployeeResponse(emp)
	return &resp, nil
}

// List implements employee.Service.
func (s *employeeServiceImpl) List(ctx context.Context, actor employee.Actor, status *employee.EmploymentStatus) ([]employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return nil, auth.ErrAccessDenied
	}

	employees, err := s.employeeRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}

	return responses, nil
}

// Get implements employee.Service.
func (s *employeeServiceImpl) Get(ctx context.Context, actor employee.Actor, employeeID string) (*employee.EmployeeResponse, error) {
	if !actor.IsAdmin() && actor.EmployeeID != employeeID {
		return nil, auth.ErrAccessDenied
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := employee.NewEmployeeResponse(emp)
	return &resp, nil
}

// Retire implements employee.Service.
func (s *employeeServiceImpl) Retire(ctx context.Context, actor employee.Actor, employeeID string) (*employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return nil, auth.ErrAccessDenied
	}

	var emp *employee.Employee
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		emp, err = s.employeeRepo.GetByIDForUpdate(txCtx, employeeID)
		if err != nil {
			return err
		}
		if emp.EmploymentStatus == employee.EmploymentStatusRetired {
			return employee.ErrEmployeeRetired
		}

		now := s.clock.Now()
		emp.EmploymentStatus = employee.EmploymentStatusRetired
		emp.RetiredAt = &now
		return s.employeeRepo.Update(txCtx, emp)
	})
	if err != nil {
		return nil, err
	}

	resp := employee.NewEmployeeResponse(emp)
	return &resp, nil
}

// AdjustPaidLeave implements employee.Service. The balance is read and
// written under a row lock so concurrent adjustments serialize.
func (s *employeeServiceImpl) AdjustPaidLeave(ctx context.Context, actor employee.Actor, employeeID string, req *employee.AdjustPaidLeaveRequest) (*employee.AdjustPaidLeaveResponse, error) {
	if !actor.IsAdmin() {
		return nil, auth.ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp *employee.AdjustPaidLeaveResponse
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByIDForUpdate(txCtx, employeeID)
		if err != nil {
			return err
		}

		newDays := emp.PaidLeaveRemainingDays + req.AdjustmentDays
		if newDays < employee.MinPaidLeaveDays || newDays > employee.MaxPaidLeaveDays {
			return employee.ErrInvalidAdjustment
		}

		if err := s.employeeRepo.UpdatePaidLeaveDays(txCtx, emp.ID, newDays); err != nil {
			return err
		}

		resp = &employee.AdjustPaidLeaveResponse{
			EmployeeID:   emp.ID,
			PreviousDays: emp.PaidLeaveRemainingDays,
			NewDays:      newDays,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Type:       event.TypePaidLeaveAdjusted,
		EmployeeID: employeeID,
		ActorID:    actor.EmployeeID,
		OccurredAt: s.clock.Now(),
		Detail: map[string]interface{}{
			"adjustment_days": req.AdjustmentDays,
			"previous_days":   resp.PreviousDays,
			"new_days":        resp.NewDays,
			"reason":          req.Reason,
		},
	})

	return resp, nil
}
