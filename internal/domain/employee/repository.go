package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	// GetByIDForUpdate locks the employee row for the duration of the
	// surrounding transaction. Used when the paid-leave balance is read
	// and then written.
	GetByIDForUpdate(ctx context.Context, id string) (*Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (*Employee, error)
	List(ctx context.Context, status *EmploymentStatus) ([]*Employee, error)
	Update(ctx context.Context, e *Employee) error
	UpdatePaidLeaveDays(ctx context.Context, id string, days int) error
}
