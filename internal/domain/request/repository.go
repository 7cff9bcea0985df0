package request

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, lr *LeaveRequest) error
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	// GetByIDForUpdate locks the request row so concurrent approvals of
	// the same request serialize.
	GetByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	ExistsActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	Update(ctx context.Context, lr *LeaveRequest) error
	List(ctx context.Context, filter *ListFilter) ([]*LeaveRequest, error)
}

type AdjustmentRepository interface {
	Create(ctx context.Context, ar *AdjustmentRequest) error
	GetByID(ctx context.Context, id string) (*AdjustmentRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (*AdjustmentRequest, error)
	ExistsPendingByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	Update(ctx context.Context, ar *AdjustmentRequest) error
	List(ctx context.Context, filter *ListFilter) ([]*AdjustmentRequest, error)
}
