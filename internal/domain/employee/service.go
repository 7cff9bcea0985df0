package employee

import "context"

type Service interface {
	Create(ctx context.Context, actor Actor, req *CreateEmployeeRequest) (*EmployeeResponse, error)
	List(ctx context.Context, actor Actor, status *EmploymentStatus) ([]EmployeeResponse, error)
	Get(ctx context.Context, actor Actor, employeeID string) (*EmployeeResponse, error)
	Retire(ctx context.Context, actor Actor, employeeID string) (*EmployeeResponse, error)
	AdjustPaidLeave(ctx context.Context, actor Actor, employeeID string, req *AdjustPaidLeaveRequest) (*AdjustPaidLeaveResponse, error)
}
