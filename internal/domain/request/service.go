package request

import (
	"context"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
)

type Service interface {
	SubmitLeave(ctx context.Context, actor employee.Actor, req *SubmitLeaveRequest) (*LeaveRequestResponse, error)
	SubmitAdjustment(ctx context.Context, actor employee.Actor, req *SubmitAdjustmentRequest) (*AdjustmentRequestResponse, error)
	Approve(ctx context.Context, actor employee.Actor, requestType Type, requestID string) error
	Reject(ctx context.Context, actor employee.Actor, requestType Type, requestID string, req *RejectRequest) error
	List(ctx context.Context, actor employee.Actor, filter *ListFilter) (*ListResponse, error)
}
