package attendance

import (
	"context"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
)

type Service interface {
	ClockIn(ctx context.Context, actor employee.Actor) (*ClockResponse, error)
	ClockOut(ctx context.Context, actor employee.Actor) (*ClockResponse, error)
	GetHistory(ctx context.Context, actor employee.Actor, req *HistoryRequest) (*HistoryResponse, error)
	SubmitMonth(ctx context.Context, actor employee.Actor, req *MonthlySubmitRequest) (*MonthlySubmitResponse, error)
}
