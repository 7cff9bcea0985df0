package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Attendance) error
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	// GetByEmployeeAndDateForUpdate locks the day's row so concurrent
	// punches against the same record serialize.
	GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]*Attendance, error)
	ListByEmployeeAndRangeForUpdate(ctx context.Context, employeeID string, from, to time.Time) ([]*Attendance, error)
	// MarkMonthSubmitted flips every record in the range to submitted and
	// fixed in one statement.
	MarkMonthSubmitted(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}
