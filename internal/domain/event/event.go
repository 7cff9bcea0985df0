package event

import (
	"context"
	"time"
)

// Type tags a domain event for the audit/observability consumers.
type Type string

const (
	TypeClockIn           Type = "clock_in"
	TypeClockOut          Type = "clock_out"
	TypeRequestSubmitted  Type = "request_submitted"
	TypeRequestApproved   Type = "request_approved"
	TypeRequestRejected   Type = "request_rejected"
	TypeMonthSubmitted    Type = "month_submitted"
	TypePaidLeaveAdjusted Type = "paid_leave_adjusted"
	TypeLogin             Type = "login"
)

// Event is the payload handed to the audit bus. EmployeeID is the subject of
// the event; ActorID is who triggered it (they differ for approvals and
// administrative adjustments).
type Event struct {
	Type       Type                   `json:"type"`
	EmployeeID string                 `json:"employee_id"`
	ActorID    string                 `json:"actor_id,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	Detail     map[string]interface{} `json:"detail,omitempty"`
}

// Bus delivers domain events to the audit collaborator. Implementations must
// never fail the calling operation: delivery problems are theirs to log.
type Bus interface {
	Publish(ctx context.Context, ev Event)
}
