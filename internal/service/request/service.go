package request

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/event"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/request"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/dateutil"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/timecalc"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
	"github.com/kintai-hq/kintai-backend-go/internal/repository/postgresql"
)

type requestServiceImpl struct {
	db             *database.DB
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
	leaveRepo      request.LeaveRepository
	adjustmentRepo request.AdjustmentRepository
	clock          clock.Clock
	bus            event.Bus
}

func NewRequestService(
	db *database.DB,
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
	leaveRepo request.LeaveRepository,
	adjustmentRepo request.AdjustmentRepository,
	clk clock.Clock,
	bus event.Bus,
) request.Service {
	return &requestServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		adjustmentRepo: adjustmentRepo,
		clock:          clk,
		bus:            bus,
	}
}

// SubmitLeave implements request.Service. The paid-leave balance is
// decremented at submission time, so two pending requests can never promise
// the same remaining day. A rejection returns the day.
func (s *requestServiceImpl) SubmitLeave(ctx context.Context, actor employee.Actor, req *request.SubmitLeaveRequest) (*request.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	leaveDate, err := dateutil.ParseDate(req.LeaveDate)
	if err != nil {
		return nil, fmt.Errorf("parse leave date: %w", err)
	}

	today := dateutil.DateOf(s.clock.Now().In(s.clock.Location()))
	if !leaveDate.After(today) {
		return nil, validator.ValidationErrors{{
			Field:   "leave_date",
			Message: "Leave date must be a future date",
		}}
	}

	var lr *request.LeaveRequest
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByIDForUpdate(txCtx, actor.EmployeeID)
		if err != nil {
			return err
		}
		if emp.EmploymentStatus == employee.EmploymentStatusRetired {
			return employee.ErrEmployeeRetired
		}
		if emp.PaidLeaveRemainingDays < 1 {
			return request.ErrInsufficientLeaveDays
		}

		exists, err := s.leaveRepo.ExistsActiveByEmployeeAndDate(txCtx, emp.ID, leaveDate)
		if err != nil {
			return err
		}
		if exists {
			return request.ErrDuplicateRequest
		}

		if att, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, emp.ID, leaveDate); err == nil {
			if att.Status == attendance.StatusPaidLeave {
				return request.ErrDuplicateRequest
			}
		} else if err != attendance.ErrAttendanceNotFound {
			return err
		}

		if err := s.employeeRepo.UpdatePaidLeaveDays(txCtx, emp.ID, emp.PaidLeaveRemainingDays-1); err != nil {
			return err
		}

		lr = &request.LeaveRequest{
			EmployeeID: emp.ID,
			LeaveDate:  leaveDate,
			Reason:     req.Reason,
			Status:     request.StatusPending,
		}
		return s.leaveRepo.Create(txCtx, lr)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Type:       event.TypeRequestSubmitted,
		EmployeeID: actor.EmployeeID,
		ActorID:    actor.EmployeeID,
		OccurredAt: s.clock.Now(),
		Detail: map[string]interface{}{
			"request_type": string(request.TypeLeave),
			"request_id":   lr.ID,
			"leave_date":   req.LeaveDate,
		},
	})

	resp := request.NewLeaveRequestResponse(lr)
	return &resp, nil
}

// SubmitAdjustment implements request.Service.
func (s *requestServiceImpl) SubmitAdjustment(ctx context.Context, actor employee.Actor, req *request.SubmitAdjustmentRequest) (*request.AdjustmentRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	targetDate, err := dateutil.ParseDate(req.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("parse target date: %w", err)
	}

	today := dateutil.DateOf(s.clock.Now().In(s.clock.Location()))
	if targetDate.After(today) {
		return nil, validator.ValidationErrors{{
			Field:   "target_date",
			Message: "Target date must not be a future date",
		}}
	}

	var ar *request.AdjustmentRequest
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, actor.EmployeeID)
		if err != nil {
			return err
		}
		if emp.EmploymentStatus == employee.EmploymentStatusRetired {
			return employee.ErrEmployeeRetired
		}

		exists, err := s.adjustmentRepo.ExistsPendingByEmployeeAndDate(txCtx, emp.ID, targetDate)
		if err != nil {
			return err
		}
		if exists {
			return request.ErrDuplicateRequest
		}

		ar = &request.AdjustmentRequest{
			EmployeeID: emp.ID,
			TargetDate: targetDate,
			Reason:     req.Reason,
			Status:     request.StatusPending,
		}

		// Snapshot the punches as they stand, so the reviewer sees what
		// the correction changes.
		if att, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, emp.ID, targetDate); err == nil {
			if att.Fixed {
				return attendance.ErrFixedAttendance
			}
			ar.OriginalClockIn = att.ClockIn
			ar.OriginalClockOut = att.ClockOut
		} else if err != attendance.ErrAttendanceNotFound {
			return err
		}

		if req.CorrectedClockIn != nil {
			t := s.combine(targetDate, *req.CorrectedClockIn)
			ar.RequestedClockIn = &t
		}
		if req.CorrectedClockOut != nil {
			t := s.combine(targetDate, *req.CorrectedClockOut)
			ar.RequestedClockOut = &t
		}

		return s.adjustmentRepo.Create(txCtx, ar)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Type:       event.TypeRequestSubmitted,
		EmployeeID: actor.EmployeeID,
		ActorID:    actor.EmployeeID,
		OccurredAt: s.clock.Now(),
		Detail: map[string]interface{}{
			"request_type": string(request.TypeAdjustment),
			"request_id":   ar.ID,
			"target_date":  req.TargetDate,
		},
	})

	resp := request.NewAdjustmentRequestResponse(ar)
	return &resp, nil
}

// Approve implements request.Service.
func (s *requestServiceImpl) Approve(ctx context.Context, actor employee.Actor, requestType request.Type, requestID string) error {
	if !actor.IsAdmin() {
		return auth.ErrAccessDenied
	}

	var employeeID string
	var err error
	switch requestType {
	case request.TypeLeave:
		employeeID, err = s.approveLeave(ctx, actor, requestID)
	case request.TypeAdjustment:
		employeeID, err = s.approveAdjustment(ctx, actor, requestID)
	default:
		return request.ErrInvalidRequestType
	}
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, event.Event{
		Type:       event.TypeRequestApproved,
		EmployeeID: employeeID,
		ActorID:    actor.EmployeeID,
		OccurredAt: s.clock.Now(),
		Detail: map[string]interface{}{
			"request_type": string(requestType),
			"request_id":   requestID,
		},
	})

	return nil
}

func (s *requestServiceImpl) approveLeave(ctx context.Context, actor employee.Actor, requestID string) (string, error) {
	var employeeID string
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		lr, err := s.leaveRepo.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if lr.Status != request.StatusPending {
			return request.ErrRequestAlreadyProcessed
		}
		employeeID = lr.EmployeeID

		att, err := s.attendanceRepo.GetByEmployeeAndDateForUpdate(txCtx, lr.EmployeeID, lr.LeaveDate)
		switch err {
		case nil:
			if att.Fixed {
				return attendance.ErrFixedAttendance
			}
			att.Status = attendance.StatusPaidLeave
			if err := s.attendanceRepo.Update(txCtx, att); err != nil {
				return err
			}
		case attendance.ErrAttendanceNotFound:
			att = &attendance.Attendance{
				EmployeeID:       lr.EmployeeID,
				Date:             lr.LeaveDate,
				Status:           attendance.StatusPaidLeave,
				SubmissionStatus: attendance.SubmissionStatusUnsubmitted,
			}
			if err := s.attendanceRepo.Create(txCtx, att); err != nil {
				return err
			}
		default:
			return err
		}

		now := s.clock.Now()
		lr.Status = request.StatusApproved
		lr.ApprovedBy = &actor.EmployeeID
		lr.ApprovedAt = &now
		return s.leaveRepo.Update(txCtx, lr)
	})
	return employeeID, err
}

func (s *requestServiceImpl) approveAdjustment(ctx context.Context, actor employee.Actor, requestID string) (string, error) {
	var employeeID string
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		ar, err := s.adjustmentRepo.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if ar.Status != request.StatusPending {
			return request.ErrRequestAlreadyProcessed
		}
		employeeID = ar.EmployeeID

		att, err := s.attendanceRepo.GetByEmployeeAndDateForUpdate(txCtx, ar.EmployeeID, ar.TargetDate)
		created := false
		switch err {
		case nil:
			if att.Fixed {
				return attendance.ErrFixedAttendance
			}
		case attendance.ErrAttendanceNotFound:
			att = &attendance.Attendance{
				EmployeeID:       ar.EmployeeID,
				Date:             ar.TargetDate,
				Status:           attendance.StatusNormal,
				SubmissionStatus: attendance.SubmissionStatusUnsubmitted,
			}
			created = true
		default:
			return err
		}

		if ar.RequestedClockIn != nil {
			att.ClockIn = ar.RequestedClockIn
		}
		if ar.RequestedClockOut != nil {
			att.ClockOut = ar.RequestedClockOut
		}

		// A corrected clock-out at or before the clock-in is an overnight
		// shift ending the next day.
		if att.ClockIn != nil && att.ClockOut != nil && !att.ClockOut.After(*att.ClockIn) {
			next := att.ClockOut.Add(24 * time.Hour)
			att.ClockOut = &next
		}

		s.recalculate(att)

		if created {
			if err := s.attendanceRepo.Create(txCtx, att); err != nil {
				return err
			}
		} else {
			if err := s.attendanceRepo.Update(txCtx, att); err != nil {
				return err
			}
		}

		now := s.clock.Now()
		ar.Status = request.StatusApproved
		ar.ApprovedBy = &actor.EmployeeID
		ar.ApprovedAt = &now
		return s.adjustmentRepo.Update(txCtx, ar)
	})
	return employeeID, err
}

// Reject implements request.Service.
func (s *requestServiceImpl) Reject(ctx context.Context, actor employee.Actor, requestType request.Type, requestID string, req *request.RejectRequest) error {
	if !actor.IsAdmin() {
		return auth.ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		return err
	}

	var employeeID string
	var err error
	switch requestType {
	case request.TypeLeave:
		employeeID, err = s.rejectLeave(ctx, actor, requestID, req.Reason)
	case request.TypeAdjustment:
		employeeID, err = s.rejectAdjustment(ctx, actor, requestID, req.Reason)
	default:
		return request.ErrInvalidRequestType
	}
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, event.Event{
		Type:       event.TypeRequestRejected,
		EmployeeID: employeeID,
		ActorID:    actor.EmployeeID,
		OccurredAt: s.clock.Now(),
		Detail: map[string]interface{}{
			"request_type": string(requestType),
			"request_id":   requestID,
		},
	})

	return nil
}

func (s *requestServiceImpl) rejectLeave(ctx context.Context, actor employee.Actor, requestID string, reason string) (string, error) {
	var employeeID string
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		lr, err := s.leaveRepo.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if lr.Status != request.StatusPending {
			return request.ErrRequestAlreadyProcessed
		}
		employeeID = lr.EmployeeID

		// Return the day reserved at submission.
		emp, err := s.employeeRepo.GetByIDForUpdate(txCtx, lr.EmployeeID)
		if err != nil {
			return err
		}
		restored := emp.PaidLeaveRemainingDays + 1
		if restored > employee.MaxPaidLeaveDays {
			restored = employee.MaxPaidLeaveDays
		}
		if err := s.employeeRepo.UpdatePaidLeaveDays(txCtx, emp.ID, restored); err != nil {
			return err
		}

		now := s.clock.Now()
		lr.Status = request.StatusRejected
		lr.ApprovedBy = &actor.EmployeeID
		lr.ApprovedAt = &now
		lr.RejectionReason = &reason
		return s.leaveRepo.Update(txCtx, lr)
	})
	return employeeID, err
}

func (s *requestServiceImpl) rejectAdjustment(ctx context.Context, actor employee.Actor, requestID string, reason string) (string, error) {
	var employeeID string
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		ar, err := s.adjustmentRepo.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		if ar.Status != request.StatusPending {
			return request.ErrRequestAlreadyProcessed
		}
		employeeID = ar.EmployeeID

		now := s.clock.Now()
		ar.Status = request.StatusRejected
		ar.ApprovedBy = &actor.EmployeeID
		ar.ApprovedAt = &now
		ar.RejectionReason = &reason
		return s.adjustmentRepo.Update(txCtx, ar)
	})
	return employeeID, err
}

// List implements request.Service. Non-admin callers only ever see their own
// requests regardless of the filter they send.
func (s *requestServiceImpl) List(ctx context.Context, actor employee.Actor, filter *request.ListFilter) (*request.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		filter.EmployeeID = actor.EmployeeID
	}

	resp := &request.ListResponse{
		LeaveRequests:      []request.LeaveRequestResponse{},
		AdjustmentRequests: []request.AdjustmentRequestResponse{},
	}

	if filter.Type == "" || filter.Type == request.TypeLeave {
		leaveRequests, err := s.leaveRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, lr := range leaveRequests {
			resp.LeaveRequests = append(resp.LeaveRequests, request.NewLeaveRequestResponse(lr))
		}
	}

	if filter.Type == "" || filter.Type == request.TypeAdjustment {
		adjustmentRequests, err := s.adjustmentRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, ar := range adjustmentRequests {
			resp.AdjustmentRequests = append(resp.AdjustmentRequests, request.NewAdjustmentRequestResponse(ar))
		}
	}

	return resp, nil
}

// combine builds a punch timestamp from a date and an HH:MM wall time in the
// business timezone.
func (s *requestServiceImpl) combine(date time.Time, hhmm string) time.Time {
	parsed, _ := time.Parse("15:04", hhmm)
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, s.clock.Location())
}

func (s *requestServiceImpl) recalculate(att *attendance.Attendance) {
	loc := s.clock.Location()

	var in, out *time.Time
	if att.ClockIn != nil {
		t := att.ClockIn.In(loc)
		in = &t
	}
	if att.ClockOut != nil {
		t := att.ClockOut.In(loc)
		out = &t
	}

	result := timecalc.Calculate(in, out)
	att.LateMinutes = result.LateMinutes
	att.EarlyLeaveMinutes = result.EarlyLeaveMinutes
	att.OvertimeMinutes = result.OvertimeMinutes
	att.NightShiftMinutes = result.NightShiftMinutes
}
