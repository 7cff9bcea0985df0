package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/event"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/dateutil"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/timecalc"
	"github.com/kintai-hq/kintai-backend-go/internal/repository/postgresql"
)

type attendanceServiceImpl struct {
	db             *database.DB
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
	clock          clock.Clock
	bus            event.Bus
}

func NewAttendanceService(
	db *database.DB,
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
	clk clock.Clock,
	bus event.Bus,
) attendance.Service {
	return &attendanceServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		clock:          clk,
		bus:            bus,
	}
}

// ClockIn implements attendance.Service.
func (s *attendanceServiceImpl) ClockIn(ctx context.Context, actor employee.Actor) (*attendance.ClockResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp.EmploymentStatus == employee.EmploymentStatusRetired {
		return nil, employee.ErrEmployeeRetired
	}

	now := s.clock.Now().In(s.clock.Location())
	today := dateutil.DateOf(now)

	var record *attendance.Attendance
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.attendanceRepo.GetByEmployeeAndDateForUpdate(txCtx, emp.ID, today)
		if err != nil && err != attendance.ErrAttendanceNotFound {
			return err
		}

		if existing != nil {
			if existing.Fixed {
				return attendance.ErrFixedAttendance
			}
			if existing.ClockIn != nil {
				return attendance.ErrAlreadyClockedIn
			}
			existing.ClockIn = &now
			existing.LateMinutes = timecalc.LateMinutes(now)
			record = existing
			return s.attendanceRepo.Update(txCtx, existing)
		}

		record = &attendance.Attendance{
			EmployeeID:       emp.ID,
			Date:             today,
			ClockIn:          &now,
			LateMinutes:      timecalc.LateMinutes(now),
			Status:           attendance.StatusNormal,
			SubmissionStatus: attendance.SubmissionStatusUnsubmitted,
		}
		return s.attendanceRepo.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Type:       event.TypeClockIn,
		EmployeeID: emp.ID,
		ActorID:    actor.EmployeeID,
		OccurredAt: now,
		Detail: map[string]interface{}{
			"date":         dateutil.FormatDate(today),
			"late_minutes": record.LateMinutes,
		},
	})

	return &attendance.ClockResponse{
		AttendanceID: record.ID,
		Date:         dateutil.FormatDate(today),
		ClockIn:      record.ClockIn,
		LateMinutes:  record.LateMinutes,
	}, nil
}

// ClockOut implements attendance.Service.
func (s *attendanceServiceImpl) ClockOut(ctx context.Context, actor employee.Actor) (*attendance.ClockResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp.EmploymentStatus == employee.EmploymentStatusRetired {
		return nil, employee.ErrEmployeeRetired
	}

	now := s.clock.Now().In(s.clock.Location())
	today := dateutil.DateOf(now)

	var record *attendance.Attendance
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.attendanceRepo.GetByEmployeeAndDateForUpdate(txCtx, emp.ID, today)
		if err != nil {
			if err == attendance.ErrAttendanceNotFound {
				return attendance.ErrNotClockedIn
			}
			return err
		}

		if existing.Fixed {
			return attendance.ErrFixedAttendance
		}
		if existing.ClockIn == nil {
			return attendance.ErrNotClockedIn
		}
		if existing.ClockOut != nil {
			return attendance.ErrAlreadyClockedOut
		}

		existing.ClockOut = &now
		applyTimeMetrics(existing, s.clock.Location())
		record = existing
		return s.attendanceRepo.Update(txCtx, existing)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Type:       event.TypeClockOut,
		EmployeeID: emp.ID,
		ActorID:    actor.EmployeeID,
		OccurredAt: now,
		Detail: map[string]interface{}{
			"date":                dateutil.FormatDate(today),
			"overtime_minutes":    record.OvertimeMinutes,
			"night_shift_minutes": record.NightShiftMinutes,
		},
	})

	return &attendance.ClockResponse{
		AttendanceID: record.ID,
		Date:         dateutil.FormatDate(today),
		ClockIn:      record.ClockIn,
		ClockOut:     record.ClockOut,
		LateMinutes:  record.LateMinutes,
	}, nil
}

// GetHistory implements attendance.Service.
func (s *attendanceServiceImpl) GetHistory(ctx context.Context, actor employee.Actor, req *attendance.HistoryRequest) (*attendance.HistoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.EmployeeID != req.EmployeeID {
		return nil, auth.ErrAccessDenied
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	month, err := dateutil.ParseYearMonth(req.YearMonth)
	if err != nil {
		return nil, fmt.Errorf("parse year month: %w", err)
	}
	from, to := dateutil.MonthRange(month)

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, req.EmployeeID, from, to)
	if err != nil {
		return nil, err
	}

	resp := &attendance.HistoryResponse{
		EmployeeID: req.EmployeeID,
		YearMonth:  req.YearMonth,
		Records:    make([]attendance.AttendanceInfo, 0, len(records)),
	}

	for _, rec := range records {
		working := workingMinutes(rec, s.clock.Location())

		resp.Records = append(resp.Records, attendance.AttendanceInfo{
			ID:                rec.ID,
			Date:              dateutil.FormatDate(rec.Date),
			ClockIn:           rec.ClockIn,
			ClockOut:          rec.ClockOut,
			WorkingMinutes:    working,
			LateMinutes:       rec.LateMinutes,
			EarlyLeaveMinutes: rec.EarlyLeaveMinutes,
			OvertimeMinutes:   rec.OvertimeMinutes,
			NightShiftMinutes: rec.NightShiftMinutes,
			Status:            string(rec.Status),
			SubmissionStatus:  string(rec.SubmissionStatus),
			Fixed:             rec.Fixed,
		})

		resp.Summary.TotalWorkingMinutes += working
		resp.Summary.TotalLateMinutes += rec.LateMinutes
		resp.Summary.TotalEarlyLeaveMinutes += rec.EarlyLeaveMinutes
		resp.Summary.TotalOvertimeMinutes += rec.OvertimeMinutes
		resp.Summary.TotalNightShiftMinutes += rec.NightShiftMinutes

		switch rec.Status {
		case attendance.StatusPaidLeave:
			resp.Summary.PaidLeaveDays++
		case attendance.StatusAbsent:
			resp.Summary.AbsentDays++
		}
	}

	return resp, nil
}

// SubmitMonth implements attendance.Service.
func (s *attendanceServiceImpl) SubmitMonth(ctx context.Context, actor employee.Actor, req *attendance.MonthlySubmitRequest) (*attendance.MonthlySubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp.EmploymentStatus == employee.EmploymentStatusRetired {
		return nil, employee.ErrEmployeeRetired
	}

	month, err := dateutil.ParseYearMonth(req.YearMonth)
	if err != nil {
		return nil, fmt.Errorf("parse year month: %w", err)
	}
	from, to := dateutil.MonthRange(month)

	var resp *attendance.MonthlySubmitResponse
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		records, err := s.attendanceRepo.ListByEmployeeAndRangeForUpdate(txCtx, emp.ID, from, to)
		if err != nil {
			return err
		}

		byDate := make(map[string]*attendance.Attendance, len(records))
		for _, rec := range records {
			if rec.SubmissionStatus == attendance.SubmissionStatusSubmitted {
				return attendance.ErrMonthAlreadySubmitted
			}
			byDate[dateutil.FormatDate(rec.Date)] = rec
		}

		var missingDates, absentDates []string
		for _, day := range dateutil.WorkingDays(from) {
			key := dateutil.FormatDate(day)
			rec, ok := byDate[key]
			if !ok {
				missingDates = append(missingDates, key)
				continue
			}
			if rec.Status == attendance.StatusAbsent {
				absentDates = append(absentDates, key)
				continue
			}
			if !rec.Complete() {
				missingDates = append(missingDates, key)
			}
		}

		if len(missingDates) > 0 {
			return &attendance.IncompleteAttendanceError{
				MissingDates: missingDates,
				AbsentDates:  absentDates,
			}
		}

		count, err := s.attendanceRepo.MarkMonthSubmitted(txCtx, emp.ID, from, to)
		if err != nil {
			return err
		}

		resp = &attendance.MonthlySubmitResponse{
			YearMonth:      req.YearMonth,
			SubmittedCount: count,
			AbsentDates:    absentDates,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, event.Event{
		Type:       event.TypeMonthSubmitted,
		EmployeeID: emp.ID,
		ActorID:    actor.EmployeeID,
		OccurredAt: s.clock.Now(),
		Detail: map[string]interface{}{
			"year_month":      req.YearMonth,
			"submitted_count": resp.SubmittedCount,
		},
	})

	return resp, nil
}

// workingMinutes recomputes the day's net working time from the stored
// punches. It is derived, not stored, so an adjusted punch never leaves a
// stale figure behind.
func workingMinutes(rec *attendance.Attendance, loc *time.Location) int {
	if rec.ClockIn == nil || rec.ClockOut == nil {
		return 0
	}
	in := rec.ClockIn.In(loc)
	out := rec.ClockOut.In(loc)
	return timecalc.WorkingMinutes(in, out)
}

// applyTimeMetrics recalculates every stored metric from the record's
// punches, interpreted in the business timezone.
func applyTimeMetrics(rec *attendance.Attendance, loc *time.Location) {
	var in, out *time.Time
	if rec.ClockIn != nil {
		t := rec.ClockIn.In(loc)
		in = &t
	}
	if rec.ClockOut != nil {
		t := rec.ClockOut.In(loc)
		out = &t
	}

	result := timecalc.Calculate(in, out)
	rec.LateMinutes = result.LateMinutes
	rec.EarlyLeaveMinutes = result.EarlyLeaveMinutes
	rec.OvertimeMinutes = result.OvertimeMinutes
	rec.NightShiftMinutes = result.NightShiftMinutes
}
