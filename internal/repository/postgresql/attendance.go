package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
)

const attendanceColumns = `id, employee_id, attendance_date, clock_in, clock_out,
		late_minutes, early_leave_minutes, overtime_minutes, night_shift_minutes,
		status, submission_status, fixed_flag, created_at, updated_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (*attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.ClockIn, &a.ClockOut,
		&a.LateMinutes, &a.EarlyLeaveMinutes, &a.OvertimeMinutes, &a.NightShiftMinutes,
		&a.Status, &a.SubmissionStatus, &a.Fixed, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create implements attendance.Repository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, attendance_date, clock_in, clock_out,
			late_minutes, early_leave_minutes, overtime_minutes, night_shift_minutes,
			status, submission_status, fixed_flag
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.Date, a.ClockIn, a.ClockOut,
		a.LateMinutes, a.EarlyLeaveMinutes, a.OvertimeMinutes, a.NightShiftMinutes,
		a.Status, a.SubmissionStatus, a.Fixed,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create attendance: %w", err)
	}

	return nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return r.getByEmployeeAndDate(ctx, employeeID, date, false)
}

// GetByEmployeeAndDateForUpdate implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return r.getByEmployeeAndDate(ctx, employeeID, date, true)
}

func (r *attendanceRepositoryImpl) getByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, forUpdate bool) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND attendance_date = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

// Update implements attendance.Repository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_in = $1, clock_out = $2, late_minutes = $3, early_leave_minutes = $4,
			overtime_minutes = $5, night_shift_minutes = $6, status = $7,
			submission_status = $8, fixed_flag = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ClockIn, a.ClockOut, a.LateMinutes, a.EarlyLeaveMinutes,
		a.OvertimeMinutes, a.NightShiftMinutes, a.Status,
		a.SubmissionStatus, a.Fixed, a.ID,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

// ListByEmployeeAndRange implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]*attendance.Attendance, error) {
	return r.listByEmployeeAndRange(ctx, employeeID, from, to, false)
}

// ListByEmployeeAndRangeForUpdate implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndRangeForUpdate(ctx context.Context, employeeID string, from, to time.Time) ([]*attendance.Attendance, error) {
	return r.listByEmployeeAndRange(ctx, employeeID, from, to, true)
}

func (r *attendanceRepositoryImpl) listByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, forUpdate bool) ([]*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND attendance_date >= $2 AND attendance_date <= $3
		ORDER BY attendance_date
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []*attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// MarkMonthSubmitted implements attendance.Repository.
func (r *attendanceRepositoryImpl) MarkMonthSubmitted(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET submission_status = $1, fixed_flag = TRUE, updated_at = NOW()
		WHERE employee_id = $2 AND attendance_date >= $3 AND attendance_date <= $4
	`

	tag, err := q.Exec(ctx, query, attendance.SubmissionStatusSubmitted, employeeID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to mark month submitted: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
