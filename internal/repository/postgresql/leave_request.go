package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/request"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
)

const leaveRequestColumns = `lr.id, lr.employee_id, lr.leave_date, lr.reason, lr.status,
		lr.approved_by, lr.approved_at, lr.rejection_reason, lr.created_at, lr.updated_at`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) request.LeaveRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (*request.LeaveRequest, error) {
	var lr request.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveDate, &lr.Reason, &lr.Status,
		&lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

// Create implements request.LeaveRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr *request.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	if lr.ID == "" {
		lr.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lr.ID, lr.EmployeeID, lr.LeaveDate, lr.Reason, lr.Status,
	).Scan(&lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}

	return nil
}

// GetByID implements request.LeaveRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (*request.LeaveRequest, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements request.LeaveRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (*request.LeaveRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *leaveRequestRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (*request.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests lr WHERE lr.id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, request.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

// ExistsActiveByEmployeeAndDate implements request.LeaveRepository. Rejected
// requests do not count: the employee may re-apply for the same date.
func (r *leaveRequestRepositoryImpl) ExistsActiveByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND leave_date = $2 AND status != $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, request.StatusRejected).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave request existence: %w", err)
	}

	return exists, nil
}

// Update implements request.LeaveRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, lr *request.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, lr.Status, lr.ApprovedBy, lr.ApprovedAt, lr.RejectionReason, lr.ID).Scan(&lr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	return nil
}

// List implements request.LeaveRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter *request.ListFilter) ([]*request.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.employee_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		query += fmt.Sprintf(" AND lr.employee_id = $%d", argPos)
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND lr.status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	query += " ORDER BY lr.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []*request.LeaveRequest
	for rows.Next() {
		var lr request.LeaveRequest
		err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.LeaveDate, &lr.Reason, &lr.Status,
			&lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt,
			&lr.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, &lr)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
