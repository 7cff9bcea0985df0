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

const adjustmentRequestColumns = `ar.id, ar.employee_id, ar.target_date,
		ar.original_clock_in, ar.original_clock_out, ar.requested_clock_in, ar.requested_clock_out,
		ar.reason, ar.status, ar.approved_by, ar.approved_at, ar.rejection_reason,
		ar.created_at, ar.updated_at`

type adjustmentRequestRepositoryImpl struct {
	db *database.DB
}

func NewAdjustmentRequestRepository(db *database.DB) request.AdjustmentRepository {
	return &adjustmentRequestRepositoryImpl{db: db}
}

func scanAdjustmentRequest(row pgx.Row) (*request.AdjustmentRequest, error) {
	var ar request.AdjustmentRequest
	err := row.Scan(
		&ar.ID, &ar.EmployeeID, &ar.TargetDate,
		&ar.OriginalClockIn, &ar.OriginalClockOut, &ar.RequestedClockIn, &ar.RequestedClockOut,
		&ar.Reason, &ar.Status, &ar.ApprovedBy, &ar.ApprovedAt, &ar.RejectionReason,
		&ar.CreatedAt, &ar.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

// Create implements request.AdjustmentRepository.
func (r *adjustmentRequestRepositoryImpl) Create(ctx context.Context, ar *request.AdjustmentRequest) error {
	q := GetQuerier(ctx, r.db)

	if ar.ID == "" {
		ar.ID = uuid.NewString()
	}

	query := `
		INSERT INTO adjustment_requests (
			id, employee_id, target_date,
			original_clock_in, original_clock_out, requested_clock_in, requested_clock_out,
			reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ar.ID, ar.EmployeeID, ar.TargetDate,
		ar.OriginalClockIn, ar.OriginalClockOut, ar.RequestedClockIn, ar.RequestedClockOut,
		ar.Reason, ar.Status,
	).Scan(&ar.CreatedAt, &ar.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create adjustment request: %w", err)
	}

	return nil
}

// GetByID implements request.AdjustmentRepository.
func (r *adjustmentRequestRepositoryImpl) GetByID(ctx context.Context, id string) (*request.AdjustmentRequest, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements request.AdjustmentRepository.
func (r *adjustmentRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (*request.AdjustmentRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *adjustmentRequestRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (*request.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + adjustmentRequestColumns + ` FROM adjustment_requests ar WHERE ar.id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	ar, err := scanAdjustmentRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, request.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get adjustment request: %w", err)
	}

	return ar, nil
}

// ExistsPendingByEmployeeAndDate implements request.AdjustmentRepository.
func (r *adjustmentRequestRepositoryImpl) ExistsPendingByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM adjustment_requests
			WHERE employee_id = $1 AND target_date = $2 AND status = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, request.StatusPending).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check adjustment request existence: %w", err)
	}

	return exists, nil
}

// Update implements request.AdjustmentRepository.
func (r *adjustmentRequestRepositoryImpl) Update(ctx context.Context, ar *request.AdjustmentRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE adjustment_requests
		SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		ar.Status, ar.ApprovedBy, ar.ApprovedAt, ar.RejectionReason, ar.ID,
	).Scan(&ar.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update adjustment request: %w", err)
	}

	return nil
}

// List implements request.AdjustmentRepository.
func (r *adjustmentRequestRepositoryImpl) List(ctx context.Context, filter *request.ListFilter) ([]*request.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + adjustmentRequestColumns + `, e.employee_name
		FROM adjustment_requests ar
		JOIN employees e ON e.id = ar.employee_id
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		query += fmt.Sprintf(" AND ar.employee_id = $%d", argPos)
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND ar.status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	query += " ORDER BY ar.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustment requests: %w", err)
	}
	defer rows.Close()

	var requests []*request.AdjustmentRequest
	for rows.Next() {
		var ar request.AdjustmentRequest
		err := rows.Scan(
			&ar.ID, &ar.EmployeeID, &ar.TargetDate,
			&ar.OriginalClockIn, &ar.OriginalClockOut, &ar.RequestedClockIn, &ar.RequestedClockOut,
			&ar.Reason, &ar.Status, &ar.ApprovedBy, &ar.ApprovedAt, &ar.RejectionReason,
			&ar.CreatedAt, &ar.UpdatedAt,
			&ar.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, &ar)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
