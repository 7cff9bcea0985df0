package request

import (
	"time"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	LeaveDate string `json:"leave_date"`
	Reason    string `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if validator.IsEmpty(r.LeaveDate) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "leave_date",
			Message: "Leave date is required",
		})
	} else if !validator.IsValidDate(r.LeaveDate) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "leave_date",
			Message: "Leave date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "reason",
			Message: "Reason is required",
		})
	} else if !validator.MaxRunes(r.Reason, 200) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "reason",
			Message: "Reason must be 200 characters or less",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

type SubmitAdjustmentRequest struct {
	TargetDate        string  `json:"target_date"`
	CorrectedClockIn  *string `json:"corrected_clock_in,omitempty"`
	CorrectedClockOut *string `json:"corrected_clock_out,omitempty"`
	Reason            string  `json:"reason"`
}

func (r *SubmitAdjustmentRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if validator.IsEmpty(r.TargetDate) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "target_date",
			Message: "Target date is required",
		})
	} else if !validator.IsValidDate(r.TargetDate) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "target_date",
			Message: "Target date must be in YYYY-MM-DD format",
		})
	}

	if r.CorrectedClockIn == nil && r.CorrectedClockOut == nil {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "corrected_clock_in",
			Message: "At least one corrected time is required",
		})
	}

	if r.CorrectedClockIn != nil && !validator.IsValidTimeOfDay(*r.CorrectedClockIn) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "corrected_clock_in",
			Message: "Corrected clock-in must be in HH:MM format",
		})
	}

	if r.CorrectedClockOut != nil && !validator.IsValidTimeOfDay(*r.CorrectedClockOut) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "corrected_clock_out",
			Message: "Corrected clock-out must be in HH:MM format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "reason",
			Message: "Reason is required",
		})
	} else if !validator.MaxRunes(r.Reason, 200) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "reason",
			Message: "Reason must be 200 characters or less",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "reason",
			Message: "Rejection reason is required",
		})
	} else if !validator.MaxRunes(r.Reason, 200) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "reason",
			Message: "Rejection reason must be 200 characters or less",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// ListFilter narrows a request listing. Zero values mean no filter.
type ListFilter struct {
	EmployeeID string
	Type       Type
	Status     Status
}

func (f *ListFilter) Validate() error {
	var validationErrors validator.ValidationErrors

	if f.Type != "" && !validator.IsInSlice(string(f.Type), []string{string(TypeLeave), string(TypeAdjustment)}) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "type",
			Message: "Type must be either leave or adjustment",
		})
	}

	if f.Status != "" && !validator.IsInSlice(string(f.Status), []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "status",
			Message: "Status must be pending, approved or rejected",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    *string    `json:"employee_name,omitempty"`
	LeaveDate       string     `json:"leave_date"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewLeaveRequestResponse(lr *LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              lr.ID,
		Type:            string(TypeLeave),
		EmployeeID:      lr.EmployeeID,
		EmployeeName:    lr.EmployeeName,
		LeaveDate:       lr.LeaveDate.Format("2006-01-02"),
		Reason:          lr.Reason,
		Status:          string(lr.Status),
		ApprovedBy:      lr.ApprovedBy,
		ApprovedAt:      lr.ApprovedAt,
		RejectionReason: lr.RejectionReason,
		CreatedAt:       lr.CreatedAt,
	}
}

type AdjustmentRequestResponse struct {
	ID                string     `json:"id"`
	Type              string     `json:"type"`
	EmployeeID        string     `json:"employee_id"`
	EmployeeName      *string    `json:"employee_name,omitempty"`
	TargetDate        string     `json:"target_date"`
	OriginalClockIn   *time.Time `json:"original_clock_in,omitempty"`
	OriginalClockOut  *time.Time `json:"original_clock_out,omitempty"`
	RequestedClockIn  *time.Time `json:"requested_clock_in,omitempty"`
	RequestedClockOut *time.Time `json:"requested_clock_out,omitempty"`
	Reason            string     `json:"reason"`
	Status            string     `json:"status"`
	ApprovedBy        *string    `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	RejectionReason   *string    `json:"rejection_reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func NewAdjustmentRequestResponse(ar *AdjustmentRequest) AdjustmentRequestResponse {
	return AdjustmentRequestResponse{
		ID:                ar.ID,
		Type:              string(TypeAdjustment),
		EmployeeID:        ar.EmployeeID,
		EmployeeName:      ar.EmployeeName,
		TargetDate:        ar.TargetDate.Format("2006-01-02"),
		OriginalClockIn:   ar.OriginalClockIn,
		OriginalClockOut:  ar.OriginalClockOut,
		RequestedClockIn:  ar.RequestedClockIn,
		RequestedClockOut: ar.RequestedClockOut,
		Reason:            ar.Reason,
		Status:            string(ar.Status),
		ApprovedBy:        ar.ApprovedBy,
		ApprovedAt:        ar.ApprovedAt,
		RejectionReason:   ar.RejectionReason,
		CreatedAt:         ar.CreatedAt,
	}
}

type ListResponse struct {
	LeaveRequests      []LeaveRequestResponse      `json:"leave_requests"`
	AdjustmentRequests []AdjustmentRequestResponse `json:"adjustment_requests"`
}
