package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func TestSubmitLeaveRequestValidate(t *testing.T) {
	cases := []struct {
		name       string
		req        SubmitLeaveRequest
		wantFields []string
	}{
		{"valid", SubmitLeaveRequest{LeaveDate: "2024-07-01", Reason: "family event"}, nil},
		{"missing date", SubmitLeaveRequest{Reason: "family event"}, []string{"leave_date"}},
		{"bad date format", SubmitLeaveRequest{LeaveDate: "01/07/2024", Reason: "x"}, []string{"leave_date"}},
		{"missing reason", SubmitLeaveRequest{LeaveDate: "2024-07-01"}, []string{"reason"}},
		{"reason too long", SubmitLeaveRequest{LeaveDate: "2024-07-01", Reason: strings.Repeat("a", 201)}, []string{"reason"}},
		{"everything wrong", SubmitLeaveRequest{}, []string{"leave_date", "reason"}},
	}

	for _, c := range cases {
		err := c.req.Validate()
		if c.wantFields == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", c.name, err)
			}
			continue
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("%s: expected ValidationErrors, got %v", c.name, err)
			continue
		}
		m := verrs.ToMap()
		for _, field := range c.wantFields {
			if _, ok := m[field]; !ok {
				t.Errorf("%s: expected error for field %q, got %v", c.name, field, m)
			}
		}
	}
}

func TestSubmitAdjustmentRequestValidate(t *testing.T) {
	cases := []struct {
		name       string
		req        SubmitAdjustmentRequest
		wantFields []string
	}{
		{"valid both times", SubmitAdjustmentRequest{TargetDate: "2024-06-05", CorrectedClockIn: strPtr("09:00"), CorrectedClockOut: strPtr("18:00"), Reason: "forgot to punch"}, nil},
		{"valid clock-out only", SubmitAdjustmentRequest{TargetDate: "2024-06-05", CorrectedClockOut: strPtr("19:00"), Reason: "forgot to punch"}, nil},
		{"no times", SubmitAdjustmentRequest{TargetDate: "2024-06-05", Reason: "x"}, []string{"corrected_clock_in"}},
		{"bad time format", SubmitAdjustmentRequest{TargetDate: "2024-06-05", CorrectedClockIn: strPtr("9am"), Reason: "x"}, []string{"corrected_clock_in"}},
		{"missing target date", SubmitAdjustmentRequest{CorrectedClockIn: strPtr("09:00"), Reason: "x"}, []string{"target_date"}},
		{"missing reason", SubmitAdjustmentRequest{TargetDate: "2024-06-05", CorrectedClockIn: strPtr("09:00")}, []string{"reason"}},
	}

	for _, c := range cases {
		err := c.req.Validate()
		if c.wantFields == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", c.name, err)
			}
			continue
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("%s: expected ValidationErrors, got %v", c.name, err)
			continue
		}
		m := verrs.ToMap()
		for _, field := range c.wantFields {
			if _, ok := m[field]; !ok {
				t.Errorf("%s: expected error for field %q, got %v", c.name, field, m)
			}
		}
	}
}

func TestRejectRequestValidate(t *testing.T) {
	if err := (&RejectRequest{Reason: "insufficient detail"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&RejectRequest{}).Validate(); err == nil {
		t.Error("empty reason should fail validation")
	}
}

func TestListFilterValidate(t *testing.T) {
	if err := (&ListFilter{Type: TypeLeave, Status: StatusPending}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&ListFilter{}).Validate(); err != nil {
		t.Errorf("empty filter should pass: %v", err)
	}
	if err := (&ListFilter{Type: "vacation"}).Validate(); err == nil {
		t.Error("unknown type should fail validation")
	}
	if err := (&ListFilter{Status: "open"}).Validate(); err == nil {
		t.Error("unknown status should fail validation")
	}
}
