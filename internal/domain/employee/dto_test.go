package employee

import (
	"errors"
	"strings"
	"testing"

	"github.com/kintai-hq/kintai-backend-go/internal/pkg/validator"
)

func TestCreateEmployeeRequestValidate(t *testing.T) {
	valid := CreateEmployeeRequest{
		EmployeeCode: "EMP001",
		EmployeeName: "Yamada Taro",
		Email:        "taro@example.com",
		Password:     "password123",
		Role:         "employee",
		HiredAt:      "2024-04-01",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request failed validation: %v", err)
	}

	cases := []struct {
		name      string
		mutate    func(r *CreateEmployeeRequest)
		wantField string
	}{
		{"empty code", func(r *CreateEmployeeRequest) { r.EmployeeCode = "" }, "employee_code"},
		{"code too short", func(r *CreateEmployeeRequest) { r.EmployeeCode = "ab" }, "employee_code"},
		{"code with symbols", func(r *CreateEmployeeRequest) { r.EmployeeCode = "EMP-001" }, "employee_code"},
		{"empty name", func(r *CreateEmployeeRequest) { r.EmployeeName = "" }, "employee_name"},
		{"name too long", func(r *CreateEmployeeRequest) { r.EmployeeName = strings.Repeat("a", 51) }, "employee_name"},
		{"bad email", func(r *CreateEmployeeRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *CreateEmployeeRequest) { r.Password = "short" }, "password"},
		{"unknown role", func(r *CreateEmployeeRequest) { r.Role = "manager" }, "role"},
		{"bad hire date", func(r *CreateEmployeeRequest) { r.HiredAt = "April 1st" }, "hired_at"},
	}

	for _, c := range cases {
		req := valid
		c.mutate(&req)
		err := req.Validate()

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("%s: expected ValidationErrors, got %v", c.name, err)
			continue
		}
		if _, ok := verrs.ToMap()[c.wantField]; !ok {
			t.Errorf("%s: expected error for field %q, got %v", c.name, c.wantField, verrs.ToMap())
		}
	}
}

func TestAdjustPaidLeaveRequestValidate(t *testing.T) {
	if err := (&AdjustPaidLeaveRequest{AdjustmentDays: 5, Reason: "annual grant"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&AdjustPaidLeaveRequest{AdjustmentDays: -3, Reason: "correction"}).Validate(); err != nil {
		t.Errorf("negative adjustment should be allowed: %v", err)
	}
	if err := (&AdjustPaidLeaveRequest{AdjustmentDays: 0, Reason: "noop"}).Validate(); err == nil {
		t.Error("zero adjustment should fail validation")
	}
	if err := (&AdjustPaidLeaveRequest{AdjustmentDays: 5}).Validate(); err == nil {
		t.Error("missing reason should fail validation")
	}
}

func TestActorIsAdmin(t *testing.T) {
	if (Actor{Role: RoleEmployee}).IsAdmin() {
		t.Error("employee role should not be admin")
	}
	if !(Actor{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role should be admin")
	}
}
