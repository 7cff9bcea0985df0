package attendance

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/dateutil"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/events"
	"github.com/kintai-hq/kintai-backend-go/internal/repository/postgresql"
)

var testAttendanceDB *database.DB

func attendanceTestInit(t *testing.T) {
	t.Helper()
	if testAttendanceDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testAttendanceDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "connect to test database")
}

func truncateAttendanceTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"adjustment_requests", "leave_requests", "attendances", "employees"}
	for _, table := range tables {
		_, err := testAttendanceDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createAttendanceTestEmployee(t *testing.T, ctx context.Context, code string) *employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	emp := &employee.Employee{
		EmployeeCode:           code,
		EmployeeName:           "Test Employee " + code,
		Email:                  code + "@example.com",
		PasswordHash:           string(hash),
		Role:                   employee.RoleEmployee,
		EmploymentStatus:       employee.EmploymentStatusActive,
		HiredAt:                time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PaidLeaveRemainingDays: employee.InitialPaidLeaveDays,
	}
	require.NoError(t, postgresql.NewEmployeeRepository(testAttendanceDB).Create(ctx, emp))
	return emp
}

func jst(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func newTestAttendanceService(clk clock.Clock) attendance.Service {
	return NewAttendanceService(
		testAttendanceDB,
		postgresql.NewEmployeeRepository(testAttendanceDB),
		postgresql.NewAttendanceRepository(testAttendanceDB),
		clk,
		events.NewNoopBus(),
	)
}

func TestClockInAndOut(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	loc := jst(t)
	clk := clock.NewFixed(time.Date(2024, 6, 10, 9, 15, 0, 0, loc))
	svc := newTestAttendanceService(clk)

	emp := createAttendanceTestEmployee(t, ctx, "EMP001")
	actor := employee.Actor{EmployeeID: emp.ID, Role: employee.RoleEmployee}

	resp, err := svc.ClockIn(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", resp.Date)
	assert.Equal(t, 15, resp.LateMinutes)
	require.NotNil(t, resp.ClockIn)

	// A second punch the same day is rejected.
	_, err = svc.ClockIn(ctx, actor)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	clk.Set(time.Date(2024, 6, 10, 19, 15, 0, 0, loc))
	outResp, err := svc.ClockOut(ctx, actor)
	require.NoError(t, err)
	require.NotNil(t, outResp.ClockOut)

	_, err = svc.ClockOut(ctx, actor)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)

	history, err := svc.GetHistory(ctx, actor, &attendance.HistoryRequest{
		EmployeeID: emp.ID,
		YearMonth:  "2024-06",
	})
	require.NoError(t, err)
	require.Len(t, history.Records, 1)

	rec := history.Records[0]
	// 09:15 to 19:15 is 600 minutes, minus the lunch hour.
	assert.Equal(t, 540, rec.WorkingMinutes)
	assert.Equal(t, 15, rec.LateMinutes)
	assert.Equal(t, 0, rec.EarlyLeaveMinutes)
	assert.Equal(t, 60, rec.OvertimeMinutes)
	assert.Equal(t, 0, rec.NightShiftMinutes)
	assert.Equal(t, 540, history.Summary.TotalWorkingMinutes)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	clk := clock.NewFixed(time.Date(2024, 6, 10, 18, 0, 0, 0, jst(t)))
	svc := newTestAttendanceService(clk)

	emp := createAttendanceTestEmployee(t, ctx, "EMP002")
	actor := employee.Actor{EmployeeID: emp.ID, Role: employee.RoleEmployee}

	_, err := svc.ClockOut(ctx, actor)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestNightShiftClockOut(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	loc := jst(t)
	clk := clock.NewFixed(time.Date(2024, 6, 10, 9, 15, 0, 0, loc))
	svc := newTestAttendanceService(clk)

	emp := createAttendanceTestEmployee(t, ctx, "EMP003")
	actor := employee.Actor{EmployeeID: emp.ID, Role: employee.RoleEmployee}

	_, err := svc.ClockIn(ctx, actor)
	require.NoError(t, err)

	clk.Set(time.Date(2024, 6, 10, 23, 0, 0, 0, loc))
	_, err = svc.ClockOut(ctx, actor)
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, actor, &attendance.HistoryRequest{
		EmployeeID: emp.ID,
		YearMonth:  "2024-06",
	})
	require.NoError(t, err)
	require.Len(t, history.Records, 1)
	// 22:00-23:00 falls inside the night window.
	assert.Equal(t, 60, history.Records[0].NightShiftMinutes)
}

func TestGetHistoryAccessControl(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	clk := clock.NewFixed(time.Date(2024, 6, 10, 9, 0, 0, 0, jst(t)))
	svc := newTestAttendanceService(clk)

	emp := createAttendanceTestEmployee(t, ctx, "EMP004")
	other := createAttendanceTestEmployee(t, ctx, "EMP005")

	req := &attendance.HistoryRequest{EmployeeID: emp.ID, YearMonth: "2024-06"}

	_, err := svc.GetHistory(ctx, employee.Actor{EmployeeID: other.ID, Role: employee.RoleEmployee}, req)
	assert.Error(t, err)

	_, err = svc.GetHistory(ctx, employee.Actor{EmployeeID: other.ID, Role: employee.RoleAdmin}, req)
	assert.NoError(t, err)
}

func seedFullMonth(t *testing.T, ctx context.Context, employeeID string, yearMonth string, skipDates map[string]attendance.Status) {
	t.Helper()
	repo := postgresql.NewAttendanceRepository(testAttendanceDB)

	month, err := dateutil.ParseYearMonth(yearMonth)
	require.NoError(t, err)

	for _, day := range dateutil.WorkingDays(month) {
		key := dateutil.FormatDate(day)
		status, special := skipDates[key]
		if special && status == "" {
			continue // no record at all
		}

		rec := &attendance.Attendance{
			EmployeeID:       employeeID,
			Date:             day,
			Status:           attendance.StatusNormal,
			SubmissionStatus: attendance.SubmissionStatusUnsubmitted,
		}
		if special {
			rec.Status = status
		} else {
			in := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC)
			out := time.Date(day.Year(), day.Month(), day.Day(), 18, 0, 0, 0, time.UTC)
			rec.ClockIn = &in
			rec.ClockOut = &out
			rec.OvertimeMinutes = 0
		}
		require.NoError(t, repo.Create(ctx, rec))
	}
}

func TestSubmitMonth(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	clk := clock.NewFixed(time.Date(2024, 7, 1, 9, 0, 0, 0, jst(t)))
	svc := newTestAttendanceService(clk)

	emp := createAttendanceTestEmployee(t, ctx, "EMP006")
	actor := employee.Actor{EmployeeID: emp.ID, Role: employee.RoleEmployee}

	seedFullMonth(t, ctx, emp.ID, "2024-06", map[string]attendance.Status{
		"2024-06-14": attendance.StatusPaidLeave,
		"2024-06-21": attendance.StatusAbsent,
	})

	resp, err := svc.SubmitMonth(ctx, actor, &attendance.MonthlySubmitRequest{YearMonth: "2024-06"})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.SubmittedCount)
	assert.Equal(t, []string{"2024-06-21"}, resp.AbsentDates)

	// Every record in the month is now fixed.
	history, err := svc.GetHistory(ctx, actor, &attendance.HistoryRequest{EmployeeID: emp.ID, YearMonth: "2024-06"})
	require.NoError(t, err)
	for _, rec := range history.Records {
		assert.True(t, rec.Fixed, "record %s should be fixed", rec.Date)
		assert.Equal(t, string(attendance.SubmissionStatusSubmitted), rec.SubmissionStatus)
	}

	// Resubmission is rejected.
	_, err = svc.SubmitMonth(ctx, actor, &attendance.MonthlySubmitRequest{YearMonth: "2024-06"})
	assert.ErrorIs(t, err, attendance.ErrMonthAlreadySubmitted)

	// And fixed records refuse further punches.
	clk.Set(time.Date(2024, 6, 28, 9, 0, 0, 0, jst(t)))
	_, err = svc.ClockIn(ctx, actor)
	assert.ErrorIs(t, err, attendance.ErrFixedAttendance)
}

func TestSubmitMonthIncomplete(t *testing.T) {
	attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	clk := clock.NewFixed(time.Date(2024, 7, 1, 9, 0, 0, 0, jst(t)))
	svc := newTestAttendanceService(clk)

	emp := createAttendanceTestEmployee(t, ctx, "EMP007")
	actor := employee.Actor{EmployeeID: emp.ID, Role: employee.RoleEmployee}

	// 2024-06-12 has no record at all; 2024-06-13 is missing a clock-out.
	seedFullMonth(t, ctx, emp.ID, "2024-06", map[string]attendance.Status{
		"2024-06-12": "",
	})

	repo := postgresql.NewAttendanceRepository(testAttendanceDB)
	day := time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)
	rec, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day)
	require.NoError(t, err)
	rec.ClockOut = nil
	require.NoError(t, repo.Update(ctx, rec))

	_, err = svc.SubmitMonth(ctx, actor, &attendance.MonthlySubmitRequest{YearMonth: "2024-06"})
	require.Error(t, err)

	var incompleteErr *attendance.IncompleteAttendanceError
	require.ErrorAs(t, err, &incompleteErr)
	assert.ElementsMatch(t, []string{"2024-06-12", "2024-06-13"}, incompleteErr.MissingDates)

	// Nothing was fixed by the failed submission.
	history, err := svc.GetHistory(ctx, actor, &attendance.HistoryRequest{EmployeeID: emp.ID, YearMonth: "2024-06"})
	require.NoError(t, err)
	for _, r := range history.Records {
		assert.False(t, r.Fixed)
	}
}
