package auth

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/events"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-hq/kintai-backend-go/internal/repository/postgresql"
)

var testAuthDB *database.DB

const testSecret = "test-secret-key-for-jwt"

func authTestInit(t *testing.T) {
	t.Helper()
	if testAuthDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testAuthDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "connect to test database")
}

func truncateAuthTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"adjustment_requests", "leave_requests", "attendances", "employees"}
	for _, table := range tables {
		_, err := testAuthDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createAuthTestEmployee(t *testing.T, ctx context.Context, code string, status employee.EmploymentStatus) *employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	emp := &employee.Employee{
		EmployeeCode:           code,
		EmployeeName:           "Test Employee " + code,
		Email:                  code + "@example.com",
		PasswordHash:           string(hash),
		Role:                   employee.RoleEmployee,
		EmploymentStatus:       status,
		HiredAt:                time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PaidLeaveRemainingDays: employee.InitialPaidLeaveDays,
	}
	require.NoError(t, postgresql.NewEmployeeRepository(testAuthDB).Create(ctx, emp))
	return emp
}

func newTestAuthService() auth.Service {
	loc, _ := time.LoadLocation("Asia/Tokyo")
	return NewAuthService(
		postgresql.NewEmployeeRepository(testAuthDB),
		jwt.NewJWTService(testSecret, "1h"),
		clock.NewFixed(time.Date(2024, 6, 10, 10, 0, 0, 0, loc)),
		events.NewNoopBus(),
	)
}

func TestLogin(t *testing.T) {
	authTestInit(t)
	ctx := context.Background()
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()
	emp := createAuthTestEmployee(t, ctx, "EMP301", employee.EmploymentStatusActive)

	resp, err := svc.Login(ctx, &auth.LoginRequest{EmployeeCode: "EMP301", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, emp.ID, resp.EmployeeID)
	assert.Equal(t, string(employee.RoleEmployee), resp.Role)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
}

func TestLoginWrongPassword(t *testing.T) {
	authTestInit(t)
	ctx := context.Background()
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()
	createAuthTestEmployee(t, ctx, "EMP302", employee.EmploymentStatusActive)

	_, err := svc.Login(ctx, &auth.LoginRequest{EmployeeCode: "EMP302", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmployeeCode(t *testing.T) {
	authTestInit(t)
	ctx := context.Background()
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Login(ctx, &auth.LoginRequest{EmployeeCode: "NOBODY", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginRetiredEmployee(t *testing.T) {
	authTestInit(t)
	ctx := context.Background()
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()
	createAuthTestEmployee(t, ctx, "EMP303", employee.EmploymentStatusRetired)

	_, err := svc.Login(ctx, &auth.LoginRequest{EmployeeCode: "EMP303", Password: "password123"})
	assert.ErrorIs(t, err, employee.ErrEmployeeRetired)
}
