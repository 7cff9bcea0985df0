package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/kintai-hq/kintai-backend-go/internal/config"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/event"
	appHTTP "github.com/kintai-hq/kintai-backend-go/internal/handler/http"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/clock"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/events"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-hq/kintai-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kintai-hq/kintai-backend-go/internal/service/attendance"
	authService "github.com/kintai-hq/kintai-backend-go/internal/service/auth"
	employeeService "github.com/kintai-hq/kintai-backend-go/internal/service/employee"
	requestService "github.com/kintai-hq/kintai-backend-go/internal/service/request"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	adjustmentRequestRepo := postgresql.NewAdjustmentRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	businessClock := clock.NewBusiness(cfg.Business.Timezone)

	var bus event.Bus = events.NewNoopBus()
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSBus(cfg.NATS.URL, logger)
		if err != nil {
			fmt.Println("Error connecting to NATS:", err)
			return
		}
		defer natsBus.Close()
		bus = natsBus
	}

	authSvc := authService.NewAuthService(employeeRepo, jwtService, businessClock, bus)
	attendanceSvc := attendanceService.NewAttendanceService(db, employeeRepo, attendanceRepo, businessClock, bus)
	requestSvc := requestService.NewRequestService(db, employeeRepo, attendanceRepo, leaveRequestRepo, adjustmentRequestRepo, businessClock, bus)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, businessClock, bus)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(jwtService, authHandler, attendanceHandler, requestHandler, employeeHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
