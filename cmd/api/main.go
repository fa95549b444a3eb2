package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tandemhr/ess-backend-go/internal/config"
	appHTTP "github.com/tandemhr/ess-backend-go/internal/handler/http"
	"github.com/tandemhr/ess-backend-go/internal/pkg/cron"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
	"github.com/tandemhr/ess-backend-go/internal/pkg/jwt"
	"github.com/tandemhr/ess-backend-go/internal/pkg/sse"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
	attendanceService "github.com/tandemhr/ess-backend-go/internal/service/attendance"
	authService "github.com/tandemhr/ess-backend-go/internal/service/auth"
	claimService "github.com/tandemhr/ess-backend-go/internal/service/claim"
	employeeService "github.com/tandemhr/ess-backend-go/internal/service/employee"
	extraShiftService "github.com/tandemhr/ess-backend-go/internal/service/extrashift"
	leaveService "github.com/tandemhr/ess-backend-go/internal/service/leave"
	letterService "github.com/tandemhr/ess-backend-go/internal/service/letter"
	notificationService "github.com/tandemhr/ess-backend-go/internal/service/notification"
	scheduleService "github.com/tandemhr/ess-backend-go/internal/service/schedule"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
	shiftSwapService "github.com/tandemhr/ess-backend-go/internal/service/shiftswap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Pool.Close()

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	outletRepo := postgresql.NewOutletRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	holidayRepo := postgresql.NewPublicHolidayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	employeeOutletRepo := postgresql.NewEmployeeOutletRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	shiftTemplateRepo := postgresql.NewShiftTemplateRepository(db)
	claimTypeRepo := postgresql.NewClaimTypeRepository(db)
	claimRequestRepo := postgresql.NewClaimRequestRepository(db)
	extraShiftRepo := postgresql.NewExtraShiftRepository(db)
	shiftSwapRepo := postgresql.NewShiftSwapRepository(db)
	letterRepo := postgresql.NewLetterRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	resolver := scope.NewResolver(companyRepo, outletRepo, departmentRepo, employeeRepo, employeeOutletRepo, positionRepo)

	notificationSvc := notificationService.NewService(notificationRepo, userRepo, hub)
	authSvc := authService.NewAuthService(userRepo, employeeRepo, resolver, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, employeeRepo, holidayRepo, resolver, notificationSvc)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, scheduleRepo, employeeRepo, resolver, notificationSvc)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo, shiftTemplateRepo, employeeRepo, holidayRepo, resolver)
	claimSvc := claimService.NewClaimService(db, claimTypeRepo, claimRequestRepo, employeeRepo, resolver, notificationSvc)
	extraShiftSvc := extraShiftService.NewService(db, extraShiftRepo, scheduleRepo, employeeRepo, resolver, notificationSvc)
	shiftSwapSvc := shiftSwapService.NewService(db, shiftSwapRepo, scheduleRepo, employeeRepo, resolver, notificationSvc)
	letterSvc := letterService.NewService(db, letterRepo, resolver, notificationSvc)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc, jwtService),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Schedule:     appHTTP.NewScheduleHandler(scheduleSvc),
		Claim:        appHTTP.NewClaimHandler(claimSvc),
		ExtraShift:   appHTTP.NewExtraShiftHandler(extraShiftSvc),
		ShiftSwap:    appHTTP.NewShiftSwapHandler(shiftSwapSvc),
		Letter:       appHTTP.NewLetterHandler(letterSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, jwtService, hub),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("stale-approval-expiry", cfg.Cron.StaleApprovalInterval,
		cron.NewStaleApprovalJob(db, leaveRequestRepo, notificationSvc))
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
