package app

import (
	"database/sql"

	"tl-payroll/internal/attendance"
	"tl-payroll/internal/auth"
	"tl-payroll/internal/bankfile"
	"tl-payroll/internal/company"
	"tl-payroll/internal/employee"
	"tl-payroll/internal/leave"
	"tl-payroll/internal/messaging/kafka"
	"tl-payroll/internal/middleware"
	"tl-payroll/internal/paycomponent"
	"tl-payroll/internal/payroll"
	"tl-payroll/internal/payslip"
	"tl-payroll/internal/rbac"
	"tl-payroll/internal/rbac/infra"
	"tl-payroll/internal/rbac/rbac_http"
	"tl-payroll/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	payComponentRepo := paycomponent.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo)
	companyService := company.NewService(db, companyRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	attendanceService := attendance.NewService(db, attendanceRepo)
	leaveService := leave.NewService(db, leaveRepo)
	payComponentService := paycomponent.NewService(db, payComponentRepo)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		employeeRepo,
		attendanceService,
		leaveService,
		payComponentService,
		counterRepo,
		outboxRepo,
	)
	bankFileService := bankfile.NewService(payrollRepo, companyRepo)
	payslipService := payslip.NewService(payslipRepo, payrollRepo, companyRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	payComponentHandler := paycomponent.NewHandler(payComponentService)
	payrollHandler := payroll.NewHandler(payrollService)
	bankFileHandler := bankfile.NewHandler(bankFileService)
	payslipHandler := payslip.NewHandler(payslipService)
	rbacHandler := rbac.NewHandler(rbacService)

	idempotency := middleware.Idempotency(rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		paycomponent.RegisterRoutes(api, payComponentHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, idempotency)
		bankfile.RegisterRoutes(api, bankFileHandler, rbacService, idempotency)
		payslip.RegisterRoutes(api, payslipHandler, rbacService)
		rbac_http.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
