package app

import (
	"database/sql"
	"net/http"

	"eduledger/internal/auth"
	"eduledger/internal/employee"
	"eduledger/internal/expense"
	"eduledger/internal/fiscalyear"
	"eduledger/internal/glhead"
	"eduledger/internal/invoice"
	"eduledger/internal/messaging/kafka"
	"eduledger/internal/payment"
	"eduledger/internal/payroll"
	"eduledger/internal/rbac"
	"eduledger/internal/salary"
	"eduledger/internal/shared/counter"
	"eduledger/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	sqlDB *sql.DB,
	rdb *redis.Client,
) error {
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	counterRepo := counter.NewRepository(db)

	fiscalYearRepo := fiscalyear.NewRepository(db)
	fiscalYearService := fiscalyear.NewService(sqlDB, fiscalYearRepo)
	fiscalyear.RegisterRoutes(api, fiscalyear.NewHandler(fiscalYearService), rbacService)

	glHeadRepo := glhead.NewRepository(db)
	resolver := glhead.NewResolver(glHeadRepo)
	glHeadService := glhead.NewService(glHeadRepo, resolver)
	glhead.RegisterRoutes(api, glhead.NewHandler(glHeadService), rbacService)

	invoiceRepo := invoice.NewRepository(db)
	invoiceService := invoice.NewService(sqlDB, invoiceRepo, counterRepo)
	invoice.RegisterRoutes(api, invoice.NewHandler(invoiceService), rbacService)

	paymentRepo := payment.NewRepository(db)
	paymentService := payment.NewServiceWithOutbox(sqlDB, paymentRepo, invoiceRepo, outboxRepo)
	payment.RegisterRoutes(api, payment.NewHandler(paymentService, rdb), rbacService, rdb)

	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(sqlDB, expenseRepo)
	expense.RegisterRoutes(api, expense.NewHandler(expenseService), rbacService)

	employeeRepo := employee.NewRepository(db)
	employeeService := employee.NewService(employeeRepo)
	employee.RegisterRoutes(api, employee.NewHandler(employeeService), rbacService)

	salaryRepo := salary.NewRepository(db)
	salaryService := salary.NewService(sqlDB, salaryRepo)
	salary.RegisterRoutes(api, salary.NewHandler(salaryService), rbacService)

	payrollRepo := payroll.NewRepository(db)
	payrollService := payroll.NewServiceWithOutbox(
		sqlDB, payrollRepo, salaryRepo, employeeRepo, expenseRepo, resolver, outboxRepo)
	payroll.RegisterRoutes(api, payroll.NewHandler(payrollService, rdb), rbacService, rdb)

	userRepo := user.NewRepository(db)
	userService := user.NewService(sqlDB, userRepo)
	user.RegisterRoutes(api, user.NewHandler(userService), rbacService)

	authService := auth.NewService(userRepo)
	auth.RegisterRoutes(api, auth.NewHandler(authService))

	return nil
}
