package payroll

import (
	"eduledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthMiddleware())
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetAll)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetById)
		runs.POST("",
			middleware.RBACAuthorize(rbacService, "payroll_run", "create"),
			middleware.Idempotency(rdb),
			handler.Generate,
		)
		runs.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, "payroll_run", "approve"),
			middleware.Idempotency(rdb),
			handler.Approve,
		)
		runs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll_run", "delete"), handler.Delete)
	}
}
