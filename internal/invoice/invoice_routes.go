package invoice

import (
	"eduledger/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	invoices := r.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware())
	{
		invoices.GET("", middleware.RBACAuthorize(rbacService, "invoice", "read"), handler.GetAll)
		invoices.GET("/:id", middleware.RBACAuthorize(rbacService, "invoice", "read"), handler.GetById)
		invoices.POST("", middleware.RBACAuthorize(rbacService, "invoice", "create"), handler.Create)
		invoices.POST("/batch", middleware.RBACAuthorize(rbacService, "invoice", "create"), handler.CreateBatch)
	}

	students := r.Group("/students")
	students.Use(middleware.AuthMiddleware())
	{
		students.GET("/:studentId/unpaid-stats", middleware.RBACAuthorize(rbacService, "invoice", "read"), handler.GetUnpaidStats)
	}
}
