package fiscalyear

import (
	"eduledger/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	years := r.Group("/fiscal-years")
	years.Use(middleware.AuthMiddleware())
	{
		years.GET("", middleware.RBACAuthorize(rbacService, "fiscal_year", "read"), handler.GetAll)
		years.GET("/active", middleware.RBACAuthorize(rbacService, "fiscal_year", "read"), handler.GetActive)
		years.GET("/:id", middleware.RBACAuthorize(rbacService, "fiscal_year", "read"), handler.GetById)
		years.POST("", middleware.RBACAuthorize(rbacService, "fiscal_year", "create"), handler.Create)
		years.PUT("/:id", middleware.RBACAuthorize(rbacService, "fiscal_year", "update"), handler.Update)
		years.POST("/:id/activate", middleware.RBACAuthorize(rbacService, "fiscal_year", "update"), handler.SetActive)
		years.POST("/:id/close", middleware.RBACAuthorize(rbacService, "fiscal_year", "update"), handler.Close)
	}
}
