package glhead

import (
	"eduledger/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	heads := r.Group("/gl-heads")
	heads.Use(middleware.AuthMiddleware())
	{
		heads.GET("", middleware.RBACAuthorize(rbacService, "gl_head", "read"), handler.GetAll)
		heads.GET("/tree", middleware.RBACAuthorize(rbacService, "gl_head", "read"), handler.GetTree)
		heads.GET("/:id", middleware.RBACAuthorize(rbacService, "gl_head", "read"), handler.GetById)
		heads.POST("", middleware.RBACAuthorize(rbacService, "gl_head", "create"), handler.Create)
		heads.POST("/resolve-payment-mode", middleware.RBACAuthorize(rbacService, "gl_head", "read"), handler.ResolvePaymentMode)
		heads.PUT("/:id", middleware.RBACAuthorize(rbacService, "gl_head", "update"), handler.Update)
		heads.DELETE("/:id", middleware.RBACAuthorize(rbacService, "gl_head", "delete"), handler.Delete)
	}
}
