package payment

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
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.GET("", middleware.RBACAuthorize(rbacService, "payment", "read"), handler.GetAll)
		payments.GET("/:id", middleware.RBACAuthorize(rbacService, "payment", "read"), handler.GetById)
		payments.POST("",
			middleware.RBACAuthorize(rbacService, "payment", "create"),
			middleware.Idempotency(rdb),
			handler.Record,
		)
	}
}
