package auth

import (
	"time"

	"eduledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	// Brute-force protection on the credential endpoints.
	loginLimiter := middleware.RateLimitByIP(rate.Every(time.Second), 5)

	group := r.Group("/auth")
	{
		group.POST("/login", loginLimiter, handler.Login)
		group.POST("/refresh", loginLimiter, handler.Refresh)
		group.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
