package auth

import (
	"go-compliance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		// Throttled per IP to slow credential guessing.
		auth.POST("/login", middleware.RateLimitByIP(5, 10), handler.Login)
	}
}
