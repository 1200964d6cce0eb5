package company

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	company := r.Group("/company")
	{
		company.POST("/register", handler.Register)
		company.GET("/requests", handler.ListRequests)
		company.POST("/approve/:id", handler.Approve)
		company.POST("/reject/:id", handler.Reject)
		company.GET("/list", handler.List)
	}
}
