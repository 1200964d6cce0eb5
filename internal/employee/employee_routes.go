package employee

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employee := r.Group("/employee")
	{
		employee.POST("/bulk-create", handler.BulkCreate)
		employee.POST("/create", handler.Create)
		employee.GET("/list/:reg_no", handler.ListByCompany)
	}
}
