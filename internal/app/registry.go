package app

import (
	"net/http"

	"go-compliance/internal/auth"
	"go-compliance/internal/company"
	"go-compliance/internal/employee"
	"go-compliance/internal/messaging/kafka"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	// --- Services ---
	companyService := company.NewServiceWithOutbox(sqlDB, companyRepo, outboxRepo, rdb)
	authService := auth.NewService(companyRepo)
	employeeService := employee.NewServiceWithOutbox(sqlDB, employeeRepo, companyRepo, outboxRepo)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService)
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)

	// --- Routes Registration ---
	// Paths are the original public surface, no version prefix.
	api := router.Group("")
	{
		company.RegisterRoutes(api, companyHandler)
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Backend running"})
	})

	return nil
}
