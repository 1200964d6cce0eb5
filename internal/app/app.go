package app

import (
	"log"
	"os"

	"go-compliance/internal/audit"
	"go-compliance/internal/company"
	"go-compliance/internal/employee"
	"go-compliance/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	log.Println("✅ Database connection established")

	if os.Getenv("DB_AUTOMIGRATE") == "true" {
		if err := migrate(gormDB); err != nil {
			return err
		}
		log.Println("✅ Schema migrated")
	}

	// Redis is optional: without it the approved-company list is served
	// straight from the database.
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		log.Println("✅ Redis connection established")
	} else {
		log.Println("⚠️ REDIS_ADDR not set, company list cache disabled")
	}

	// The original frontend is a browser SPA on a different origin.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	return registerModules(router, gormDB, rdb)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&company.CompanyApplication{},
		&company.Company{},
		&employee.Employee{},
		&audit.AuditEvent{},
	); err != nil {
		return err
	}

	// The outbox table is written with raw SQL, so it is created the same way.
	return db.Exec(`
CREATE TABLE IF NOT EXISTS outbox_events (
	id uuid PRIMARY KEY,
	request_id varchar(64),
	aggregate_type varchar(100) NOT NULL,
	aggregate_id varchar(100) NOT NULL,
	event_type varchar(100) NOT NULL,
	topic varchar(255) NOT NULL,
	payload jsonb NOT NULL,
	status varchar(20) NOT NULL DEFAULT 'pending',
	retry_count int NOT NULL DEFAULT 0,
	error_message varchar(500),
	next_retry_at timestamptz,
	processed_at timestamptz,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
)`).Error
}
