package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/database"
	"github.com/sandeshm/portfolio-backend/internal/admin"
	"github.com/sandeshm/portfolio-backend/internal/auditlog"
	"github.com/sandeshm/portfolio-backend/internal/blog"
	"github.com/sandeshm/portfolio-backend/internal/contact"
	"github.com/sandeshm/portfolio-backend/internal/event"
	"github.com/sandeshm/portfolio-backend/internal/mailer"
	"github.com/sandeshm/portfolio-backend/internal/subscription"
	"github.com/sandeshm/portfolio-backend/routes"
	"github.com/sandeshm/portfolio-backend/utils"
)

// @title Portfolio Backend API
// @version 1.0
// @description Backend for a personal portfolio site: contact forms, newsletter, blog, events and AI content tools.
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis (optional: caching + rate-limit store)
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka (optional: email queue transport)
	utils.InitializeKafka(cfg)
	defer utils.CloseKafka()

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auditlog.AuditLog{},
		&admin.AdminUser{},
		&contact.Contact{},
		&subscription.Subscription{},
		&blog.Blog{},
		&event.Event{},
		&event.Registration{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed admin account
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	adminSvc := admin.NewService(admin.NewRepository(db), auditSvc, cfg)
	if err := adminSvc.Seed(); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed admin account: %v", err))
	}

	// Start the background email queue
	queue := mailer.NewQueue(cfg, mailer.NewEmailSender(cfg))
	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()
	queue.Start(queueCtx)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS for the frontend origin
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, queue)

	log.Printf("🚀 Server listening on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
