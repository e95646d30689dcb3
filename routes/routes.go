package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/database"
	"github.com/sandeshm/portfolio-backend/internal/admin"
	"github.com/sandeshm/portfolio-backend/internal/ai"
	"github.com/sandeshm/portfolio-backend/internal/auditlog"
	"github.com/sandeshm/portfolio-backend/internal/blog"
	"github.com/sandeshm/portfolio-backend/internal/contact"
	"github.com/sandeshm/portfolio-backend/internal/event"
	"github.com/sandeshm/portfolio-backend/internal/mailer"
	"github.com/sandeshm/portfolio-backend/internal/reports"
	"github.com/sandeshm/portfolio-backend/internal/subscription"
	"github.com/sandeshm/portfolio-backend/middleware"

	_ "github.com/sandeshm/portfolio-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func Setup(r *gin.Engine, cfg *config.Config, queue *mailer.Queue) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())     // Global rate limit per IP
	api.Use(middleware.AuditMiddleware()) // Capture client IP for audit entries

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Admin Auth ==========
	adminRepo := admin.NewRepository(database.DB)
	adminSvc := admin.NewService(adminRepo, auditSvc, cfg)
	adminHandler := admin.NewHandler(adminSvc, cfg)

	api.POST("/admin/login", adminHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg))

	protected.GET("/admin/me", adminHandler.Me)
	protected.GET("/auditlogs", auditHandler.List)

	// ========== Contact ==========
	contactRepo := contact.NewRepository(database.DB)
	contactSvc := contact.NewService(contactRepo, queue, auditSvc, cfg)
	contactHandler := contact.NewHandler(contactSvc, cfg)

	api.POST("/contact", contactHandler.Create)

	contactAdmin := protected.Group("/contact")
	{
		contactAdmin.GET("", contactHandler.List)
		contactAdmin.GET("/stats", contactHandler.Stats)
		contactAdmin.GET("/:id", contactHandler.GetByID)
		contactAdmin.PATCH("/:id", contactHandler.Update)
		contactAdmin.DELETE("/:id", contactHandler.Delete)
	}

	// ========== Subscription ==========
	subRepo := subscription.NewRepository(database.DB)
	subSvc := subscription.NewService(subRepo, queue, auditSvc, cfg)
	subHandler := subscription.NewHandler(subSvc, cfg)

	api.POST("/subscription", subHandler.Subscribe)
	api.GET("/subscription/unsubscribe", subHandler.UnsubscribeByToken) // token link from emails

	subAdmin := protected.Group("/subscription")
	{
		subAdmin.GET("", subHandler.List)
		subAdmin.GET("/stats", subHandler.Stats)
		subAdmin.PATCH("/:id/unsubscribe", subHandler.Unsubscribe)
		subAdmin.PATCH("/:id/reactivate", subHandler.Reactivate)
		subAdmin.DELETE("/:id", subHandler.Delete)
	}

	// ========== Blog ==========
	blogRepo := blog.NewRepository(database.DB)
	blogSvc := blog.NewService(blogRepo, auditSvc)
	blogHandler := blog.NewHandler(blogSvc, cfg)

	blogPublic := api.Group("/blog")
	{
		blogPublic.GET("", blogHandler.List)
		blogPublic.GET("/featured", blogHandler.Featured)
		blogPublic.GET("/categories", blogHandler.Categories)
		blogPublic.GET("/stats", blogHandler.Stats)
		blogPublic.GET("/slug/:slug", blogHandler.GetBySlug)
		blogPublic.POST("/:id/like", blogHandler.Like)
	}

	blogAdmin := protected.Group("/blog")
	{
		blogAdmin.GET("/admin", blogHandler.ListAdmin)
		blogAdmin.POST("", blogHandler.Create)
		blogAdmin.PUT("/:id", blogHandler.Update)
		blogAdmin.DELETE("/:id", blogHandler.Delete)
	}

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, queue, auditSvc, cfg)
	eventHandler := event.NewHandler(eventSvc, cfg)

	eventPublic := api.Group("/events")
	{
		eventPublic.GET("", eventHandler.List)
		eventPublic.GET("/upcoming", eventHandler.Upcoming)
		eventPublic.GET("/featured", eventHandler.Featured)
		eventPublic.GET("/slug/:slug", eventHandler.GetBySlug)
		eventPublic.POST("/:id/register", eventHandler.Register)
		eventPublic.GET("/:id/check", eventHandler.CheckRegistration)
	}

	eventAdmin := protected.Group("/events")
	{
		eventAdmin.GET("/admin", eventHandler.ListAdmin)
		eventAdmin.POST("", eventHandler.Create)
		eventAdmin.PUT("/:id", eventHandler.Update)
		eventAdmin.PATCH("/:id/publish", eventHandler.TogglePublish)
		eventAdmin.PATCH("/:id/feature", eventHandler.ToggleFeatured)
		eventAdmin.DELETE("/:id", eventHandler.Delete)
		eventAdmin.GET("/:id/registrations", eventHandler.ListRegistrations)
		eventAdmin.DELETE("/registrations/:regId", eventHandler.DeleteRegistration)
	}

	// ========== AI Proxy ==========
	aiClient := ai.NewClient(cfg)
	aiSvc := ai.NewService(aiClient)
	aiHandler := ai.NewHandler(aiSvc, cfg)

	aiGroup := api.Group("/ai")
	{
		aiGroup.POST("/chat", aiHandler.Chat)
		aiGroup.POST("/email-reply", aiHandler.EmailReply)
		aiGroup.POST("/linkedin-post", aiHandler.LinkedInPost)
		aiGroup.POST("/business-plan", aiHandler.BusinessPlan)
		aiGroup.POST("/business-plan/pdf", aiHandler.BusinessPlanPDF)
		aiGroup.POST("/startup-names", aiHandler.StartupNames)
		aiGroup.POST("/project-ideas", aiHandler.ProjectIdeas)
	}

	// ========== Reports ==========
	reportsSvc := reports.NewService(database.DB, auditSvc)
	reportsHandler := reports.NewHandler(reportsSvc, cfg)

	protected.GET("/reports/:type/export", reportsHandler.Export)
}
