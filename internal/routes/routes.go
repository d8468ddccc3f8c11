// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"carvio/internal/handlers"
	"carvio/internal/middleware"
	"carvio/internal/models"
	"carvio/internal/repositories"
	"carvio/internal/services/audit"
	"carvio/internal/services/auth"
	"carvio/internal/services/company"
	"carvio/internal/services/listing"
	"carvio/internal/services/notification"
	"carvio/internal/services/verification"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	companyRepo := repositories.NewCompanyRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	listingRepo := repositories.NewListingRepository(db)

	// Initialize services in dependency order
	authService := auth.NewService(userRepo)
	auditLogger := audit.NewLogger(auditRepo)
	companyService := company.NewService(companyRepo, auditLogger, repositories.CacheService, notification.NewService())
	verificationService := verification.NewService(documentRepo, companyService, auditLogger)
	listingService := listing.NewService(listingRepo, companyRepo, repositories.CacheService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService, verificationService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	listingHandler := handlers.NewListingHandler(listingService, companyRepo)
	auditHandler := handlers.NewAuditHandler(auditRepo)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Carvio API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", authHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/listings", listingHandler.Browse)
	api.Get("/health", handlers.HealthCheck)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.LogoutUser)
	protected.Post("/change-password", authHandler.ChangePassword)

	// Company owner routes
	protected.Post("/companies",
		middleware.HasPermission(models.PermissionCompanyWrite), companyHandler.RegisterCompany)
	protected.Post("/companies/:id/documents",
		middleware.HasPermission(models.PermissionDocumentWrite), verificationHandler.SubmitDocument)
	protected.Post("/listings",
		middleware.HasPermission(models.PermissionListingWrite), listingHandler.Create)

	setupAdminRoutes(app, authMiddleware, companyHandler, verificationHandler, auditHandler)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware,
	companyHandler *handlers.CompanyHandler, verificationHandler *handlers.VerificationHandler,
	auditHandler *handlers.AuditHandler) {

	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	admin.Get("/companies/:id", companyHandler.GetCompany)
	admin.Post("/companies/:id/transition",
		middleware.HasPermission(models.PermissionCompanyTransition), companyHandler.TransitionCompany)

	admin.Put("/companies/:companyId/documents/:id/review",
		middleware.HasPermission(models.PermissionVerificationReview), verificationHandler.ReviewDocument)
	admin.Delete("/companies/:companyId/documents/:id",
		middleware.HasPermission(models.PermissionVerificationReview), verificationHandler.DeleteDocument)

	admin.Get("/audit-logs",
		middleware.HasPermission(models.PermissionReadAdmin), auditHandler.ListLogs)
}
