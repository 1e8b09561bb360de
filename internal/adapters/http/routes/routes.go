package routes

import (
	"log"

	"companyhub/internal/adapters/http/handlers"
	"companyhub/internal/adapters/http/middleware"
	"companyhub/internal/adapters/persistence/repositories"
	"companyhub/internal/config"
	"companyhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	imageRepo := repositories.NewImageRepository(db)

	// Initialize services
	emailService := services.NewEmailService(cfg.SMTP)
	authService := services.NewAuthService(userRepo, roleRepo, resetRepo, emailService, cfg)
	userService := services.NewUserService(userRepo, roleRepo)
	companyService := services.NewCompanyService(companyRepo)
	employeeService := services.NewEmployeeService(employeeRepo, projectRepo)
	projectService := services.NewProjectService(projectRepo)
	reportService := services.NewReportService(companyRepo)

	uploadService, err := services.NewUploadService(imageRepo, employeeRepo, cfg.Upload)
	if err != nil {
		log.Fatalf("Failed to initialize upload service: %v", err)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	projectHandler := handlers.NewProjectHandler(projectService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded images are served as static files
	app.Static("/"+cfg.Upload.Dir, cfg.Upload.Dir)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate-limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Company routes (authenticated)
	companyRoutes := apiV1.Group("/companies")
	companyRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCompanyRoutes(companyRoutes, companyHandler)

	// Employee routes (authenticated), including project assignments and images
	employeeRoutes := apiV1.Group("/employees")
	employeeRoutes.Use(middleware.AuthMiddleware(cfg))
	setupEmployeeRoutes(employeeRoutes, employeeHandler, uploadHandler)

	// Project routes (authenticated)
	projectRoutes := apiV1.Group("/projects")
	projectRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProjectRoutes(projectRoutes, projectHandler)

	// Image routes (authenticated)
	imageRoutes := apiV1.Group("/images")
	imageRoutes.Use(middleware.AuthMiddleware(cfg))
	imageRoutes.Delete("/:imageId", uploadHandler.DeleteEmployeeImage)

	// Report routes (authenticated)
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	setupReportRoutes(reportRoutes, reportHandler)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Use(middleware.NoCacheHeaders())

	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/request-password-reset", middleware.StrictRateLimiter(), handler.RequestPasswordReset)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/assign-role", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), handler.AssignRole)
}

// setupCompanyRoutes configures company CRUD routes
func setupCompanyRoutes(router fiber.Router, handler *handlers.CompanyHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupEmployeeRoutes configures employee CRUD, assignment and image routes
func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler, uploads *handlers.UploadHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)

	// Project assignments
	router.Post("/:id/projects/:projectId", handler.AssignProject)
	router.Delete("/:id/projects/:projectId", handler.RemoveProject)

	// Images
	router.Get("/:id/images", uploads.ListEmployeeImages)
	router.Post("/:id/images", uploads.UploadEmployeeImage)
}

// setupProjectRoutes configures project CRUD routes
func setupProjectRoutes(router fiber.Router, handler *handlers.ProjectHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupReportRoutes configures report download routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/employees/pdf", handler.EmployeePDF)
	router.Get("/employees/excel", handler.EmployeeExcel)
}

// setupUserRoutes configures admin user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Get("/roles", handler.ListRoles)
	router.Get("/:id", handler.Get)
}
