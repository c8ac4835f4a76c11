// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"placement/internal/handlers"
	"placement/internal/middleware"
	"placement/internal/models"
	"placement/internal/repositories"
	"placement/internal/services/assignment"
	"placement/internal/services/auth"
	"placement/internal/services/ledger"
	"placement/internal/services/notification"
	"placement/internal/services/query"
	"placement/internal/services/user"
	"placement/internal/services/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	itemRepo := repositories.NewItemRepository(db)

	// Initialize services in dependency order
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	registryService := assignment.NewService(assignmentRepo, userRepo)
	ledgerService := ledger.NewService(verificationRepo, repositories.CacheService)
	workflowService := workflow.NewService(
		ledgerService,
		registryService,
		itemRepo,
		userService,
		notification.NewService(),
	)
	queryService := query.NewService(verificationRepo, assignmentRepo, repositories.CacheService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	itemHandler := handlers.NewItemHandler(itemRepo)
	verificationHandler := handlers.NewVerificationHandler(workflowService, ledgerService)
	reviewHandler := handlers.NewReviewHandler(queryService, registryService)
	assignmentHandler := handlers.NewAssignmentHandler(registryService)

	// Public routes
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	setupAccountRoutes(protected, authHandler)
	setupItemRoutes(protected, itemHandler, verificationHandler)
	setupReviewRoutes(protected, reviewHandler, verificationHandler)
	setupAdminRoutes(app, authMiddleware, assignmentHandler, userHandler)
}

func setupAccountRoutes(router fiber.Router, authHandler *handlers.AuthHandler) {
	router.Post("/change-password", authHandler.ChangePassword)
	router.Post("/logout", authHandler.LogoutUser)
}

func setupItemRoutes(router fiber.Router, itemHandler *handlers.ItemHandler, verificationHandler *handlers.VerificationHandler) {
	items := router.Group("/items")

	items.Get("/", middleware.HasPermission(models.PermissionItemRead), itemHandler.ListOwnItems)
	items.Post("/:type", middleware.HasPermission(models.PermissionItemWrite), itemHandler.CreateItem)
	items.Get("/:type/:id", middleware.HasPermission(models.PermissionItemRead), itemHandler.GetItem)

	// Workflow transitions
	items.Post("/:type/:id/submit", middleware.HasPermission(models.PermissionItemSubmit), verificationHandler.SubmitItem)
	items.Patch("/:type/:id/decision", middleware.HasPermission(models.PermissionReviewDecide), verificationHandler.DecideItem)
	items.Post("/:type/:id/resubmit", middleware.HasPermission(models.PermissionItemSubmit), verificationHandler.ResubmitItem)
}

func setupReviewRoutes(router fiber.Router, reviewHandler *handlers.ReviewHandler, verificationHandler *handlers.VerificationHandler) {
	reviews := router.Group("/reviews", middleware.HasPermission(models.PermissionReviewRead))
	reviews.Get("/pending-count", reviewHandler.PendingCount)
	reviews.Get("/record/:type/:id", verificationHandler.GetRecord)

	router.Get("/students/:id/reviews", middleware.HasPermission(models.PermissionReviewRead), reviewHandler.ListStudentReviews)
	router.Get("/mentors/:id/reviews", middleware.HasPermission(models.PermissionReviewRead), reviewHandler.ListMentorReviews)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, assignmentHandler *handlers.AssignmentHandler, userHandler *handlers.UserHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	admin.Post("/assignments", middleware.HasPermission(models.PermissionAssignmentWrite), assignmentHandler.CreateAssignment)
	admin.Delete("/assignments", middleware.HasPermission(models.PermissionAssignmentWrite), assignmentHandler.DeleteAssignment)
	admin.Get("/assignments/mentor/:id", middleware.HasPermission(models.PermissionAssignmentRead), assignmentHandler.ListByMentor)
	admin.Get("/assignments/student/:id", middleware.HasPermission(models.PermissionAssignmentRead), assignmentHandler.ListByStudent)

	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), userHandler.GetUsersPaginated)
}
