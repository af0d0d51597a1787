package routes

import (
	"time"

	"freshfold-web/internal/adapters/http/handlers"
	"freshfold-web/internal/adapters/http/middleware"
	"freshfold-web/internal/config"
	"freshfold-web/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application. The wizard service comes
// from main (the cron sweeper shares it); the external API clients are
// built here.
func Setup(app *fiber.App, wizardService *services.WizardService, cfg *config.Config) {
	// External collaborators
	orderService := services.NewOrderService(cfg.OrderAPI.BaseURL)
	paymentService := services.NewPaymentService(cfg.Payment.BaseURL, cfg.Payment.SecretKey)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	sessionHandler := handlers.NewSessionHandler()
	wizardHandler := handlers.NewWizardHandler(wizardService, cfg)
	orderHandler := handlers.NewOrderHandler(wizardService, orderService, paymentService)
	pageHandler := handlers.NewPageHandler("./web/views")

	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Page shells. The guard redirects browsers here on denial.
	app.Get("/login", middleware.PageCache(time.Hour), pageHandler.Login)
	app.Get("/not-authorized", middleware.PageCache(time.Hour), pageHandler.NotAuthorized)

	// Guarded views
	app.Get("/order", middleware.CustomerOnly(), pageHandler.Order)
	app.Get("/profile", middleware.CustomerOnly(), pageHandler.Profile)
	app.Get("/dashboard/supplier", middleware.SupplierOnly(), pageHandler.SupplierDashboard)
	app.Get("/dashboard/employee", middleware.EmployeeOrManager(), pageHandler.EmployeeDashboard)

	// API v1 group (per-visitor state, never cached)
	apiV1 := app.Group("/api/v1", middleware.NoCacheHeaders())
	apiV1.Get("/", healthHandler.APIInfo)
	apiV1.Get("/session", sessionHandler.GetSession)
	setupWizardRoutes(apiV1.Group("/order"), wizardHandler, orderHandler)

	// Employee inventory requests (Employee/Manager/Admin)
	apiV1.Post("/employee-requests", middleware.EmployeeOrManager(), orderHandler.RequestItems)

	// Marketing and legal pages, served statically and registered last so
	// the routes above take precedence. Routed shells live in web/views,
	// outside this root, so the guards above cannot be sidestepped by
	// fetching a shell as a plain file.
	app.Static("/", "./web/public", fiber.Static{
		MaxAge: 3600,
	})
}

// setupWizardRoutes configures the order wizard and submission routes
func setupWizardRoutes(router fiber.Router, wizardHandler *handlers.WizardHandler, orderHandler *handlers.OrderHandler) {
	// Wizard state (anonymous visitors may build a draft; signing in is
	// only required to submit)
	router.Get("/wizard", wizardHandler.GetWizard)
	router.Post("/items/:id/toggle", wizardHandler.ToggleItem)
	router.Put("/items/:id/quantity", wizardHandler.SetQuantity)
	router.Put("/delivery", wizardHandler.SetDelivery)
	router.Put("/payment", wizardHandler.SetPayment)
	router.Post("/next", wizardHandler.Advance)
	router.Post("/back", wizardHandler.Back)

	// Submission and payment confirmation (signed-in customers, strict
	// rate limit against duplicate activation)
	router.Post("/submit", middleware.CustomerOnly(), middleware.SubmitRateLimiter(), orderHandler.Submit)
	router.Post("/confirm-payment", middleware.CustomerOnly(), middleware.SubmitRateLimiter(), orderHandler.ConfirmPayment)
}
