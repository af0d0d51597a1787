package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"freshfold-web/internal/adapters/http/middleware"
	"freshfold-web/internal/adapters/http/routes"
	"freshfold-web/internal/config"
	"freshfold-web/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "freshfold-web/docs" // Swagger docs
)

// @title FreshFold Web API
// @version 1.0
// @description Customer and supplier web front end for the FreshFold laundry service.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@freshfold.example

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1
// @schemes https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Wizard sessions live in memory; abandoned drafts are swept by cron
	wizardService := services.NewWizardService(cfg.Wizard.SessionTTL)

	cronService := services.NewCronService(wizardService)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FreshFold Web v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, wizardService, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
