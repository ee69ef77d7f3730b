package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"umoja-sacco/internal/adapters/http/middleware"
	"umoja-sacco/internal/adapters/http/routes"
	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/config"
	"umoja-sacco/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title Umoja SACCO API
// @version 1.0
// @description Back-office API for the Umoja SACCO: members, savings, loans, reports and exports.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@umojasacco.co.ke

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.umojasacco.co.ke
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the admin member and default settings
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Daily jobs: reminder dispatch (08:30), backup record and expired
	// token cleanup (02:00)
	loanRepo := repositories.NewLoanRepository(db)
	cronService := services.NewCronService(
		services.NewPenaltyService(db, loanRepo),
		services.NewSettingsService(db),
		repositories.NewRefreshTokenRepository(db),
	)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Umoja SACCO API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

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
