package routes

import (
	"time"

	"umoja-sacco/internal/adapters/http/handlers"
	"umoja-sacco/internal/adapters/http/middleware"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/config"
	"umoja-sacco/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	savingsRepo := repositories.NewSavingsRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	// Initialize services
	authService := services.NewAuthService(memberRepo, refreshTokenRepo, savingsRepo, cfg)
	loanService := services.NewLoanService(db, memberRepo, savingsRepo, loanRepo, transactionRepo, auditRepo)
	savingsService := services.NewSavingsService(memberRepo, savingsRepo, transactionRepo)
	penaltyService := services.NewPenaltyService(db, loanRepo)
	monitoringService := services.NewMonitoringService(db, transactionRepo, auditRepo)
	restructuringService := services.NewRestructuringService(db, loanRepo, auditRepo)
	outreachService := services.NewOutreachService(db)
	settingsService := services.NewSettingsService(db)
	reportService := services.NewReportService(db)
	exportService := services.NewExportService(db, reportService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	saccoHandler := handlers.NewSaccoHandler(
		loanService,
		savingsService,
		penaltyService,
		monitoringService,
		restructuringService,
		outreachService,
		settingsService,
	)
	memberHandler := handlers.NewMemberHandler(memberRepo)
	reportHandler := handlers.NewReportHandler(reportService)
	downloadHandler := handlers.NewDownloadHandler(exportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, saccoHandler, memberHandler, reportHandler, downloadHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	saccoHandler *handlers.SaccoHandler,
	memberHandler *handlers.MemberHandler,
	reportHandler *handlers.ReportHandler,
	downloadHandler *handlers.DownloadHandler,
	cfg *config.Config,
) {
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (rate limited)
	auth := router.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	auth.Get("/me", middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders(), authHandler.Me)

	// Back-office operations (officer or admin)
	router.Post("/sacco",
		middleware.AuthMiddleware(cfg),
		middleware.OfficerOrAdmin(),
		saccoHandler.Dispatch)
	router.Get("/sacco",
		middleware.AuthMiddleware(cfg),
		middleware.OfficerOrAdmin(),
		saccoHandler.ListResources)

	// Member directory (officer or admin)
	router.Get("/members",
		middleware.AuthMiddleware(cfg),
		middleware.OfficerOrAdmin(),
		memberHandler.ListMembers)

	// Member self-service
	router.Get("/loans/me",
		middleware.AuthMiddleware(cfg),
		middleware.PrivateCacheHeaders(30*time.Second),
		saccoHandler.MyLoans)

	// Reports (officer or admin)
	reports := router.Group("/reports", middleware.AuthMiddleware(cfg), middleware.OfficerOrAdmin())
	reports.Get("/", reportHandler.ListReports)
	reports.Post("/", reportHandler.Generate)
	reports.Get("/monthly-summary", reportHandler.MonthlySummary)
	reports.Get("/loan-portfolio", reportHandler.LoanPortfolio)
	reports.Get("/member-statement/:id", reportHandler.MemberStatement)
	reports.Post("/end-of-month", reportHandler.EndOfMonth)

	// Downloads (officer or admin, rate limited, never cached)
	downloads := router.Group("/downloads",
		middleware.AuthMiddleware(cfg),
		middleware.OfficerOrAdmin(),
		middleware.ExportRateLimiter(),
		middleware.NoCacheHeaders())
	downloads.Get("/", downloadHandler.ListTypes)
	downloads.Post("/", downloadHandler.DownloadPost)
	downloads.Get("/:type", downloadHandler.Download)
}
