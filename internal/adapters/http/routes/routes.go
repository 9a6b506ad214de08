package routes

import (
	"libralend/internal/adapters/http/handlers"
	"libralend/internal/adapters/http/middleware"
	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/config"
	"libralend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	bookRepo := repositories.NewBookRepository(db)

	// Initialize services
	catalogService := services.NewCatalogService(db)
	memberService := services.NewMemberService(db)
	lendingService := services.NewLendingService(db, cfg.Lending)
	importService := services.NewImportService(bookRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	bookHandler := handlers.NewBookHandler(catalogService)
	memberHandler := handlers.NewMemberHandler(memberService)
	transactionHandler := handlers.NewTransactionHandler(lendingService)
	importHandler := handlers.NewImportHandler(importService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Book routes
	books := apiV1.Group("/books")
	books.Get("/", bookHandler.List)
	books.Post("/", bookHandler.Create)
	books.Post("/import", middleware.ImportRateLimiter(), importHandler.Import)
	books.Get("/:id", bookHandler.GetByID)
	books.Put("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)

	// Member routes
	members := apiV1.Group("/members")
	members.Get("/", memberHandler.List)
	members.Post("/", memberHandler.Create)
	members.Get("/:id", memberHandler.GetByID)
	members.Put("/:id", memberHandler.Update)
	members.Delete("/:id", memberHandler.Delete)

	// Transaction routes
	transactions := apiV1.Group("/transactions")
	transactions.Post("/issue", transactionHandler.Issue)
	transactions.Put("/return/:id", transactionHandler.Return)
	transactions.Get("/active", transactionHandler.ListActive)
	transactions.Get("/:id", transactionHandler.GetByID)
}
