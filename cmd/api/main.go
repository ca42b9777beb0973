package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"monthwise/internal/config"
	"monthwise/internal/database"
	"monthwise/internal/handlers"
	"monthwise/internal/logger"
	"monthwise/internal/middleware"
	"monthwise/internal/report"
	"monthwise/internal/services"
	"monthwise/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	fixedExpenseService := services.NewFixedExpenseService(db)
	categoryService := services.NewCategoryService(db)
	monthService := services.NewMonthService(db, report.NewPDFRenderer())
	budgetService := services.NewBudgetService(db)
	incomeService := services.NewIncomeService(db)
	itemService := services.NewItemService(db)
	statsService := services.NewStatsService(db)
	exportService := services.NewExportService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	fixedExpenseHandler := handlers.NewFixedExpenseHandler(fixedExpenseService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	monthHandler := handlers.NewMonthHandler(monthService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	itemHandler := handlers.NewItemHandler(itemService)
	statsHandler := handlers.NewStatsHandler(statsService)
	settingsHandler := handlers.NewSettingsHandler(userService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Account
	protected.GET("/me", authHandler.GetProfile)
	protected.POST("/auth/change-password", authHandler.ChangePassword)
	protected.POST("/clear-data", authHandler.ClearData)

	// Month lifecycle
	months := protected.Group("/months")
	months.GET("", monthHandler.ListMonths)
	months.GET("/current", monthHandler.GetCurrentMonth)
	months.GET("/:id", monthHandler.GetMonth)
	months.POST("/:id/close", monthHandler.CloseMonth)
	months.GET("/:id/pdf", monthHandler.GetPDF)

	// Month-scoped budgets, income, and items
	months.GET("/:id/budgets", budgetHandler.ListBudgets)
	months.PUT("/:id/budgets/:budgetID", budgetHandler.UpdateBudget)
	months.GET("/:id/income", incomeHandler.ListIncome)
	months.POST("/:id/income", incomeHandler.CreateIncome)
	months.PUT("/:id/income/:entryID", incomeHandler.UpdateIncome)
	months.DELETE("/:id/income/:entryID", incomeHandler.DeleteIncome)
	months.GET("/:id/items", itemHandler.ListItems)
	months.POST("/:id/items", itemHandler.CreateItem)
	months.PUT("/:id/items/:itemID", itemHandler.UpdateItem)
	months.DELETE("/:id/items/:itemID", itemHandler.DeleteItem)

	// Fixed expenses
	fixedExpenses := protected.Group("/fixed-expenses")
	fixedExpenses.POST("", fixedExpenseHandler.CreateFixedExpense)
	fixedExpenses.GET("", fixedExpenseHandler.ListFixedExpenses)
	fixedExpenses.PUT("/:id", fixedExpenseHandler.UpdateFixedExpense)
	fixedExpenses.DELETE("/:id", fixedExpenseHandler.DeleteFixedExpense)

	// Categories
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Stats
	protected.GET("/stats", statsHandler.GetStats)

	// Settings
	protected.GET("/savings", settingsHandler.GetSavings)
	protected.PUT("/savings", settingsHandler.UpdateSavings)
	protected.PUT("/savings/goal", settingsHandler.UpdateSavingsGoal)
	protected.GET("/retirement-savings", settingsHandler.GetRetirementSavings)
	protected.PUT("/retirement-savings", settingsHandler.UpdateRetirementSavings)
	protected.GET("/settings/currency", settingsHandler.GetCurrency)
	protected.PUT("/settings/currency", settingsHandler.UpdateCurrency)

	// Export / import
	protected.GET("/export/json", exportHandler.ExportJSON)
	protected.POST("/import/json", exportHandler.ImportJSON)

	log.Infof("Starting monthwise backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
