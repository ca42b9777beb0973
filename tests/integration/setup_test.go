package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"monthwise/internal/handlers"
	"monthwise/internal/logger"
	"monthwise/internal/middleware"
	"monthwise/internal/models"
	"monthwise/internal/report"
	"monthwise/internal/services"
	"monthwise/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.FixedExpense{},
		&models.BudgetCategory{},
		&models.Month{},
		&models.IncomeEntry{},
		&models.MonthlyBudget{},
		&models.Item{},
		&models.MonthlySnapshot{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	fixedExpenseService := services.NewFixedExpenseService(db)
	categoryService := services.NewCategoryService(db)
	monthService := services.NewMonthService(db, report.NewPDFRenderer())
	budgetService := services.NewBudgetService(db)
	incomeService := services.NewIncomeService(db)
	itemService := services.NewItemService(db)
	statsService := services.NewStatsService(db)
	exportService := services.NewExportService(db)

	// Handlers
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

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/me", authHandler.GetProfile)
	protected.POST("/auth/change-password", authHandler.ChangePassword)
	protected.POST("/clear-data", authHandler.ClearData)

	months := protected.Group("/months")
	months.GET("", monthHandler.ListMonths)
	months.GET("/current", monthHandler.GetCurrentMonth)
	months.GET("/:id", monthHandler.GetMonth)
	months.POST("/:id/close", monthHandler.CloseMonth)
	months.GET("/:id/pdf", monthHandler.GetPDF)
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

	fixedExpenses := protected.Group("/fixed-expenses")
	fixedExpenses.POST("", fixedExpenseHandler.CreateFixedExpense)
	fixedExpenses.GET("", fixedExpenseHandler.ListFixedExpenses)
	fixedExpenses.PUT("/:id", fixedExpenseHandler.UpdateFixedExpense)
	fixedExpenses.DELETE("/:id", fixedExpenseHandler.DeleteFixedExpense)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	protected.GET("/stats", statsHandler.GetStats)

	protected.GET("/savings", settingsHandler.GetSavings)
	protected.PUT("/savings", settingsHandler.UpdateSavings)
	protected.PUT("/savings/goal", settingsHandler.UpdateSavingsGoal)
	protected.GET("/retirement-savings", settingsHandler.GetRetirementSavings)
	protected.PUT("/retirement-savings", settingsHandler.UpdateRetirementSavings)
	protected.GET("/settings/currency", settingsHandler.GetCurrency)
	protected.PUT("/settings/currency", settingsHandler.UpdateCurrency)

	protected.GET("/export/json", exportHandler.ExportJSON)
	protected.POST("/import/json", exportHandler.ImportJSON)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, username, password string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}
