package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"monthwise/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithUsername(t, db, username)
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		Currency: "USD",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a budget category for the user.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, label string, defaultAmount float64) *models.BudgetCategory {
	t.Helper()

	category := &models.BudgetCategory{
		UserID:        userID,
		Label:         label,
		DefaultAmount: defaultAmount,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestFixedExpense creates a recurring cost for the user.
func CreateTestFixedExpense(t *testing.T, db *gorm.DB, userID uint, label string, amount float64) *models.FixedExpense {
	t.Helper()

	expense := &models.FixedExpense{
		UserID: userID,
		Label:  label,
		Amount: amount,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test fixed expense: %v", err)
	}
	return expense
}

// CreateTestMonth creates an open month for the given period.
func CreateTestMonth(t *testing.T, db *gorm.DB, userID uint, year, month int) *models.Month {
	t.Helper()

	row := &models.Month{
		UserID: userID,
		Year:   year,
		Month:  month,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create test month: %v", err)
	}
	return row
}

// CreateTestIncomeEntry creates an income entry on the month.
func CreateTestIncomeEntry(t *testing.T, db *gorm.DB, monthID uint, label string, amount float64) *models.IncomeEntry {
	t.Helper()

	entry := &models.IncomeEntry{
		MonthID: monthID,
		Label:   label,
		Amount:  amount,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test income entry: %v", err)
	}
	return entry
}

// CreateTestBudget creates a monthly budget row for the category.
func CreateTestBudget(t *testing.T, db *gorm.DB, monthID, categoryID uint, allocated float64) *models.MonthlyBudget {
	t.Helper()

	budget := &models.MonthlyBudget{
		MonthID:         monthID,
		CategoryID:      categoryID,
		AllocatedAmount: allocated,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestItem creates a spending item on the month.
func CreateTestItem(t *testing.T, db *gorm.DB, monthID, categoryID uint, description string, amount float64, spentOn time.Time) *models.Item {
	t.Helper()

	item := &models.Item{
		MonthID:     monthID,
		CategoryID:  categoryID,
		Description: description,
		Amount:      amount,
		SpentOn:     spentOn,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}
