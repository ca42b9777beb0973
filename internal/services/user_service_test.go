package services

import (
	"testing"

	"monthwise/internal/models"
	"monthwise/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice", "supersecret")
		testutil.AssertNoError(t, err)

		if user.Username != "alice" {
			t.Errorf("expected lowercased username, got %s", user.Username)
		}
		if user.Password == "supersecret" {
			t.Error("password must be stored hashed")
		}
		if user.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", user.Currency)
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("bob", "supersecret")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Bob", "othersecret")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "supersecret")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateUser("charlie", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("dana", "supersecret")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "supersecret") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestChangePassword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("erin", "supersecret")
		testutil.AssertNoError(t, err)

		err = svc.ChangePassword(user.ID, "supersecret", "newersecret")
		testutil.AssertNoError(t, err)

		reloaded, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if !svc.VerifyPassword(reloaded, "newersecret") {
			t.Error("expected new password to verify")
		}
	})

	t.Run("wrong_current_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("frank", "supersecret")
		testutil.AssertNoError(t, err)

		err = svc.ChangePassword(user.ID, "wrong", "newersecret")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUpdateUserSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	updated, err := svc.UpdateCurrency(user.ID, "eur")
	testutil.AssertNoError(t, err)
	if updated.Currency != "EUR" {
		t.Errorf("expected currency EUR, got %s", updated.Currency)
	}

	updated, err = svc.UpdateSavings(user.ID, 1250.50)
	testutil.AssertNoError(t, err)
	if updated.Savings != 1250.50 {
		t.Errorf("expected savings 1250.50, got %.2f", updated.Savings)
	}

	updated, err = svc.UpdateSavingsGoal(user.ID, 10000)
	testutil.AssertNoError(t, err)
	if updated.SavingsGoal != 10000 {
		t.Errorf("expected savings goal 10000, got %.2f", updated.SavingsGoal)
	}

	updated, err = svc.UpdateRetirementSavings(user.ID, 500)
	testutil.AssertNoError(t, err)
	if updated.RetirementSavings != 500 {
		t.Errorf("expected retirement savings 500, got %.2f", updated.RetirementSavings)
	}
}

func TestClearData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)
	keeper := testutil.CreateTestUser(t, db)

	month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
	category := testutil.CreateTestCategory(t, db, user.ID, "Food", 500)
	testutil.CreateTestBudget(t, db, month.ID, category.ID, 500)
	testutil.CreateTestIncomeEntry(t, db, month.ID, "Salary", 5000)
	testutil.CreateTestFixedExpense(t, db, user.ID, "Rent", 1500)

	keeperMonth := testutil.CreateTestMonth(t, db, keeper.ID, 2025, 3)
	testutil.CreateTestIncomeEntry(t, db, keeperMonth.ID, "Salary", 4000)

	err := svc.ClearData(user.ID)
	testutil.AssertNoError(t, err)

	checks := []struct {
		name  string
		model interface{}
		where string
		arg   uint
	}{
		{"months", &models.Month{}, "user_id = ?", user.ID},
		{"categories", &models.BudgetCategory{}, "user_id = ?", user.ID},
		{"fixed expenses", &models.FixedExpense{}, "user_id = ?", user.ID},
		{"budgets", &models.MonthlyBudget{}, "month_id = ?", month.ID},
		{"income", &models.IncomeEntry{}, "month_id = ?", month.ID},
	}
	for _, check := range checks {
		var count int64
		db.Model(check.model).Where(check.where, check.arg).Count(&count)
		if count != 0 {
			t.Errorf("expected %s cleared, found %d", check.name, count)
		}
	}

	// The account itself and other users' data survive.
	_, err = svc.GetUserByID(user.ID)
	testutil.AssertNoError(t, err)

	var keeperIncome int64
	db.Model(&models.IncomeEntry{}).Where("month_id = ?", keeperMonth.ID).Count(&keeperIncome)
	if keeperIncome != 1 {
		t.Errorf("other users' data must survive, found %d income entries", keeperIncome)
	}
}
