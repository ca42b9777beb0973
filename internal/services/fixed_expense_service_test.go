package services

import (
	"testing"

	"monthwise/internal/models"
	"monthwise/internal/testutil"
)

func TestCreateFixedExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateFixedExpense(user.ID, "Rent", 1500)
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
		if expense.Label != "Rent" || expense.Amount != 1500 {
			t.Errorf("expected Rent/1500, got %s/%.2f", expense.Label, expense.Amount)
		}
	})

	t.Run("empty_label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateFixedExpense(user.ID, "", 100)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListFixedExpenses(t *testing.T) {
	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestFixedExpense(t, db, user1.ID, "Rent", 1500)
		testutil.CreateTestFixedExpense(t, db, user2.ID, "Rent", 900)

		expenses, err := svc.ListFixedExpenses(user1.ID)
		testutil.AssertNoError(t, err)
		if len(expenses) != 1 || expenses[0].Amount != 1500 {
			t.Errorf("expected only user1's Rent, got %+v", expenses)
		}
	})
}

func TestUpdateFixedExpense(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestFixedExpense(t, db, user.ID, "Rent", 1500)

		amount := 1600.0
		updated, err := svc.UpdateFixedExpense(user.ID, expense.ID, nil, &amount)
		testutil.AssertNoError(t, err)

		if updated.Amount != 1600 {
			t.Errorf("expected amount 1600, got %.2f", updated.Amount)
		}
		if updated.Label != "Rent" {
			t.Errorf("label must be unchanged, got %s", updated.Label)
		}
	})

	t.Run("not_owned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestFixedExpense(t, db, owner.ID, "Rent", 1500)

		amount := 1.0
		_, err := svc.UpdateFixedExpense(other.ID, expense.ID, nil, &amount)
		testutil.AssertAppError(t, err, "FIXED_EXPENSE_NOT_FOUND")
	})
}

func TestDeleteFixedExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFixedExpenseService(db)
	user := testutil.CreateTestUser(t, db)
	expense := testutil.CreateTestFixedExpense(t, db, user.ID, "Rent", 1500)

	err := svc.DeleteFixedExpense(user.ID, expense.ID)
	testutil.AssertNoError(t, err)

	var count int64
	db.Model(&models.FixedExpense{}).Where("id = ?", expense.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected expense deleted, found %d", count)
	}
}
