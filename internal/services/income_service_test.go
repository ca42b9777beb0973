package services

import (
	"testing"
	"time"

	"monthwise/internal/models"
	"monthwise/internal/testutil"
)

func TestCreateIncome(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)

		entry, err := svc.CreateIncome(user.ID, month.ID, "Salary", 5000)
		testutil.AssertNoError(t, err)

		if entry.ID == 0 {
			t.Fatal("expected non-zero entry ID")
		}
		if entry.Label != "Salary" || entry.Amount != 5000 {
			t.Errorf("expected Salary/5000, got %s/%.2f", entry.Label, entry.Amount)
		}
	})

	t.Run("rejected_on_closed_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)

		now := time.Now()
		db.Model(month).Updates(map[string]interface{}{"is_closed": true, "closed_at": now})

		_, err := svc.CreateIncome(user.ID, month.ID, "Late", 100)
		testutil.AssertAppError(t, err, "MONTH_CLOSED")
	})

	t.Run("month_not_owned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, owner.ID, 2025, 3)

		_, err := svc.CreateIncome(other.ID, month.ID, "Sneaky", 100)
		testutil.AssertAppError(t, err, "MONTH_NOT_FOUND")
	})
}

func TestUpdateIncome(t *testing.T) {
	t.Run("rejected_on_closed_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		entry := testutil.CreateTestIncomeEntry(t, db, month.ID, "Salary", 5000)

		now := time.Now()
		db.Model(month).Updates(map[string]interface{}{"is_closed": true, "closed_at": now})

		amount := 6000.0
		_, err := svc.UpdateIncome(user.ID, month.ID, entry.ID, nil, &amount)
		testutil.AssertAppError(t, err, "MONTH_CLOSED")
	})

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		entry := testutil.CreateTestIncomeEntry(t, db, month.ID, "Salary", 5000)

		label := "Base salary"
		updated, err := svc.UpdateIncome(user.ID, month.ID, entry.ID, &label, nil)
		testutil.AssertNoError(t, err)

		if updated.Label != "Base salary" {
			t.Errorf("expected label updated, got %s", updated.Label)
		}
		if updated.Amount != 5000 {
			t.Errorf("amount must be unchanged, got %.2f", updated.Amount)
		}
	})
}

func TestDeleteIncome(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		entry := testutil.CreateTestIncomeEntry(t, db, month.ID, "Salary", 5000)

		err := svc.DeleteIncome(user.ID, month.ID, entry.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.IncomeEntry{}).Where("id = ?", entry.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected entry deleted, found %d", count)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)

		err := svc.DeleteIncome(user.ID, month.ID, 99999)
		testutil.AssertAppError(t, err, "INCOME_ENTRY_NOT_FOUND")
	})
}

func TestListIncome(t *testing.T) {
	t.Run("readable_after_close", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		testutil.CreateTestIncomeEntry(t, db, month.ID, "Salary", 5000)

		now := time.Now()
		db.Model(month).Updates(map[string]interface{}{"is_closed": true, "closed_at": now})

		entries, err := svc.ListIncome(user.ID, month.ID)
		testutil.AssertNoError(t, err)
		if len(entries) != 1 {
			t.Errorf("closed months stay readable, expected 1 entry got %d", len(entries))
		}
	})
}
