package services

import (
	"testing"
	"time"

	"monthwise/internal/models"
	"monthwise/internal/pagination"
	"monthwise/internal/testutil"
)

func TestCreateItem(t *testing.T) {
	spentOn := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewItemService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		category := testutil.CreateTestCategory(t, db, user.ID, "Food", 500)

		item, err := svc.CreateItem(user.ID, month.ID, category.ID, "Groceries", 45.50, spentOn)
		testutil.AssertNoError(t, err)

		if item.ID == 0 {
			t.Fatal("expected non-zero item ID")
		}
		if item.Amount != 45.50 {
			t.Errorf("expected amount 45.50, got %.2f", item.Amount)
		}
	})

	t.Run("rejected_on_closed_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewItemService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		category := testutil.CreateTestCategory(t, db, user.ID, "Food", 500)

		now := time.Now()
		db.Model(month).Updates(map[string]interface{}{"is_closed": true, "closed_at": now})

		_, err := svc.CreateItem(user.ID, month.ID, category.ID, "Late", 10, spentOn)
		testutil.AssertAppError(t, err, "MONTH_CLOSED")
	})

	t.Run("category_of_another_user_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewItemService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		foreign := testutil.CreateTestCategory(t, db, other.ID, "Theirs", 100)

		_, err := svc.CreateItem(user.ID, month.ID, foreign.ID, "Sneaky", 10, spentOn)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("empty_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewItemService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		category := testutil.CreateTestCategory(t, db, user.ID, "Food", 500)

		_, err := svc.CreateItem(user.ID, month.ID, category.ID, "", 10, spentOn)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateItem(t *testing.T) {
	spentOn := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewItemService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		category := testutil.CreateTestCategory(t, db, user.ID, "Food", 500)
		item := testutil.CreateTestItem(t, db, month.ID, category.ID, "Groceries", 50, spentOn)

		amount := 75.0
		updated, err := svc.UpdateItem(user.ID, month.ID, item.ID, nil, nil, &amount, nil)
		testutil.AssertNoError(t, err)

		if updated.Amount != 75 {
			t.Errorf("expected amount 75, got %.2f", updated.Amount)
		}
		if updated.Description != "Groceries" {
			t.Errorf("description must be unchanged, got %s", updated.Description)
		}
	})

	t.Run("rejected_on_closed_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewItemService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		category := testutil.CreateTestCategory(t, db, user.ID, "Food", 500)
		item := testutil.CreateTestItem(t, db, month.ID, category.ID, "Groceries", 50, spentOn)

		now := time.Now()
		db.Model(month).Updates(map[string]interface{}{"is_closed": true, "closed_at": now})

		amount := 75.0
		_, err := svc.UpdateItem(user.ID, month.ID, item.ID, nil, nil, &amount, nil)
		testutil.AssertAppError(t, err, "MONTH_CLOSED")
	})
}

func TestDeleteItem(t *testing.T) {
	spentOn := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewItemService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		category := testutil.CreateTestCategory(t, db, user.ID, "Food", 500)
		item := testutil.CreateTestItem(t, db, month.ID, category.ID, "Groceries", 50, spentOn)

		err := svc.DeleteItem(user.ID, month.ID, item.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Item{}).Where("id = ?", item.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected item deleted, found %d", count)
		}
	})

	t.Run("rejected_on_closed_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewItemService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		category := testutil.CreateTestCategory(t, db, user.ID, "Food", 500)
		item := testutil.CreateTestItem(t, db, month.ID, category.ID, "Groceries", 50, spentOn)

		now := time.Now()
		db.Model(month).Updates(map[string]interface{}{"is_closed": true, "closed_at": now})

		err := svc.DeleteItem(user.ID, month.ID, item.ID)
		testutil.AssertAppError(t, err, "MONTH_CLOSED")
	})
}

func TestListItems(t *testing.T) {
	t.Run("paginated_with_category_labels", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewItemService(db)
		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2025, 3)
		category := testutil.CreateTestCategory(t, db, user.ID, "Food", 500)

		for i := 0; i < 3; i++ {
			testutil.CreateTestItem(t, db, month.ID, category.ID, "item", 10,
				time.Date(2025, time.March, 1+i, 0, 0, 0, 0, time.UTC))
		}

		result, err := svc.ListItems(user.ID, month.ID, pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Errorf("expected 3 total items, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Fatalf("expected 2 items on the page, got %d", len(result.Data))
		}
		if result.Data[0].CategoryLabel != "Food" {
			t.Errorf("expected category label Food, got %s", result.Data[0].CategoryLabel)
		}
		// Newest spend first.
		if !result.Data[0].SpentOn.After(result.Data[1].SpentOn) {
			t.Errorf("expected newest spend first, got %v then %v", result.Data[0].SpentOn, result.Data[1].SpentOn)
		}
	})
}
