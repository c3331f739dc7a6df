package store

import (
	"testing"

	"github.com/dukerupert/centavo/internal/model"
)

func TestAccountCRUD(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "bills@example.com")
	as := NewAccountStore(db)

	acct, err := as.Create(userID, "Rent", 150000, model.CategoryRent, 5)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if acct.Name != "Rent" || acct.DueDay != 5 || !acct.IsActive {
		t.Errorf("unexpected account: %+v", acct)
	}

	got, err := as.GetByID(acct.ID, userID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.AmountCents != 150000 {
		t.Errorf("amount = %d, want 150000", got.AmountCents)
	}

	updated, err := as.Update(acct.ID, userID, "Rent + condo", 180000, model.CategoryCondo, 7)
	if err != nil {
		t.Fatalf("update account: %v", err)
	}
	if updated.Name != "Rent + condo" || updated.DueDay != 7 {
		t.Errorf("unexpected updated account: %+v", updated)
	}

	if err := as.Delete(acct.ID, userID); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	got, err = as.GetByID(acct.ID, userID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestAccountOwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	as := NewAccountStore(db)

	acct, err := as.Create(alice, "Internet", 9900, model.CategoryInternet, 12)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	got, err := as.GetByID(acct.ID, bob)
	if err != nil {
		t.Fatalf("cross-owner get: %v", err)
	}
	if got != nil {
		t.Error("bob should not see alice's account")
	}
}

func TestAccountSetActiveAndListActive(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	as := NewAccountStore(db)

	a1, _ := as.Create(alice, "Rent", 150000, model.CategoryRent, 5)
	a2, _ := as.Create(alice, "Gym", 8000, model.CategoryGym, 20)
	b1, _ := as.Create(bob, "Water", 4500, model.CategoryWater, 5)

	// ListActive spans all users.
	active, err := as.ListActive()
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("expected 3 active accounts, got %d", len(active))
	}

	// Deactivate one; it disappears from ListActive but stays listed for its owner.
	deactivated, err := as.SetActive(a2.ID, alice, false)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if deactivated.IsActive {
		t.Error("account should be inactive")
	}

	active, _ = as.ListActive()
	if len(active) != 2 {
		t.Fatalf("expected 2 active accounts, got %d", len(active))
	}
	for _, a := range active {
		if a.ID == a2.ID {
			t.Error("inactive account returned by ListActive")
		}
	}

	mine, _ := as.ListByUser(alice)
	if len(mine) != 2 {
		t.Fatalf("expected 2 accounts for alice, got %d", len(mine))
	}

	// Reactivate.
	reactivated, err := as.SetActive(a2.ID, alice, true)
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if !reactivated.IsActive {
		t.Error("account should be active again")
	}

	_ = a1
	_ = b1
}
