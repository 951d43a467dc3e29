package core

import (
	"testing"
	"time"
)

func TestRegistrationValidate(t *testing.T) {
	valid := Registration{Username: "alice", Email: "alice@x.com", Password: "Secret123"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid registration rejected: %v", err)
	}

	cases := []struct {
		name string
		reg  Registration
	}{
		{"empty username", Registration{Username: " ", Email: "a@x.com", Password: "Secret123"}},
		{"bad email", Registration{Username: "a", Email: "not-an-email", Password: "Secret123"}},
		{"empty password", Registration{Username: "a", Email: "a@x.com", Password: ""}},
		{"short password", Registration{Username: "a", Email: "a@x.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.reg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !IsValidation(err) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@X.COM "); got != "alice@x.com" {
		t.Fatalf("expected alice@x.com, got %q", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	base := Expense{
		Amount:     Money{Cents: 1234},
		Vendor:     "grocer",
		IncurredAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid expense rejected: %v", err)
	}

	zeroAmount := base
	zeroAmount.Amount = Money{}
	if err := zeroAmount.Validate(); err == nil {
		t.Fatal("expected error for zero amount")
	}

	noVendor := base
	noVendor.Vendor = "  "
	if err := noVendor.Validate(); err == nil {
		t.Fatal("expected error for empty vendor")
	}

	noDate := base
	noDate.IncurredAt = time.Time{}
	if err := noDate.Validate(); err == nil {
		t.Fatal("expected error for zero incurred_at")
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := (Category{Name: "food"}).Validate(); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}
	if err := (Category{Name: ""}).Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAdmin.Valid() {
		t.Fatal("built-in roles should be valid")
	}
	if Role("root").Valid() {
		t.Fatal("unknown role should be invalid")
	}
}
