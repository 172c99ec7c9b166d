package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

type addItemInput struct {
	OrderID   string `json:"order_id"   validate:"required,uuid"`
	ProductID string `json:"product_id" validate:"required,uuid"`
	Amount    int    `json:"amount"     validate:"required,gte=1,lte=99"`
}

type productInput struct {
	Name  string  `json:"name"  validate:"required,max=120"`
	Price string  `json:"price" validate:"required,numeric"`
	Email string  `json:"email" validate:"nullable,email"`
	Note  *string `json:"note"  validate:"nullable,min=3"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(addItemInput{
		OrderID:   "7f9c24e5-3e1a-4b6c-9d2e-1a2b3c4d5e6f",
		ProductID: "0b8e7d6c-5a4f-4e3d-8c2b-1a0f9e8d7c6b",
		Amount:    2,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(addItemInput{})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got: %v", errs)
	}
	if errs["amount"] != "The amount field is required." {
		t.Errorf("unexpected amount message: %q", errs["amount"])
	}
}

func TestRequiredRejectsWhitespace(t *testing.T) {
	errs := validate.Struct(productInput{Name: "   ", Price: "10"})
	if _, ok := errs["name"]; !ok {
		t.Error("expected whitespace-only name to fail required")
	}
}

func TestUUIDRule(t *testing.T) {
	errs := validate.Struct(addItemInput{OrderID: "42", ProductID: "nope", Amount: 1})
	if errs["order_id"] != "The order_id must be a valid UUID." {
		t.Errorf("unexpected order_id message: %q", errs["order_id"])
	}
}

func TestNumericBounds(t *testing.T) {
	ok := addItemInput{
		OrderID:   "7f9c24e5-3e1a-4b6c-9d2e-1a2b3c4d5e6f",
		ProductID: "0b8e7d6c-5a4f-4e3d-8c2b-1a0f9e8d7c6b",
	}

	ok.Amount = -1
	if errs := validate.Struct(ok); errs["amount"] == "" {
		t.Error("expected negative amount to fail")
	}
	ok.Amount = 100
	if errs := validate.Struct(ok); errs["amount"] == "" {
		t.Error("expected amount > 99 to fail")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	if errs := validate.Struct(productInput{Name: "Margherita", Price: "35.90"}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable fields to pass: %v", errs)
	}

	short := "ab"
	errs := validate.Struct(productInput{Name: "Margherita", Price: "35.90", Email: "nope", Note: &short})
	if _, ok := errs["email"]; !ok {
		t.Error("expected invalid email to fail")
	}
	if _, ok := errs["note"]; !ok {
		t.Error("expected short note to fail through the pointer")
	}
}

func TestNumericRule(t *testing.T) {
	if errs := validate.Struct(productInput{Name: "Calabresa", Price: "abc"}); errs["price"] == "" {
		t.Error("expected non-numeric price to fail")
	}
}

func TestFirstIsStable(t *testing.T) {
	errs := map[string]string{"table": "b", "amount": "a", "order_id": "c"}
	for i := 0; i < 10; i++ {
		if got := validate.First(errs); got != "a" {
			t.Fatalf("expected first message by field name, got %q", got)
		}
	}
	if validate.First(nil) != "" {
		t.Error("expected empty message for no errors")
	}
}
