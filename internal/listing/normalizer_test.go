package listing

import (
	"errors"
	"testing"
)

func TestNormalizeCoercesLeniently(t *testing.T) {
	n := NewNormalizer(nil)

	desc, err := n.Normalize(map[string]any{
		"category":     "  car ",
		"brand":        "Maruti",
		"model":        "Swift",
		"city":         "Pune",
		"asking_price": "4,50,000",
		"mileage_km":   float64(42000),
		"owners":       1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if desc.Category != "car" {
		t.Errorf("category not trimmed: %q", desc.Category)
	}
	if desc.AskingPrice != 450000 {
		t.Errorf("price not parsed from grouped string: %v", desc.AskingPrice)
	}
	if desc.Attributes["mileage_km"] != "42000" {
		t.Errorf("numeric attribute not stringified: %q", desc.Attributes["mileage_km"])
	}
	if desc.Attributes["owners"] != "1" {
		t.Errorf("int attribute not stringified: %q", desc.Attributes["owners"])
	}
}

func TestNormalizeRejectsEmptyCategory(t *testing.T) {
	n := NewNormalizer(nil)

	_, err := n.Normalize(map[string]any{"category": "   "})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "category" {
		t.Errorf("wrong field reported: %s", verr.Field)
	}
}

func TestNormalizeRequiredFieldPolicy(t *testing.T) {
	n := NewNormalizer([]string{"category", "brand", "city"})

	_, err := n.Normalize(map[string]any{
		"category": "bike",
		"brand":    "Hero",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "city" {
		t.Errorf("expected city to be flagged, got %s", verr.Field)
	}
}

func TestNormalizeNegativePriceBecomesZero(t *testing.T) {
	n := NewNormalizer(nil)

	desc, err := n.Normalize(map[string]any{
		"category":    "phone",
		"askingPrice": float64(-500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.AskingPrice != 0 {
		t.Errorf("negative price should clamp to 0, got %v", desc.AskingPrice)
	}
}

func TestNormalizePlanKeyNeverBecomesAttribute(t *testing.T) {
	n := NewNormalizer(nil)

	desc, err := n.Normalize(map[string]any{
		"category": "sofa",
		"plan":     "pro",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := desc.Attributes["plan"]; ok {
		t.Error("plan leaked into the attribute bag")
	}
}
