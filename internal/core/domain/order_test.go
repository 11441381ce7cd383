package domain

import "testing"

func TestItemsTotal(t *testing.T) {
	items := []OrderItem{
		{Name: "mug", Quantity: 2, Price: "79.99"},
		{Name: "poster", Quantity: 1, Price: "5"},
		{Name: "sticker", Quantity: 3, Price: "0.5"},
	}
	total, err := ItemsTotal(items)
	if err != nil {
		t.Fatalf("ItemsTotal returned error: %v", err)
	}
	if total != "166.48" {
		t.Fatalf("expected 166.48, got %s", total)
	}
}

func TestItemsTotal_Empty(t *testing.T) {
	total, err := ItemsTotal(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != "0.00" {
		t.Fatalf("expected 0.00, got %s", total)
	}
}

func TestItemsTotal_InvalidPrice(t *testing.T) {
	cases := []string{"", "abc", "1.999", "-5", "1.2.3"}
	for _, price := range cases {
		if _, err := ItemsTotal([]OrderItem{{Name: "x", Quantity: 1, Price: price}}); err == nil {
			t.Errorf("expected error for price %q", price)
		}
	}
}

func TestItemsTotal_NoFloatDrift(t *testing.T) {
	// 0.1 * 3 is not representable in binary floating point; the decimal
	// arithmetic must still produce an exact result.
	items := []OrderItem{{Name: "x", Quantity: 3, Price: "0.1"}}
	total, err := ItemsTotal(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != "0.30" {
		t.Fatalf("expected 0.30, got %s", total)
	}
}
