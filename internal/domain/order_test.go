package domain

import (
	"errors"
	"testing"
)

func TestTaxCents(t *testing.T) {
	tests := []struct {
		name       string
		itemsCents int64
		expected   int64
	}{
		{"even subtotal", 10000, 1500},
		{"free shipping subtotal", 15000, 2250},
		{"rounds half up", 10, 2}, // 1.5 cents
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaxCents(tt.itemsCents); got != tt.expected {
				t.Errorf("TaxCents(%d) = %d, want %d", tt.itemsCents, got, tt.expected)
			}
		})
	}
}

func TestShippingCents(t *testing.T) {
	tests := []struct {
		name       string
		itemsCents int64
		expected   int64
	}{
		{"under threshold", 9999, 1000},
		{"exactly at threshold still charged", 10000, 1000},
		{"over threshold ships free", 10001, 0},
		{"well over threshold", 15000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShippingCents(tt.itemsCents); got != tt.expected {
				t.Errorf("ShippingCents(%d) = %d, want %d", tt.itemsCents, got, tt.expected)
			}
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Shipped", "Delivered"} {
		if _, err := ParseOrderStatus(valid); err != nil {
			t.Errorf("ParseOrderStatus(%q) returned error: %v", valid, err)
		}
	}

	_, err := ParseOrderStatus("Cancelled")
	if err == nil {
		t.Fatal("ParseOrderStatus should reject unknown status")
	}
	if !errors.Is(err, ErrInvalidOrderStatus) {
		t.Error("error should match ErrInvalidOrderStatus")
	}
	if ErrorCode(err) != EINVALID {
		t.Errorf("code = %q, want %q", ErrorCode(err), EINVALID)
	}
}

func TestCartTotals(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{Quantity: 2, UnitPriceCents: 2500},
			{Quantity: 1, UnitPriceCents: 5000},
		},
	}

	if got := cart.TotalCents(); got != 10000 {
		t.Errorf("TotalCents() = %d, want 10000", got)
	}
	if got := cart.ItemCount(); got != 3 {
		t.Errorf("ItemCount() = %d, want 3", got)
	}
}
