package cart

import (
	"errors"
	"testing"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/money"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		items     []Item
		wantTotal string
	}{
		{
			name: "two items",
			items: []Item{
				{ID: 1, Name: "A", Price: 5.00},
				{ID: 2, Name: "B", Price: 2.50},
			},
			wantTotal: "7.50",
		},
		{
			name: "sum computed before formatting",
			items: []Item{
				{ID: 1, Name: "A", Price: 10.5},
				{ID: 2, Name: "B", Price: 5.255},
			},
			wantTotal: "15.76",
		},
		{
			name:      "single free item",
			items:     []Item{{ID: 1, Name: "A", Price: 0}},
			wantTotal: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lineItems, total, err := Aggregate(tt.items)
			if err != nil {
				t.Fatalf("Aggregate returned error: %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %q, want %q", total, tt.wantTotal)
			}
			if len(lineItems) != len(tt.items) {
				t.Fatalf("got %d line items, want %d", len(lineItems), len(tt.items))
			}
			for i, li := range lineItems {
				if li.Quantity != "1" {
					t.Errorf("line item %d quantity = %q, want %q", i, li.Quantity, "1")
				}
				if li.Currency != money.Currency {
					t.Errorf("line item %d currency = %q, want %q", i, li.Currency, money.Currency)
				}
				if li.Name != tt.items[i].Name {
					t.Errorf("line item %d name = %q, want %q", i, li.Name, tt.items[i].Name)
				}
			}
		})
	}
}

func TestAggregate_EmptyCart(t *testing.T) {
	_, _, err := Aggregate(nil)
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("Aggregate(nil) error = %v, want ErrEmptyCart", err)
	}

	_, _, err = Aggregate([]Item{})
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("Aggregate([]) error = %v, want ErrEmptyCart", err)
	}
}

func TestAggregate_InvalidPrice(t *testing.T) {
	_, _, err := Aggregate([]Item{{ID: 1, Name: "A", Price: -3.50}})
	if !errors.Is(err, money.ErrInvalidAmount) {
		t.Errorf("Aggregate with negative price error = %v, want ErrInvalidAmount", err)
	}
}

func TestAggregate_LineItemPriceFormatting(t *testing.T) {
	lineItems, _, err := Aggregate([]Item{{ID: 1, Name: "Sunset", Price: 12.5}})
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if lineItems[0].Price != "12.50" {
		t.Errorf("line item price = %q, want %q", lineItems[0].Price, "12.50")
	}
}
