package calculator

import (
	"math"
	"testing"
)

func TestCalculateCost(t *testing.T) {
	tests := []struct {
		name         string
		items        []Item
		wantTotal    float64
		wantReserved int
		wantSkipped  int
	}{
		{
			name: "non-reserved items are excluded",
			items: []Item{
				{ID: "a", Reserved: true, UnitPrice: 100, Quantity: 2},
				{ID: "b", Reserved: false, UnitPrice: 1000, Quantity: 5},
			},
			wantTotal:    200,
			wantReserved: 1,
			wantSkipped:  1,
		},
		{
			name:      "no items costs zero",
			items:     nil,
			wantTotal: 0,
		},
		{
			name: "only non-reserved items costs zero",
			items: []Item{
				{ID: "a", Reserved: false, UnitPrice: 10, Quantity: 3},
			},
			wantTotal:   0,
			wantSkipped: 1,
		},
		{
			name: "several reserved items",
			items: []Item{
				{ID: "c", Reserved: true, UnitPrice: 12.5, Quantity: 4},
				{ID: "a", Reserved: true, UnitPrice: 0.1, Quantity: 3},
				{ID: "b", Reserved: true, UnitPrice: 7, Quantity: 0},
			},
			wantTotal:    50.3,
			wantReserved: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCost(tt.items)
			if math.Abs(got.Total-tt.wantTotal) > 1e-9 {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
			if got.ReservedCount != tt.wantReserved {
				t.Errorf("ReservedCount = %d, want %d", got.ReservedCount, tt.wantReserved)
			}
			if got.SkippedCount != tt.wantSkipped {
				t.Errorf("SkippedCount = %d, want %d", got.SkippedCount, tt.wantSkipped)
			}
		})
	}
}

func TestCalculateCost_IndependentOfInputOrder(t *testing.T) {
	items := []Item{
		{ID: "1", Reserved: true, UnitPrice: 0.1, Quantity: 1},
		{ID: "2", Reserved: true, UnitPrice: 0.2, Quantity: 1},
		{ID: "3", Reserved: true, UnitPrice: 0.3, Quantity: 1},
		{ID: "4", Reserved: true, UnitPrice: 1e16, Quantity: 1},
	}
	reversed := []Item{items[3], items[2], items[1], items[0]}

	if a, b := CalculateCost(items).Total, CalculateCost(reversed).Total; a != b {
		t.Errorf("order-dependent result: %v vs %v", a, b)
	}
}

func TestCalculateCost_DoesNotReorderInput(t *testing.T) {
	items := []Item{
		{ID: "z", Reserved: true, UnitPrice: 1, Quantity: 1},
		{ID: "a", Reserved: true, UnitPrice: 1, Quantity: 1},
	}
	CalculateCost(items)
	if items[0].ID != "z" {
		t.Errorf("input slice was reordered: %+v", items)
	}
}
