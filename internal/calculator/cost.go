package calculator

import (
	"sort"
)

// Item represents a single logistics line for cost purposes
type Item struct {
	ID        string
	Reserved  bool
	UnitPrice float64
	Quantity  int
}

// CostSummary is the result of aggregating an event's logistics
type CostSummary struct {
	Total         float64
	ReservedCount int
	SkippedCount  int
}

// CalculateCost sums UnitPrice × Quantity over reserved items, starting from zero.
// Items are summed in ID order so the float result is reproducible regardless of
// the order the caller loaded them in.
func CalculateCost(items []Item) CostSummary {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	var summary CostSummary
	for _, item := range sorted {
		if !item.Reserved {
			summary.SkippedCount++
			continue
		}
		summary.Total += item.UnitPrice * float64(item.Quantity)
		summary.ReservedCount++
	}
	return summary
}
