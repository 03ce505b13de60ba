package models

// Logistics is a priced resource (room, catering, equipment...) recorded
// against an event. Only reserved items count toward cost.
type Logistics struct {
	// ID is the unique identifier (UUID format), assigned by the store.
	ID string

	// EventID is the owning event. Empty until attached.
	EventID string

	Description string

	// Reserved marks the item as booked. It is the sole filter for cost
	// aggregation and reserved-logistics queries.
	Reserved bool

	UnitPrice float64
	Quantity  int
}
