package models

import "time"

// DateLayout is the calendar-date format used for event dates on the wire
// and in storage.
const DateLayout = "2006-01-02"

// Event represents an event managed by the office.
type Event struct {
	// ID is the unique identifier (UUID format), assigned by the store.
	ID string

	// Description doubles as the natural key used to attach logistics.
	// The store rejects a second event with the same description.
	Description string

	// StartDate and EndDate are calendar dates (time of day is ignored).
	StartDate time.Time
	EndDate   time.Time

	// Cost is the sum of UnitPrice*Quantity over reserved logistics as of the
	// last aggregator run. It is not authoritative input.
	Cost float64

	// Participants holds the IDs of associated participants.
	Participants []string

	// Logistics are the items attached to this event.
	// Read-only on save: logistics are persisted through their own store call.
	Logistics []Logistics
}

// HasParticipant reports whether participantID is in the event's participant set.
func (e *Event) HasParticipant(participantID string) bool {
	for _, id := range e.Participants {
		if id == participantID {
			return true
		}
	}
	return false
}
