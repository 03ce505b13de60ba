// Package models defines the core domain models for the events back office.
//
// # Models
//
//   - Participant: a person registered with the office, tagged with a Role
//   - Event: something participants attend; carries a derived Cost
//   - Logistics: a priced resource attached to exactly one Event
//
// # Relationships
//
// Relationships are expressed with ID strings instead of pointers:
//
//  1. Event.Participants and Participant.Events are two views of the same
//     association index, so they never disagree once persisted
//  2. Logistics.EventID points at the owning event once attached
//  3. Event.Logistics is populated by the store on read
//
// Cost is never accepted as input. It is recomputed from reserved logistics
// by the cost aggregator and only written through a dedicated store call.
package models
