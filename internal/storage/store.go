// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/eventsdesk/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateDescription is returned when saving an event whose
	// description is already used by another event.
	ErrDuplicateDescription = errors.New("event description already exists")
)

// ParticipantFilter selects events that have at least one participant
// matching all three fields.
type ParticipantFilter struct {
	Surname   string
	GivenName string
	Role      models.Role
}

// ParticipantStore persists participants.
type ParticipantStore interface {
	// GetParticipant retrieves a participant, including the IDs of its events.
	// Returns ErrNotFound if no participant has that ID.
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)

	// SaveParticipant inserts or updates a participant.
	// The participant.ID field will be populated by the store when empty.
	SaveParticipant(ctx context.Context, participant *models.Participant) error
}

// EventStore persists events and their participant associations.
type EventStore interface {
	// GetEvent retrieves an event with its participants and logistics.
	// Returns ErrNotFound if no event has that ID.
	GetEvent(ctx context.Context, id string) (*models.Event, error)

	// GetEventByDescription looks an event up by its natural key.
	// Returns ErrNotFound if no event has that description.
	GetEventByDescription(ctx context.Context, description string) (*models.Event, error)

	// ListEventsByStartDate returns events whose start date lies in
	// [start, end] inclusive, ordered by start date then ID.
	ListEventsByStartDate(ctx context.Context, start, end time.Time) ([]*models.Event, error)

	// ListEventsByParticipant returns events with at least one participant
	// matching the filter, ordered by start date then ID.
	ListEventsByParticipant(ctx context.Context, filter ParticipantFilter) ([]*models.Event, error)

	// SaveEvent inserts or updates an event and its participant links in one
	// transaction. It never writes Cost on update and never writes logistics.
	// The event.ID field will be populated by the store when empty.
	SaveEvent(ctx context.Context, event *models.Event) error

	// UpdateEventCost overwrites the derived cost of an event.
	// Returns ErrNotFound if no event has that ID.
	UpdateEventCost(ctx context.Context, eventID string, cost float64) error
}

// LogisticsStore persists logistics items.
type LogisticsStore interface {
	// SaveLogistics inserts or updates a logistics item.
	// The logistics.ID field will be populated by the store when empty.
	SaveLogistics(ctx context.Context, logistics *models.Logistics) error
}

// Store groups the three gateways behind a single backend.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	ParticipantStore
	EventStore
	LogisticsStore

	// Close releases any resources held by the store.
	Close() error
}
