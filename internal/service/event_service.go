// Package service holds the association and logistics rules of the events
// back office. It is transport-agnostic; internal/rpc exposes it over Connect.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/eventsdesk/internal/models"
	"github.com/mmynk/eventsdesk/internal/storage"
)

// Repository is the storage the event service needs.
type Repository interface {
	storage.ParticipantStore
	storage.EventStore
	storage.LogisticsStore
}

// EventService associates participants with events and records logistics.
type EventService struct {
	repo   Repository
	logger *slog.Logger
}

// NewEventService creates a new EventService with the given storage backend.
func NewEventService(repo Repository, logger *slog.Logger) *EventService {
	return &EventService{
		repo:   repo,
		logger: logger,
	}
}

// RegisterParticipant persists a new participant and returns it with its
// assigned ID. Names are not validated.
func (s *EventService) RegisterParticipant(ctx context.Context, participant *models.Participant) (*models.Participant, error) {
	if participant == nil {
		return nil, invalidArgument("participant is required")
	}

	// Associations are only created through events.
	participant.Events = nil
	if err := s.repo.SaveParticipant(ctx, participant); err != nil {
		s.logger.Error("RegisterParticipant failed", "error", err)
		return nil, translateStoreError(err)
	}

	s.logger.Info("Participant registered",
		"participant_id", participant.ID,
		"role", participant.Role,
	)
	return participant, nil
}

// AssociateEventToParticipant links event to an existing participant and
// persists the event together with its links. Associating twice is a no-op.
// Participants already listed on event must exist as well.
func (s *EventService) AssociateEventToParticipant(ctx context.Context, event *models.Event, participantID string) (*models.Event, error) {
	if event == nil {
		return nil, invalidArgument("event is required")
	}

	ids, err := s.lookupParticipants(ctx, "AssociateEventToParticipant", append([]string{participantID}, event.Participants...))
	if err != nil {
		return nil, err
	}

	event.Participants = ids
	return s.saveAndReload(ctx, event)
}

// AssociateEventToParticipants links event to every participant it lists.
// All participants must exist; the first unknown ID aborts the operation
// before anything is written.
func (s *EventService) AssociateEventToParticipants(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event == nil {
		return nil, invalidArgument("event is required")
	}
	if len(event.Participants) == 0 {
		return nil, invalidArgument("event must have participants")
	}

	ids, err := s.lookupParticipants(ctx, "AssociateEventToParticipants", event.Participants)
	if err != nil {
		return nil, err
	}

	event.Participants = ids
	return s.saveAndReload(ctx, event)
}

// lookupParticipants checks that every ID exists, in order, and returns them
// without duplicates. The first unknown ID is returned as ErrNotFound.
func (s *EventService) lookupParticipants(ctx context.Context, op string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if _, err := s.repo.GetParticipant(ctx, id); err != nil {
			s.logger.Warn(op+": participant lookup failed",
				"participant_id", id,
				"error", err,
			)
			return nil, translateStoreError(err)
		}
		out = append(out, id)
	}
	return out, nil
}

func (s *EventService) saveAndReload(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := s.repo.SaveEvent(ctx, event); err != nil {
		s.logger.Error("SaveEvent failed", "description", event.Description, "error", err)
		return nil, translateStoreError(err)
	}

	saved, err := s.repo.GetEvent(ctx, event.ID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	s.logger.Info("Event associated",
		"event_id", saved.ID,
		"participants_count", len(saved.Participants),
	)
	return saved, nil
}

// AttachLogistics attaches a logistics item to the event with the given
// description. The event is saved first, then the item. The item always gets
// a fresh ID, so attached items are never overwritten or moved.
func (s *EventService) AttachLogistics(ctx context.Context, logistics *models.Logistics, eventDescription string) (*models.Logistics, error) {
	if logistics == nil {
		return nil, invalidArgument("logistics is required")
	}
	if eventDescription == "" {
		return nil, invalidArgument("event description is required")
	}

	event, err := s.repo.GetEventByDescription(ctx, eventDescription)
	if err != nil {
		s.logger.Warn("AttachLogistics: event lookup failed",
			"description", eventDescription,
			"error", err,
		)
		return nil, translateStoreError(err)
	}

	logistics.ID = ""
	logistics.EventID = event.ID
	event.Logistics = append(event.Logistics, *logistics)
	if err := s.repo.SaveEvent(ctx, event); err != nil {
		s.logger.Error("AttachLogistics: SaveEvent failed", "event_id", event.ID, "error", err)
		return nil, translateStoreError(err)
	}

	if err := s.repo.SaveLogistics(ctx, logistics); err != nil {
		s.logger.Error("AttachLogistics: SaveLogistics failed", "event_id", event.ID, "error", err)
		return nil, translateStoreError(err)
	}

	s.logger.Info("Logistics attached",
		"event_id", event.ID,
		"logistics_id", logistics.ID,
		"reserved", logistics.Reserved,
	)
	return logistics, nil
}

// ListReservedLogistics returns the reserved logistics of every event whose
// start date lies in [start, end]. An inverted range yields an empty result.
func (s *EventService) ListReservedLogistics(ctx context.Context, start, end time.Time) ([]models.Logistics, error) {
	if start.IsZero() {
		return nil, invalidArgument("start date is required")
	}
	if end.IsZero() {
		return nil, invalidArgument("end date is required")
	}

	events, err := s.repo.ListEventsByStartDate(ctx, start, end)
	if err != nil {
		s.logger.Error("ListReservedLogistics failed", "error", err)
		return nil, translateStoreError(err)
	}

	reserved := []models.Logistics{}
	for _, event := range events {
		for _, item := range event.Logistics {
			if item.Reserved {
				reserved = append(reserved, item)
			}
		}
	}

	s.logger.Debug("ListReservedLogistics",
		"events_count", len(events),
		"logistics_count", len(reserved),
	)
	return reserved, nil
}

// GetEvent retrieves an event by ID.
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return event, nil
}

// GetParticipant retrieves a participant by ID, including its event IDs.
func (s *EventService) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	participant, err := s.repo.GetParticipant(ctx, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return participant, nil
}
