package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mmynk/eventsdesk/internal/models"
	"github.com/mmynk/eventsdesk/internal/storage"
)

type eventRow struct {
	ID          string  `db:"id"`
	Description string  `db:"description"`
	StartDate   string  `db:"start_date"`
	EndDate     string  `db:"end_date"`
	Cost        float64 `db:"cost"`
}

var eventColumns = []interface{}{"id", "description", "start_date", "end_date", "cost"}

// formatDate stores dates as YYYY-MM-DD so that string comparison in SQL
// matches calendar order.
func formatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(models.DateLayout, s)
}

// SaveEvent upserts the event row and adds its participant links in a single
// transaction. Existing links are kept; cost is only set on insert (to zero)
// and is otherwise owned by UpdateEventCost.
func (s *SQLiteStore) SaveEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (id, description, start_date, end_date, cost)
		VALUES (?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			start_date = excluded.start_date,
			end_date = excluded.end_date
	`,
		event.ID,
		event.Description,
		formatDate(event.StartDate),
		formatDate(event.EndDate),
	)
	if isUniqueViolation(err, "events.description") {
		return fmt.Errorf("%q: %w", event.Description, storage.ErrDuplicateDescription)
	}
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	for _, participantID := range event.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO event_participants (event_id, participant_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			event.ID, participantID,
		)
		if err != nil {
			return fmt.Errorf("failed to link participant %s: %w", participantID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateEventCost overwrites the derived cost of an event.
func (s *SQLiteStore) UpdateEventCost(ctx context.Context, eventID string, cost float64) error {
	result, err := s.db.ExecContext(ctx, "UPDATE events SET cost = ? WHERE id = ?", cost, eventID)
	if err != nil {
		return fmt.Errorf("failed to update event cost: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}

	return nil
}

// GetEvent retrieves an event by ID, including participants and logistics.
func (s *SQLiteStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.getEventWhere(ctx, "id", id)
}

// GetEventByDescription retrieves an event by its description.
func (s *SQLiteStore) GetEventByDescription(ctx context.Context, description string) (*models.Event, error) {
	return s.getEventWhere(ctx, "description", description)
}

func (s *SQLiteStore) getEventWhere(ctx context.Context, column, value string) (*models.Event, error) {
	query, args, err := goqu.Dialect(dialect).
		From("events").
		Select(eventColumns...).
		Where(goqu.C(column).Eq(value)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build event query: %w", err)
	}

	var row eventRow
	err = s.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s %q: %w", column, value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return s.hydrateEvent(ctx, row)
}

// ListEventsByStartDate returns events whose start date lies in [start, end].
func (s *SQLiteStore) ListEventsByStartDate(ctx context.Context, start, end time.Time) ([]*models.Event, error) {
	ds := goqu.Dialect(dialect).
		From("events").
		Select(eventColumns...).
		Where(goqu.C("start_date").Between(goqu.Range(formatDate(start), formatDate(end)))).
		Order(goqu.C("start_date").Asc(), goqu.C("id").Asc())

	return s.listEvents(ctx, ds)
}

// ListEventsByParticipant returns events that have a participant matching filter.
func (s *SQLiteStore) ListEventsByParticipant(ctx context.Context, filter storage.ParticipantFilter) ([]*models.Event, error) {
	ds := goqu.Dialect(dialect).
		From(goqu.T("events").As("e")).
		Join(
			goqu.T("event_participants").As("ep"),
			goqu.On(goqu.I("ep.event_id").Eq(goqu.I("e.id"))),
		).
		Join(
			goqu.T("participants").As("p"),
			goqu.On(goqu.I("p.id").Eq(goqu.I("ep.participant_id"))),
		).
		Select(
			goqu.I("e.id"),
			goqu.I("e.description"),
			goqu.I("e.start_date"),
			goqu.I("e.end_date"),
			goqu.I("e.cost"),
		).
		Distinct().
		Where(goqu.Ex{
			"p.surname":    filter.Surname,
			"p.given_name": filter.GivenName,
			"p.role":       string(filter.Role),
		}).
		Order(goqu.I("e.start_date").Asc(), goqu.I("e.id").Asc())

	return s.listEvents(ctx, ds)
}

func (s *SQLiteStore) listEvents(ctx context.Context, ds *goqu.SelectDataset) ([]*models.Event, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build event query: %w", err)
	}

	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*models.Event, 0, len(rows))
	for _, row := range rows {
		event, err := s.hydrateEvent(ctx, row)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// hydrateEvent converts a row and loads the event's participants and logistics.
func (s *SQLiteStore) hydrateEvent(ctx context.Context, row eventRow) (*models.Event, error) {
	start, err := parseDate(row.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date of event %s: %w", row.ID, err)
	}
	end, err := parseDate(row.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end date of event %s: %w", row.ID, err)
	}

	event := &models.Event{
		ID:          row.ID,
		Description: row.Description,
		StartDate:   start,
		EndDate:     end,
		Cost:        row.Cost,
	}

	err = s.db.SelectContext(ctx, &event.Participants,
		"SELECT participant_id FROM event_participants WHERE event_id = ? ORDER BY participant_id",
		row.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get event participants: %w", err)
	}

	event.Logistics, err = s.listLogistics(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	return event, nil
}
