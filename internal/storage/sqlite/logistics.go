package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/eventsdesk/internal/models"
)

type logisticsRow struct {
	ID          string         `db:"id"`
	EventID     sql.NullString `db:"event_id"`
	Description string         `db:"description"`
	Reserved    bool           `db:"reserved"`
	UnitPrice   float64        `db:"unit_price"`
	Quantity    int            `db:"quantity"`
}

func (r logisticsRow) toModel() models.Logistics {
	return models.Logistics{
		ID:          r.ID,
		EventID:     r.EventID.String,
		Description: r.Description,
		Reserved:    r.Reserved,
		UnitPrice:   r.UnitPrice,
		Quantity:    r.Quantity,
	}
}

// SaveLogistics inserts a logistics item, or updates it if the ID exists.
func (s *SQLiteStore) SaveLogistics(ctx context.Context, logistics *models.Logistics) error {
	if logistics.ID == "" {
		logistics.ID = uuid.New().String()
	}

	var eventID interface{} = nil
	if logistics.EventID != "" {
		eventID = logistics.EventID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO logistics (id, event_id, description, reserved, unit_price, quantity)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			event_id = excluded.event_id,
			description = excluded.description,
			reserved = excluded.reserved,
			unit_price = excluded.unit_price,
			quantity = excluded.quantity
	`,
		logistics.ID,
		eventID,
		logistics.Description,
		logistics.Reserved,
		logistics.UnitPrice,
		logistics.Quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to save logistics: %w", err)
	}

	return nil
}

// listLogistics returns the logistics attached to an event in ID order.
func (s *SQLiteStore) listLogistics(ctx context.Context, eventID string) ([]models.Logistics, error) {
	var rows []logisticsRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, event_id, description, reserved, unit_price, quantity
		FROM logistics
		WHERE event_id = ?
		ORDER BY id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get logistics: %w", err)
	}

	items := make([]models.Logistics, len(rows))
	for i, row := range rows {
		items[i] = row.toModel()
	}
	return items, nil
}
