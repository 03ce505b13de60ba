package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/eventsdesk/internal/models"
	"github.com/mmynk/eventsdesk/internal/storage"
)

type participantRow struct {
	ID        string `db:"id"`
	Surname   string `db:"surname"`
	GivenName string `db:"given_name"`
	Role      string `db:"role"`
}

// SaveParticipant inserts a participant, or updates its fields if the ID exists.
func (s *SQLiteStore) SaveParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO participants (id, surname, given_name, role)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			surname = excluded.surname,
			given_name = excluded.given_name,
			role = excluded.role
	`,
		participant.ID,
		participant.Surname,
		participant.GivenName,
		string(participant.Role),
	)
	if err != nil {
		return fmt.Errorf("failed to save participant: %w", err)
	}

	return nil
}

// GetParticipant retrieves a participant by ID along with its event IDs.
func (s *SQLiteStore) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	var row participantRow
	err := s.db.GetContext(ctx, &row,
		"SELECT id, surname, given_name, role FROM participants WHERE id = ?",
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	participant := &models.Participant{
		ID:        row.ID,
		Surname:   row.Surname,
		GivenName: row.GivenName,
		Role:      models.Role(row.Role),
	}

	err = s.db.SelectContext(ctx, &participant.Events,
		"SELECT event_id FROM event_participants WHERE participant_id = ? ORDER BY event_id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant events: %w", err)
	}

	return participant, nil
}
