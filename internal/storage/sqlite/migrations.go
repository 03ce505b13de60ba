package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// schema sets up the database. It runs on startup to ensure tables exist.
// event_participants is the association index: Event.Participants and
// Participant.Events are both read from it.
const schema = `
CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    surname TEXT NOT NULL,
    given_name TEXT NOT NULL,
    role TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL UNIQUE,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    cost REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS event_participants (
    event_id TEXT NOT NULL,
    participant_id TEXT NOT NULL,
    PRIMARY KEY (event_id, participant_id),
    FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
    FOREIGN KEY (participant_id) REFERENCES participants(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS logistics (
    id TEXT PRIMARY KEY,
    event_id TEXT,
    description TEXT NOT NULL,
    reserved INTEGER NOT NULL,
    unit_price REAL NOT NULL,
    quantity INTEGER NOT NULL,
    FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_events_start_date ON events(start_date);
CREATE INDEX IF NOT EXISTS idx_event_participants_participant_id ON event_participants(participant_id);
CREATE INDEX IF NOT EXISTS idx_participants_name_role ON participants(surname, given_name, role);
CREATE INDEX IF NOT EXISTS idx_logistics_event_id ON logistics(event_id);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
