package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/eventsdesk/internal/models"
	"github.com/mmynk/eventsdesk/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func date(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("SaveParticipant generates ID", func(t *testing.T) {
		p := &models.Participant{Surname: "Doe", GivenName: "John", Role: models.RoleGuest}
		if err := store.SaveParticipant(ctx, p); err != nil {
			t.Fatalf("SaveParticipant failed: %v", err)
		}
		if p.ID == "" {
			t.Error("Expected participant ID to be generated")
		}

		got, err := store.GetParticipant(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetParticipant failed: %v", err)
		}
		if got.Surname != "Doe" || got.GivenName != "John" || got.Role != models.RoleGuest {
			t.Errorf("Participant mismatch: got %+v", got)
		}
		if len(got.Events) != 0 {
			t.Errorf("Expected no events, got %v", got.Events)
		}
	})

	t.Run("SaveParticipant accepts empty names", func(t *testing.T) {
		p := &models.Participant{}
		if err := store.SaveParticipant(ctx, p); err != nil {
			t.Fatalf("SaveParticipant failed: %v", err)
		}
		if p.ID == "" {
			t.Error("Expected participant ID to be generated")
		}
	})

	t.Run("GetParticipant returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetParticipant(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveEvent links participants on both sides", func(t *testing.T) {
		alice := &models.Participant{Surname: "Smith", GivenName: "Alice", Role: models.RoleOrganizer}
		bob := &models.Participant{Surname: "Jones", GivenName: "Bob", Role: models.RoleGuest}
		for _, p := range []*models.Participant{alice, bob} {
			if err := store.SaveParticipant(ctx, p); err != nil {
				t.Fatalf("SaveParticipant failed: %v", err)
			}
		}

		event := &models.Event{
			Description:  "Conference",
			StartDate:    date("2024-03-10"),
			EndDate:      date("2024-03-12"),
			Participants: []string{alice.ID, bob.ID},
		}
		if err := store.SaveEvent(ctx, event); err != nil {
			t.Fatalf("SaveEvent failed: %v", err)
		}

		got, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if len(got.Participants) != 2 {
			t.Errorf("Participants count mismatch: got %d, want 2", len(got.Participants))
		}
		if !got.StartDate.Equal(event.StartDate) || !got.EndDate.Equal(event.EndDate) {
			t.Errorf("Dates mismatch: got %v..%v", got.StartDate, got.EndDate)
		}

		for _, p := range []*models.Participant{alice, bob} {
			stored, err := store.GetParticipant(ctx, p.ID)
			if err != nil {
				t.Fatalf("GetParticipant failed: %v", err)
			}
			if !stored.HasEvent(event.ID) {
				t.Errorf("Participant %s missing event %s", p.ID, event.ID)
			}
		}
	})

	t.Run("SaveEvent twice keeps a single link", func(t *testing.T) {
		p := &models.Participant{Surname: "Twice", GivenName: "Tom"}
		if err := store.SaveParticipant(ctx, p); err != nil {
			t.Fatalf("SaveParticipant failed: %v", err)
		}
		event := &models.Event{Description: "Repeat", Participants: []string{p.ID}}
		for i := 0; i < 2; i++ {
			if err := store.SaveEvent(ctx, event); err != nil {
				t.Fatalf("SaveEvent #%d failed: %v", i+1, err)
			}
		}

		got, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if len(got.Participants) != 1 {
			t.Errorf("Expected 1 participant link, got %d", len(got.Participants))
		}
	})

	t.Run("SaveEvent rejects duplicate description", func(t *testing.T) {
		first := &models.Event{Description: "Unique Gala"}
		if err := store.SaveEvent(ctx, first); err != nil {
			t.Fatalf("SaveEvent failed: %v", err)
		}

		second := &models.Event{Description: "Unique Gala"}
		err := store.SaveEvent(ctx, second)
		if !errors.Is(err, storage.ErrDuplicateDescription) {
			t.Errorf("Expected ErrDuplicateDescription, got %v", err)
		}
	})

	t.Run("SaveEvent does not overwrite cost", func(t *testing.T) {
		event := &models.Event{Description: "Costed"}
		if err := store.SaveEvent(ctx, event); err != nil {
			t.Fatalf("SaveEvent failed: %v", err)
		}
		if err := store.UpdateEventCost(ctx, event.ID, 42.5); err != nil {
			t.Fatalf("UpdateEventCost failed: %v", err)
		}

		event.Cost = 0
		event.EndDate = date("2024-12-31")
		if err := store.SaveEvent(ctx, event); err != nil {
			t.Fatalf("SaveEvent failed: %v", err)
		}

		got, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if got.Cost != 42.5 {
			t.Errorf("Cost mismatch: got %f, want 42.5", got.Cost)
		}
		if !got.EndDate.Equal(date("2024-12-31")) {
			t.Errorf("EndDate not updated: got %v", got.EndDate)
		}
	})

	t.Run("UpdateEventCost returns ErrNotFound", func(t *testing.T) {
		err := store.UpdateEventCost(ctx, "nonexistent-id", 1)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetEventByDescription loads logistics", func(t *testing.T) {
		event := &models.Event{Description: "Workshop"}
		if err := store.SaveEvent(ctx, event); err != nil {
			t.Fatalf("SaveEvent failed: %v", err)
		}

		items := []*models.Logistics{
			{EventID: event.ID, Description: "Projector", Reserved: true, UnitPrice: 50, Quantity: 2},
			{EventID: event.ID, Description: "Chairs", Reserved: false, UnitPrice: 5, Quantity: 40},
		}
		for _, item := range items {
			if err := store.SaveLogistics(ctx, item); err != nil {
				t.Fatalf("SaveLogistics failed: %v", err)
			}
			if item.ID == "" {
				t.Error("Expected logistics ID to be generated")
			}
		}

		got, err := store.GetEventByDescription(ctx, "Workshop")
		if err != nil {
			t.Fatalf("GetEventByDescription failed: %v", err)
		}
		if got.ID != event.ID {
			t.Errorf("ID mismatch: got %s, want %s", got.ID, event.ID)
		}
		if len(got.Logistics) != 2 {
			t.Fatalf("Logistics count mismatch: got %d, want 2", len(got.Logistics))
		}

		reserved := 0
		for _, l := range got.Logistics {
			if l.EventID != event.ID {
				t.Errorf("Logistics %s has EventID %s", l.ID, l.EventID)
			}
			if l.Reserved {
				reserved++
			}
		}
		if reserved != 1 {
			t.Errorf("Expected 1 reserved item, got %d", reserved)
		}
	})

	t.Run("GetEventByDescription returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetEventByDescription(ctx, "No Such Event")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestListEventsByStartDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, e := range []*models.Event{
		{Description: "Before", StartDate: date("2023-12-31")},
		{Description: "First day", StartDate: date("2024-01-01")},
		{Description: "Middle", StartDate: date("2024-01-15")},
		{Description: "Last day", StartDate: date("2024-01-31")},
		{Description: "After", StartDate: date("2024-02-01")},
	} {
		if err := store.SaveEvent(ctx, e); err != nil {
			t.Fatalf("SaveEvent failed: %v", err)
		}
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{
			name:  "inclusive bounds",
			start: "2024-01-01",
			end:   "2024-01-31",
			want:  []string{"First day", "Middle", "Last day"},
		},
		{
			name:  "single day",
			start: "2024-01-15",
			end:   "2024-01-15",
			want:  []string{"Middle"},
		},
		{
			name:  "inverted range is empty",
			start: "2024-01-31",
			end:   "2024-01-01",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := store.ListEventsByStartDate(ctx, date(tt.start), date(tt.end))
			if err != nil {
				t.Fatalf("ListEventsByStartDate failed: %v", err)
			}
			if len(events) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(events), len(tt.want))
			}
			for i, e := range events {
				if e.Description != tt.want[i] {
					t.Errorf("event %d: got %q, want %q", i, e.Description, tt.want[i])
				}
			}
		})
	}
}

func TestListEventsByParticipant(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	organizer := &models.Participant{Surname: "Tounsi", GivenName: "Ahmed", Role: models.RoleOrganizer}
	sameNameGuest := &models.Participant{Surname: "Tounsi", GivenName: "Ahmed", Role: models.RoleGuest}
	other := &models.Participant{Surname: "Other", GivenName: "Olga", Role: models.RoleOrganizer}
	for _, p := range []*models.Participant{organizer, sameNameGuest, other} {
		if err := store.SaveParticipant(ctx, p); err != nil {
			t.Fatalf("SaveParticipant failed: %v", err)
		}
	}

	events := []*models.Event{
		{Description: "Organized", StartDate: date("2024-05-01"), Participants: []string{organizer.ID, other.ID}},
		{Description: "Attended", StartDate: date("2024-05-02"), Participants: []string{sameNameGuest.ID}},
		{Description: "Unrelated", StartDate: date("2024-05-03"), Participants: []string{other.ID}},
	}
	for _, e := range events {
		if err := store.SaveEvent(ctx, e); err != nil {
			t.Fatalf("SaveEvent failed: %v", err)
		}
	}

	got, err := store.ListEventsByParticipant(ctx, storage.ParticipantFilter{
		Surname:   "Tounsi",
		GivenName: "Ahmed",
		Role:      models.RoleOrganizer,
	})
	if err != nil {
		t.Fatalf("ListEventsByParticipant failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].Description != "Organized" {
		t.Errorf("got %q, want %q", got[0].Description, "Organized")
	}
	if len(got[0].Participants) != 2 {
		t.Errorf("expected both participants hydrated, got %d", len(got[0].Participants))
	}
}
