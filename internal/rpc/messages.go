package rpc

import (
	"fmt"
	"time"

	"github.com/mmynk/eventsdesk/internal/models"
)

// Participant is the wire form of models.Participant.
type Participant struct {
	ID        string   `json:"id,omitempty"`
	Surname   string   `json:"surname"`
	GivenName string   `json:"given_name"`
	Role      string   `json:"role,omitempty"`
	EventIDs  []string `json:"event_ids,omitempty"`
}

// ParticipantRef points at a registered participant inside an event.
type ParticipantRef struct {
	ID string `json:"id"`
}

// Event is the wire form of models.Event. Dates use the YYYY-MM-DD layout.
type Event struct {
	ID           string           `json:"id,omitempty"`
	Description  string           `json:"description"`
	StartDate    string           `json:"start_date,omitempty"`
	EndDate      string           `json:"end_date,omitempty"`
	Cost         float64          `json:"cost"`
	Participants []ParticipantRef `json:"participants,omitempty"`
	Logistics    []Logistics      `json:"logistics,omitempty"`
}

// Logistics is the wire form of models.Logistics.
type Logistics struct {
	ID          string  `json:"id,omitempty"`
	EventID     string  `json:"event_id,omitempty"`
	Description string  `json:"description"`
	Reserved    bool    `json:"reserved"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

type RegisterParticipantRequest struct {
	Participant *Participant `json:"participant"`
}

type RegisterParticipantResponse struct {
	Participant Participant `json:"participant"`
}

type AssociateEventToParticipantRequest struct {
	ParticipantID string `json:"participant_id"`
	Event         *Event `json:"event"`
}

type AssociateEventToParticipantsRequest struct {
	Event *Event `json:"event"`
}

// EventResponse is returned by every RPC that yields a single event.
type EventResponse struct {
	Event Event `json:"event"`
}

type AttachLogisticsRequest struct {
	EventDescription string     `json:"event_description"`
	Logistics        *Logistics `json:"logistics"`
}

type AttachLogisticsResponse struct {
	Logistics Logistics `json:"logistics"`
}

type ListReservedLogisticsRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ListReservedLogisticsResponse struct {
	Logistics []Logistics `json:"logistics"`
}

type GetEventRequest struct {
	EventID string `json:"event_id"`
}

type GetParticipantRequest struct {
	ParticipantID string `json:"participant_id"`
}

type GetParticipantResponse struct {
	Participant Participant `json:"participant"`
}

type RecomputeCostsRequest struct{}

type RecomputeCostsResponse struct {
	RunID   string `json:"run_id"`
	Matched int    `json:"matched"`
	Updated int    `json:"updated"`
	Failed  int    `json:"failed"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func participantToModel(p *Participant) *models.Participant {
	return &models.Participant{
		ID:        p.ID,
		Surname:   p.Surname,
		GivenName: p.GivenName,
		Role:      models.Role(p.Role),
	}
}

func participantFromModel(p *models.Participant) Participant {
	return Participant{
		ID:        p.ID,
		Surname:   p.Surname,
		GivenName: p.GivenName,
		Role:      string(p.Role),
		EventIDs:  p.Events,
	}
}

// eventToModel converts a wire event. Logistics are ignored: they are only
// attached through AttachLogistics.
func eventToModel(e *Event) (*models.Event, error) {
	start, err := parseDate("start_date", e.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", e.EndDate)
	if err != nil {
		return nil, err
	}

	var participants []string
	if e.Participants != nil {
		participants = make([]string, len(e.Participants))
		for i, p := range e.Participants {
			participants[i] = p.ID
		}
	}

	return &models.Event{
		ID:           e.ID,
		Description:  e.Description,
		StartDate:    start,
		EndDate:      end,
		Participants: participants,
	}, nil
}

func eventFromModel(e *models.Event) Event {
	out := Event{
		ID:          e.ID,
		Description: e.Description,
		StartDate:   formatDate(e.StartDate),
		EndDate:     formatDate(e.EndDate),
		Cost:        e.Cost,
	}
	for _, id := range e.Participants {
		out.Participants = append(out.Participants, ParticipantRef{ID: id})
	}
	for _, l := range e.Logistics {
		out.Logistics = append(out.Logistics, logisticsFromModel(l))
	}
	return out
}

func logisticsToModel(l *Logistics) *models.Logistics {
	return &models.Logistics{
		ID:          l.ID,
		Description: l.Description,
		Reserved:    l.Reserved,
		UnitPrice:   l.UnitPrice,
		Quantity:    l.Quantity,
	}
}

func logisticsFromModel(l models.Logistics) Logistics {
	return Logistics{
		ID:          l.ID,
		EventID:     l.EventID,
		Description: l.Description,
		Reserved:    l.Reserved,
		UnitPrice:   l.UnitPrice,
		Quantity:    l.Quantity,
	}
}

// parseDate parses a YYYY-MM-DD date. An empty string yields the zero time.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected YYYY-MM-DD, got %q", field, value)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}
