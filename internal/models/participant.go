package models

// Role tags what a participant does at the events they attend.
// Unknown tags are accepted and stored as-is.
type Role string

const (
	RoleOrganizer Role = "ORGANIZER"
	RoleGuest     Role = "GUEST"
	RoleSpeaker   Role = "SPEAKER"
	RoleStaff     Role = "STAFF"
)

// Participant represents a person registered with the office.
type Participant struct {
	// ID is the unique identifier (UUID format), assigned by the store.
	ID string

	// Surname is the family name. Empty values are accepted.
	Surname string

	// GivenName is the first name. Empty values are accepted.
	GivenName string

	// Role is the participant's role tag.
	Role Role

	// Events holds the IDs of the events this participant is associated with.
	// Read-only: populated from the association index, ignored on save.
	Events []string
}

// HasEvent reports whether the participant is associated with eventID.
func (p *Participant) HasEvent(eventID string) bool {
	for _, id := range p.Events {
		if id == eventID {
			return true
		}
	}
	return false
}
