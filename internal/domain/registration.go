package domain

import (
	"context"
	"time"
)

// Registration is a denormalized audit record of a user's act of registering
// for an event. The table is append-only: unregistering removes the attendee
// entry from the event but never deletes audit rows, so registration history
// survives and the row count may exceed the live attendee count.
// swagger:model Registration
type Registration struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	UserID           string    `json:"user_id"`
	StudentName      string    `json:"student_name"`
	OrganizationID   string    `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	RegisteredAt     time.Time `json:"registered_at"`
}

// NewRegistration returns a Registration snapshot for the given event and user.
// ID is set by the repository on create.
func NewRegistration(event *Event, user *User, orgName string, registeredAt time.Time) *Registration {
	return &Registration{
		EventID:          event.ID,
		EventTitle:       event.Title,
		UserID:           user.ID,
		StudentName:      user.Name,
		OrganizationID:   event.OrganizationID,
		OrganizationName: orgName,
		RegisteredAt:     registeredAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
// Register appends the attendee to the event and inserts the audit row in one
// transaction, re-checking capacity and duplicate membership under a row lock.
type RegistrationRepository interface {
	Register(ctx context.Context, eventID string, attendee Attendee, reg *Registration) error
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	CountByEventAndUser(ctx context.Context, eventID, userID string) (int, error)
}

// RegistrationService gatekeeps joining and leaving an event and keeps the
// event's attendee list and the registration audit log consistent.
type RegistrationService interface {
	Register(ctx context.Context, caller *Identity, eventID string) (*Registration, error)
	Unregister(ctx context.Context, caller *Identity, eventID string) error
	MarkAttendance(ctx context.Context, caller *Identity, eventID, userID string, attended bool) (*Event, error)
	RemoveAttendee(ctx context.Context, caller *Identity, eventID, userID string) (*Event, error)
	ListRegistrations(ctx context.Context, caller *Identity, eventID string) ([]*Registration, error)
	ListMyRegistrations(ctx context.Context, caller *Identity) ([]*Registration, error)
}
