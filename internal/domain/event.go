package domain

import (
	"context"
	"time"
)

// Event lifecycle statuses.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Attendee is a user's membership entry embedded in an event.
// swagger:model Attendee
type Attendee struct {
	UserID   string `json:"user_id"`
	Attended bool   `json:"attended"`
}

// Review is a rating and comment embedded in an event. At most one per user,
// and only from attendees whose attendance was confirmed.
// swagger:model Review
type Review struct {
	UserID  string `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Event is a scheduled club activity, open to registration under configurable
// rules. Attendees, reviews, and organizers are embedded so the event row is
// a single document the store can mutate atomically.
// swagger:model Event
type Event struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	ClubID               string     `json:"club_id"`
	OrganizationID       string     `json:"organization_id"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	StartTime            string     `json:"start_time"`
	EndTime              string     `json:"end_time"`
	Venue                string     `json:"venue"`
	MaxAttendees         *int       `json:"max_attendees"`
	RegistrationRequired bool       `json:"registration_required"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Fee                  int        `json:"fee"`
	Attendees            []Attendee `json:"attendees"`
	Reviews              []Review   `json:"reviews"`
	Organizers           []string   `json:"organizers"`
	Public               bool       `json:"public"`
	Status               string     `json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// FindAttendee returns the attendee entry for the user, or nil.
func (e *Event) FindAttendee(userID string) *Attendee {
	for i := range e.Attendees {
		if e.Attendees[i].UserID == userID {
			return &e.Attendees[i]
		}
	}
	return nil
}

// HasReviewBy reports whether the user already submitted a review.
func (e *Event) HasReviewBy(userID string) bool {
	for _, r := range e.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	ClubID         string
	OrganizationID string
	Status         string
	PublicOnly     bool
}

// EventPatch holds optional field updates for an event. Nil means unchanged.
type EventPatch struct {
	Title                *string
	Description          *string
	StartDate            *time.Time
	EndDate              *time.Time
	StartTime            *string
	EndTime              *string
	Venue                *string
	MaxAttendees         *int
	RegistrationRequired *bool
	RegistrationDeadline *time.Time
	Fee                  *int
	Public               *bool
	Status               *string
}

// EventRepository defines the interface for event storage. The attendee and
// review mutators lock the event row so the check and the write are a single
// serialization point per event.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	RemoveAttendee(ctx context.Context, eventID, userID string) (*Event, error)
	SetAttendance(ctx context.Context, eventID, userID string, attended bool) (*Event, error)
	AppendReview(ctx context.Context, eventID string, review Review) (*Event, error)
}

// EventService defines event directory operations (CRUD plus listing).
type EventService interface {
	Create(ctx context.Context, caller *Identity, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, caller *Identity, eventID string, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, caller *Identity, eventID string) error
}
