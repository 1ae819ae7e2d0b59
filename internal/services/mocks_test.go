package services

import (
	"context"
	"fmt"

	"clubevents/internal/domain"
)

// Map-backed fakes for the service tests. The event and registration fakes
// share an event map so that registering through the registration fake is
// visible to subsequent event reads, mirroring how the real repositories
// share one database.

type mockEventRepository struct {
	events map[string]*domain.Event

	err       error
	createErr error
	updateErr error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	if event.ID == "" {
		event.ID = fmt.Sprintf("event-%d", len(m.events)+1)
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		if filter.ClubID != "" && ev.ClubID != filter.ClubID {
			continue
		}
		if filter.Status != "" && ev.Status != filter.Status {
			continue
		}
		if filter.PublicOnly && !ev.Public {
			continue
		}
		out = append(out, ev)
	}
	return out, len(out), nil
}

func (m *mockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepository) RemoveAttendee(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for i, a := range ev.Attendees {
		if a.UserID == userID {
			ev.Attendees = append(ev.Attendees[:i], ev.Attendees[i+1:]...)
			return ev, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepository) SetAttendance(ctx context.Context, eventID, userID string, attended bool) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a := ev.FindAttendee(userID)
	if a == nil {
		return nil, domain.ErrNotFound
	}
	a.Attended = attended
	return ev, nil
}

func (m *mockEventRepository) AppendReview(ctx context.Context, eventID string, review domain.Review) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a := ev.FindAttendee(review.UserID)
	if a == nil || !a.Attended {
		return nil, domain.ErrNotAttended
	}
	if ev.HasReviewBy(review.UserID) {
		return nil, domain.ErrDuplicateReview
	}
	ev.Reviews = append(ev.Reviews, review)
	return ev, nil
}

type mockRegistrationRepository struct {
	eventRepo *mockEventRepository
	regs      []*domain.Registration
	err       error
}

// Register mimics the real repository: duplicate and capacity are re-checked
// against current event state, then the attendee append and the audit insert
// happen together.
func (m *mockRegistrationRepository) Register(ctx context.Context, eventID string, attendee domain.Attendee, reg *domain.Registration) error {
	if m.err != nil {
		return m.err
	}
	ev, ok := m.eventRepo.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	if ev.FindAttendee(attendee.UserID) != nil {
		return domain.ErrDuplicateRegistration
	}
	if ev.MaxAttendees != nil && len(ev.Attendees) >= *ev.MaxAttendees {
		return domain.ErrCapacityExceeded
	}
	ev.Attendees = append(ev.Attendees, attendee)
	reg.ID = fmt.Sprintf("reg-%d", len(m.regs)+1)
	m.regs = append(m.regs, reg)
	return nil
}

func (m *mockRegistrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Registration
	for _, r := range m.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Registration
	for _, r := range m.regs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepository) CountByEventAndUser(ctx context.Context, eventID, userID string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, r := range m.regs {
		if r.EventID == eventID && r.UserID == userID {
			n++
		}
	}
	return n, nil
}

type mockClubRepository struct {
	clubs map[string]*domain.Club
	err   error
}

func (m *mockClubRepository) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.clubs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

type mockOrganizationRepository struct {
	orgs map[string]*domain.Organization
	err  error
}

func (m *mockOrganizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.orgs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

type mockUserRepository struct {
	users        map[string]*domain.User
	usersByEmail map[string]*domain.User
	err          error
	createErr    error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.usersByEmail[user.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	if m.users == nil {
		m.users = make(map[string]*domain.User)
	}
	if m.usersByEmail == nil {
		m.usersByEmail = make(map[string]*domain.User)
	}
	m.users[user.ID] = user
	m.usersByEmail[user.Email] = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

type mockEmailService struct {
	sent []*domain.RegistrationConfirmationEmailData
	err  error
}

func (m *mockEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	m.sent = append(m.sent, data)
	return m.err
}
