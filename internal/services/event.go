package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubevents/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	clubRepo       domain.ClubRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, clubRepo domain.ClubRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		clubRepo:       clubRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, caller *domain.Identity, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.ClubID == "" {
		return fmt.Errorf("%w: club is required", domain.ErrInvalidInput)
	}
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	club, err := s.clubRepo.GetByID(ctx, event.ClubID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get club: %w", err)
	}
	if !domain.CanCreateEvent(caller, club) {
		return domain.ErrForbidden
	}

	event.OrganizationID = club.OrganizationID
	if event.Status == "" {
		event.Status = domain.EventStatusUpcoming
	}
	if event.Attendees == nil {
		event.Attendees = []domain.Attendee{}
	}
	if event.Reviews == nil {
		event.Reviews = []domain.Review{}
	}
	if event.Organizers == nil {
		event.Organizers = []string{}
	}
	if event.EndDate.Before(event.StartDate) {
		return fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
	}
	if event.MaxAttendees != nil && *event.MaxAttendees < 1 {
		return fmt.Errorf("%w: max attendees must be positive", domain.ErrInvalidInput)
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) Update(ctx context.Context, caller *domain.Identity, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	club, err := s.clubRepo.GetByID(ctx, event.ClubID)
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}
	if !domain.CanManageEvent(caller, club) {
		return nil, domain.ErrForbidden
	}

	applyPatch(event, patch)
	if event.EndDate.Before(event.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
	}
	if event.MaxAttendees != nil && *event.MaxAttendees < len(event.Attendees) {
		return nil, fmt.Errorf("%w: max attendees below current attendee count", domain.ErrInvalidInput)
	}
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func applyPatch(event *domain.Event, patch domain.EventPatch) {
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.StartDate != nil {
		event.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		event.EndDate = *patch.EndDate
	}
	if patch.StartTime != nil {
		event.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		event.EndTime = *patch.EndTime
	}
	if patch.Venue != nil {
		event.Venue = *patch.Venue
	}
	if patch.MaxAttendees != nil {
		event.MaxAttendees = patch.MaxAttendees
	}
	if patch.RegistrationRequired != nil {
		event.RegistrationRequired = *patch.RegistrationRequired
	}
	if patch.RegistrationDeadline != nil {
		event.RegistrationDeadline = patch.RegistrationDeadline
	}
	if patch.Fee != nil {
		event.Fee = *patch.Fee
	}
	if patch.Public != nil {
		event.Public = *patch.Public
	}
	if patch.Status != nil {
		event.Status = *patch.Status
	}
}

func (s *eventService) Delete(ctx context.Context, caller *domain.Identity, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	club, err := s.clubRepo.GetByID(ctx, event.ClubID)
	if err != nil {
		return fmt.Errorf("get club: %w", err)
	}
	if !domain.CanDeleteEvent(caller, club, event) {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
