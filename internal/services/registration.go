package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubevents/internal/domain"
)

type registrationService struct {
	eventRepo    domain.EventRepository
	regRepo      domain.RegistrationRepository
	clubRepo     domain.ClubRepository
	orgRepo      domain.OrganizationRepository
	userRepo     domain.UserRepository
	emailService domain.EmailService
	logger       *slog.Logger
	now          func() time.Time
}

// NewRegistrationService creates a RegistrationService with the given
// repositories. The confirmation email service may be nil.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	regRepo domain.RegistrationRepository,
	clubRepo domain.ClubRepository,
	orgRepo domain.OrganizationRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:    eventRepo,
		regRepo:      regRepo,
		clubRepo:     clubRepo,
		orgRepo:      orgRepo,
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, caller *domain.Identity, eventID string) (*domain.Registration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if !event.RegistrationRequired {
		return nil, domain.ErrRegistrationNotRequired
	}
	if event.RegistrationDeadline != nil && s.now().After(*event.RegistrationDeadline) {
		return nil, domain.ErrDeadlinePassed
	}
	// Early rejections on the copy we already read. The repository re-checks
	// both under the event row lock, which is the authoritative check.
	if event.MaxAttendees != nil && len(event.Attendees) >= *event.MaxAttendees {
		return nil, domain.ErrCapacityExceeded
	}
	if event.FindAttendee(caller.UserID) != nil {
		return nil, domain.ErrDuplicateRegistration
	}

	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	orgName := s.resolveOrganizationName(ctx, event, caller)
	reg := domain.NewRegistration(event, user, orgName, s.now())
	attendee := domain.Attendee{UserID: caller.UserID, Attended: false}
	if err := s.regRepo.Register(ctx, event.ID, attendee, reg); err != nil {
		if errors.Is(err, domain.ErrCapacityExceeded) ||
			errors.Is(err, domain.ErrDuplicateRegistration) ||
			errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.sendConfirmation(ctx, event, user)
	return reg, nil
}

// resolveOrganizationName resolves the display name snapshot for the audit
// row: the event's organization, then the caller's home organization, then a
// sentinel when neither can be found.
func (s *registrationService) resolveOrganizationName(ctx context.Context, event *domain.Event, caller *domain.Identity) string {
	if org, err := s.orgRepo.GetByID(ctx, event.OrganizationID); err == nil {
		return org.Name
	}
	if caller.OrganizationID != "" && caller.OrganizationID != event.OrganizationID {
		if org, err := s.orgRepo.GetByID(ctx, caller.OrganizationID); err == nil {
			return org.Name
		}
	}
	return domain.UnknownOrganizationName
}

// sendConfirmation is best-effort: the registration is already committed, so
// a mail failure is logged and not surfaced.
func (s *registrationService) sendConfirmation(ctx context.Context, event *domain.Event, user *domain.User) {
	if s.emailService == nil {
		return
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:       user.Email,
		StudentName: user.Name,
		EventTitle:  event.Title,
		EventDate:   event.StartDate.Format("Mon, 02 Jan 2006") + " " + event.StartTime,
		Venue:       event.Venue,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "registration confirmation email failed",
			"event_id", event.ID, "user_id", user.ID, "err", err)
	}
}

func (s *registrationService) Unregister(ctx context.Context, caller *domain.Identity, eventID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !s.now().Before(event.StartDate) {
		return domain.ErrEventStarted
	}
	// Removes the attendee entry only. Audit rows in the registrations table
	// record the act of registering and are never deleted.
	if _, err := s.eventRepo.RemoveAttendee(ctx, eventID, caller.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove attendee: %w", err)
	}
	return nil
}

// authorizeManage loads the event and its owning club and checks the caller
// may manage attendees (administrator or the club's president).
func (s *registrationService) authorizeManage(ctx context.Context, caller *domain.Identity, eventID string) (*domain.Event, error) {
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
	return event, nil
}

func (s *registrationService) MarkAttendance(ctx context.Context, caller *domain.Identity, eventID, userID string, attended bool) (*domain.Event, error) {
	if _, err := s.authorizeManage(ctx, caller, eventID); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.SetAttendance(ctx, eventID, userID, attended)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set attendance: %w", err)
	}
	return event, nil
}

func (s *registrationService) RemoveAttendee(ctx context.Context, caller *domain.Identity, eventID, userID string) (*domain.Event, error) {
	if _, err := s.authorizeManage(ctx, caller, eventID); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.RemoveAttendee(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("remove attendee: %w", err)
	}
	return event, nil
}

func (s *registrationService) ListMyRegistrations(ctx context.Context, caller *domain.Identity) ([]*domain.Registration, error) {
	regs, err := s.regRepo.ListByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func (s *registrationService) ListRegistrations(ctx context.Context, caller *domain.Identity, eventID string) ([]*domain.Registration, error) {
	if _, err := s.authorizeManage(ctx, caller, eventID); err != nil {
		return nil, err
	}
	regs, err := s.regRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}
