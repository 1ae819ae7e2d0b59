package services

import (
	"context"
	"errors"
	"fmt"

	"clubevents/internal/domain"
)

type reviewService struct {
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
}

func NewReviewService(eventRepo domain.EventRepository, userRepo domain.UserRepository) domain.ReviewService {
	return &reviewService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

func (s *reviewService) Submit(ctx context.Context, callerID, eventID string, rating int, comment string) ([]domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	// Early rejections; AppendReview re-checks both under the row lock.
	attendee := event.FindAttendee(callerID)
	if attendee == nil || !attendee.Attended {
		return nil, domain.ErrNotAttended
	}
	if event.HasReviewBy(callerID) {
		return nil, domain.ErrDuplicateReview
	}

	review := domain.Review{UserID: callerID, Rating: rating, Comment: comment}
	updated, err := s.eventRepo.AppendReview(ctx, eventID, review)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrNotAttended) ||
			errors.Is(err, domain.ErrDuplicateReview) {
			return nil, err
		}
		return nil, fmt.Errorf("append review: %w", err)
	}
	return updated.Reviews, nil
}

func (s *reviewService) ListByEventID(ctx context.Context, eventID string) ([]*domain.ReviewWithAuthor, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Resolve author names one by one; review lists are small.
	names := make(map[string]string)
	result := make([]*domain.ReviewWithAuthor, 0, len(event.Reviews))
	for _, rev := range event.Reviews {
		name, ok := names[rev.UserID]
		if !ok {
			user, err := s.userRepo.GetByID(ctx, rev.UserID)
			switch {
			case err == nil:
				name = user.Name
			case errors.Is(err, domain.ErrUserNotFound):
				// Reviewer account deleted; keep the review with a blank name.
				name = ""
			default:
				return nil, fmt.Errorf("get reviewer: %w", err)
			}
			names[rev.UserID] = name
		}
		result = append(result, &domain.ReviewWithAuthor{Review: rev, AuthorName: name})
	}
	return result, nil
}
