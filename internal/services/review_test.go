package services

import (
	"context"
	"errors"
	"testing"

	"clubevents/internal/domain"
)

func newReviewFixture() (*mockEventRepository, *mockUserRepository, domain.ReviewService) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{
		"event-1": {
			ID:    "event-1",
			Title: "Career Fair",
			Attendees: []domain.Attendee{
				{UserID: "student-1", Attended: true},
				{UserID: "student-2", Attended: false},
			},
			Reviews: []domain.Review{},
		},
	}}
	userRepo := &mockUserRepository{users: map[string]*domain.User{
		"student-1": {ID: "student-1", Name: "Ana"},
	}}
	return eventRepo, userRepo, NewReviewService(eventRepo, userRepo)
}

func TestSubmitReview(t *testing.T) {
	t.Run("confirmed attendee submits once", func(t *testing.T) {
		_, _, svc := newReviewFixture()
		reviews, err := svc.Submit(context.Background(), "student-1", "event-1", 5, "great talks")
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if len(reviews) != 1 {
			t.Fatalf("reviews = %d, want 1", len(reviews))
		}
		if reviews[0].UserID != "student-1" || reviews[0].Rating != 5 {
			t.Errorf("review = %+v", reviews[0])
		}
	})

	t.Run("second review is rejected", func(t *testing.T) {
		_, _, svc := newReviewFixture()
		if _, err := svc.Submit(context.Background(), "student-1", "event-1", 5, "great"); err != nil {
			t.Fatalf("first Submit() error = %v", err)
		}
		_, err := svc.Submit(context.Background(), "student-1", "event-1", 3, "on reflection")
		if !errors.Is(err, domain.ErrDuplicateReview) {
			t.Fatalf("second Submit() error = %v, want ErrDuplicateReview", err)
		}
	})

	t.Run("registered but unconfirmed attendance", func(t *testing.T) {
		_, _, svc := newReviewFixture()
		_, err := svc.Submit(context.Background(), "student-2", "event-1", 4, "")
		if !errors.Is(err, domain.ErrNotAttended) {
			t.Fatalf("Submit() error = %v, want ErrNotAttended", err)
		}
	})

	t.Run("never registered", func(t *testing.T) {
		_, _, svc := newReviewFixture()
		_, err := svc.Submit(context.Background(), "student-9", "event-1", 4, "")
		if !errors.Is(err, domain.ErrNotAttended) {
			t.Fatalf("Submit() error = %v, want ErrNotAttended", err)
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, _, svc := newReviewFixture()
		for _, rating := range []int{0, 6, -1} {
			if _, err := svc.Submit(context.Background(), "student-1", "event-1", rating, ""); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("Submit(rating=%d) error = %v, want ErrInvalidInput", rating, err)
			}
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		_, _, svc := newReviewFixture()
		_, err := svc.Submit(context.Background(), "student-1", "no-such-event", 4, "")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Submit() error = %v, want ErrNotFound", err)
		}
	})
}

func TestListReviews(t *testing.T) {
	t.Run("attaches author names, blank for deleted accounts", func(t *testing.T) {
		eventRepo, _, svc := newReviewFixture()
		eventRepo.events["event-1"].Reviews = []domain.Review{
			{UserID: "student-1", Rating: 5, Comment: "great"},
			{UserID: "student-gone", Rating: 2, Comment: "meh"},
		}
		reviews, err := svc.ListByEventID(context.Background(), "event-1")
		if err != nil {
			t.Fatalf("ListByEventID() error = %v", err)
		}
		if len(reviews) != 2 {
			t.Fatalf("reviews = %d, want 2", len(reviews))
		}
		if reviews[0].AuthorName != "Ana" {
			t.Errorf("AuthorName = %q, want Ana", reviews[0].AuthorName)
		}
		if reviews[1].AuthorName != "" {
			t.Errorf("deleted reviewer AuthorName = %q, want empty", reviews[1].AuthorName)
		}
	})

	t.Run("no reviews yields an empty slice", func(t *testing.T) {
		_, _, svc := newReviewFixture()
		reviews, err := svc.ListByEventID(context.Background(), "event-1")
		if err != nil {
			t.Fatalf("ListByEventID() error = %v", err)
		}
		if reviews == nil || len(reviews) != 0 {
			t.Errorf("reviews = %v, want empty non-nil slice", reviews)
		}
	})
}
