package domain

import "context"

// ReviewWithAuthor bundles a review with the reviewer's display name.
type ReviewWithAuthor struct {
	Review
	AuthorName string `json:"author_name"`
}

// ReviewService defines attendance-gated review operations.
type ReviewService interface {
	// Submit appends the caller's review and returns the event's full review list.
	Submit(ctx context.Context, callerID, eventID string, rating int, comment string) ([]Review, error)
	ListByEventID(ctx context.Context, eventID string) ([]*ReviewWithAuthor, error)
}
