package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")

	// Registration rule violations.
	ErrRegistrationNotRequired = errors.New("registration is not required for this event")
	ErrDeadlinePassed          = errors.New("registration deadline has passed")
	ErrCapacityExceeded        = errors.New("event is at full capacity")
	ErrDuplicateRegistration   = errors.New("already registered for this event")
	ErrEventStarted            = errors.New("event has already started")

	// Review rule violations.
	ErrNotAttended     = errors.New("must attend the event before reviewing")
	ErrDuplicateReview = errors.New("review already submitted for this event")
)
