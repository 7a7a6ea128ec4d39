package domain

import "errors"

var (
	ErrProposalNotFound     = errors.New("proposal not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrSummaryNotFound      = errors.New("summary not found")

	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("not authorized")

	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")

	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("must be registered for this event")
	ErrFeedbackExists    = errors.New("feedback already submitted")
	ErrProfileExists     = errors.New("profile already exists")
	ErrNoFeedback        = errors.New("no feedback available")
	ErrEventNotEnded     = errors.New("event has not ended yet")

	ErrAIUnavailable = errors.New("text generation is not configured")
)

// IsNotFound сообщает, относится ли err к ошибкам "не найдено".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProposalNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrRegistrationNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrSummaryNotFound)
}
