package domain

// Модели чтения, объединяющие запись с её событием или профилем.

type EventWithOrganizer struct {
	Event
	Organizer *Profile
}

type RegistrationWithEvent struct {
	Registration
	Event Event
}

type FeedbackWithEvent struct {
	Feedback
	Event *Event
}

// EventFeedback — все отзывы события для организатора.
type EventFeedback struct {
	Feedback []Feedback
	Stats    FeedbackStats
}

type SeminarSummaryWithEvent struct {
	SeminarSummary
	Event *Event
}
