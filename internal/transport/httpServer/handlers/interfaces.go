package handlers

import (
	"context"

	"campusEvents/internal/assistant"
	"campusEvents/internal/halls"
	"campusEvents/internal/models/domain"
	"campusEvents/internal/services"

	"github.com/google/uuid"
)

// ProfileService — профили и вход администратора.
type ProfileService interface {
	CreateProfile(ctx context.Context, actor uuid.UUID, in services.ProfileInput) (domain.Profile, error)
	UpdateProfile(ctx context.Context, actor uuid.UUID, patch services.ProfilePatch) (domain.Profile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
}

// ProposalService — подача и модерация предложений.
type ProposalService interface {
	Submit(ctx context.Context, actor uuid.UUID, in domain.ProposalInput) (domain.Proposal, error)
	UpdateStatus(ctx context.Context, actor, proposalID uuid.UUID, status domain.ProposalStatus, comments string) (domain.Proposal, error)
	Retrigger(ctx context.Context, actor, proposalID uuid.UUID) error
	MyProposals(ctx context.Context, actor uuid.UUID) ([]domain.Proposal, error)
	AllProposals(ctx context.Context, actor uuid.UUID, status domain.ProposalStatus) ([]domain.ProposalWithOrganizer, error)
	GetProposal(ctx context.Context, actor, proposalID uuid.UUID) (domain.ProposalWithOrganizer, error)
}

// EventService — события и их выборки.
type EventService interface {
	Create(ctx context.Context, actor uuid.UUID, in services.EventInput) (domain.Event, error)
	Update(ctx context.Context, actor, eventID uuid.UUID, patch services.EventPatch) (domain.Event, error)
	Publish(ctx context.Context, actor, eventID uuid.UUID) (domain.Event, error)
	Delete(ctx context.Context, actor, eventID uuid.UUID) error
	Get(ctx context.Context, eventID uuid.UUID) (domain.Event, error)
	Details(ctx context.Context, eventID uuid.UUID) (domain.EventWithOrganizer, error)
	List(ctx context.Context, status domain.EventStatus, limit int) ([]domain.Event, error)
	Published(ctx context.Context) ([]domain.Event, error)
	Mine(ctx context.Context, actor uuid.UUID) ([]domain.Event, error)
	ByCategory(ctx context.Context, category string) ([]domain.Event, error)
	Upcoming(ctx context.Context) ([]domain.Event, error)
	Past(ctx context.Context) ([]domain.Event, error)
	Search(ctx context.Context, term string) ([]domain.Event, error)
}

// RegistrationService — регистрация на события.
type RegistrationService interface {
	Register(ctx context.Context, actor, eventID uuid.UUID) (domain.Registration, error)
	Cancel(ctx context.Context, actor, eventID uuid.UUID) error
	MyRegistrations(ctx context.Context, actor uuid.UUID) ([]domain.RegistrationWithEvent, error)
}

// SessionService — программа событий.
type SessionService interface {
	Create(ctx context.Context, actor uuid.UUID, in services.SessionInput) (domain.Session, error)
	Update(ctx context.Context, actor, sessionID uuid.UUID, patch services.SessionPatch) (domain.Session, error)
	Delete(ctx context.Context, actor, sessionID uuid.UUID) error
	ByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Session, error)
}

// FeedbackService — отзывы и отчёты.
type FeedbackService interface {
	Submit(ctx context.Context, actor uuid.UUID, in services.FeedbackInput) (domain.Feedback, error)
	EventFeedback(ctx context.Context, actor, eventID uuid.UUID) (domain.EventFeedback, error)
	HasSubmitted(ctx context.Context, actor, eventID uuid.UUID) (bool, error)
	MyFeedback(ctx context.Context, actor uuid.UUID) ([]domain.FeedbackWithEvent, error)
	GenerateSummary(ctx context.Context, actor, eventID uuid.UUID) (domain.FeedbackSummary, error)
	LatestSummary(ctx context.Context, actor, eventID uuid.UUID) (domain.FeedbackSummary, error)
	GenerateSeminarSummary(ctx context.Context, actor, eventID uuid.UUID) (domain.SeminarSummary, error)
	SeminarSummary(ctx context.Context, eventID uuid.UUID) (domain.SeminarSummary, error)
	PublishSeminarSummary(ctx context.Context, actor, summaryID uuid.UUID) error
	PublishedSeminarSummaries(ctx context.Context) ([]domain.SeminarSummaryWithEvent, error)
}

// RecommendationService — персональные рекомендации.
type RecommendationService interface {
	Recommend(ctx context.Context, actor uuid.UUID) (assistant.RecommendationsResult, error)
}

// ContentGenerator пишет AI-тексты по запросу.
type ContentGenerator interface {
	EventDescription(ctx context.Context, in assistant.EventDescriptionInput) domain.GeneratedContent
	ProposalDescription(ctx context.Context, in assistant.ProposalDescriptionInput) domain.GeneratedContent
	SocialPost(ctx context.Context, in assistant.SocialPostInput) domain.GeneratedContent
	SessionSummary(ctx context.Context, in assistant.SessionSummaryInput) domain.GeneratedContent
	AnswerFAQ(ctx context.Context, in assistant.FAQInput) domain.GeneratedContent
	ProposalTags(ctx context.Context, in assistant.TagsInput) assistant.TagsResult
}

// HallSelector подбирает зал под требования.
type HallSelector interface {
	Select(ctx context.Context, req halls.Requirements) halls.Result
}
