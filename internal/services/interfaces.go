package services

import (
	"context"
	"time"

	"campusEvents/internal/assistant"
	"campusEvents/internal/models/domain"
	"campusEvents/internal/orchestrator"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	UpsertProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

type ProposalRepository interface {
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	CreateProposal(ctx context.Context, proposal domain.Proposal) (domain.Proposal, error)
	FindProposalByID(ctx context.Context, id uuid.UUID) (domain.Proposal, error)
	FindProposalWithOrganizer(ctx context.Context, id uuid.UUID) (domain.ProposalWithOrganizer, error)
	FindProposalsByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]domain.Proposal, error)
	ListProposalsWithOrganizer(ctx context.Context, status domain.ProposalStatus) ([]domain.ProposalWithOrganizer, error)
	DecideProposal(ctx context.Context, proposal domain.Proposal) error
	ResetWorkflow(ctx context.Context, id uuid.UUID, at time.Time) error
}

type EventRepository interface {
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	FindEventByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	ListEvents(ctx context.Context, status domain.EventStatus, limit int) ([]domain.Event, error)
	FindEventsByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]domain.Event, error)
	FindEventsByCategory(ctx context.Context, category string) ([]domain.Event, error)
	FindUpcomingEvents(ctx context.Context, now time.Time, limit int) ([]domain.Event, error)
	FindPastEvents(ctx context.Context, now time.Time) ([]domain.Event, error)
	SearchEvents(ctx context.Context, term string) ([]domain.Event, error)
}

type RegistrationRepository interface {
	FindEventByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	FindEventsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Event, error)
	CreateRegistration(ctx context.Context, reg domain.Registration) (domain.Registration, error)
	FindRegistration(ctx context.Context, eventID, userID uuid.UUID) (domain.Registration, error)
	UpdateRegistrationStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus) error
	FindRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Registration, error)
}

type SessionRepository interface {
	FindEventByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	CreateSession(ctx context.Context, session domain.Session) (domain.Session, error)
	FindSessionByID(ctx context.Context, id uuid.UUID) (domain.Session, error)
	FindSessionsByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Session, error)
	UpdateSession(ctx context.Context, session domain.Session) (domain.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type FeedbackRepository interface {
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	FindEventByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	FindEventsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Event, error)
	FindRegistration(ctx context.Context, eventID, userID uuid.UUID) (domain.Registration, error)
	CountRegistered(ctx context.Context, eventID uuid.UUID) (int, error)

	CreateFeedback(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	FeedbackExists(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	FindFeedbackByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Feedback, error)
	FindFeedbackByUser(ctx context.Context, userID uuid.UUID) ([]domain.Feedback, error)
	CreateFeedbackSummary(ctx context.Context, summary domain.FeedbackSummary) (domain.FeedbackSummary, error)
	FindLatestFeedbackSummary(ctx context.Context, eventID uuid.UUID) (domain.FeedbackSummary, error)

	CreateSeminarSummary(ctx context.Context, summary domain.SeminarSummary) (domain.SeminarSummary, error)
	FindSeminarSummaryByID(ctx context.Context, id uuid.UUID) (domain.SeminarSummary, error)
	FindLatestSeminarSummary(ctx context.Context, eventID uuid.UUID) (domain.SeminarSummary, error)
	PublishSeminarSummary(ctx context.Context, id uuid.UUID) error
	FindPublishedSeminarSummaries(ctx context.Context, limit int) ([]domain.SeminarSummary, error)
}

type RecommendationRepository interface {
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	FindRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Registration, error)
	FindEventsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Event, error)
	FindUpcomingEvents(ctx context.Context, now time.Time, limit int) ([]domain.Event, error)
}

// JobQueue ставит фоновые шаги пайплайна для предложения.
type JobQueue interface {
	AddJob(kind orchestrator.JobKind, proposalID uuid.UUID) (chan struct{}, error)
}

type FeedbackAnalyzer interface {
	AnalyzeFeedback(ctx context.Context, event domain.Event, feedback []domain.Feedback, averageRating float64) domain.FeedbackAnalysis
	SeminarReport(ctx context.Context, event domain.Event, t domain.VenueTelemetry, energyEfficiency int) (string, error)
}

type Recommender interface {
	Recommendations(ctx context.Context, in assistant.RecommendationInput) assistant.RecommendationsResult
}

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}
