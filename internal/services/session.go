package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
)

// SessionService управляет программой событий.
type SessionService struct {
	logger *slog.Logger
	repo   SessionRepository
}

// NewSessionService создаёт новый экземпляр SessionService.
func NewSessionService(logger *slog.Logger, repo SessionRepository) *SessionService {
	return &SessionService{
		logger: logger,
		repo:   repo,
	}
}

// SessionInput — данные новой сессии.
type SessionInput struct {
	EventID      uuid.UUID
	Title        string
	Description  string
	SpeakerName  string
	SpeakerBio   string
	StartTime    time.Time
	EndTime      time.Time
	Location     string
	SessionType  domain.SessionType
	MaxAttendees *int
}

// SessionPatch обновляет только поля, отличные от nil.
type SessionPatch struct {
	Title       *string
	Description *string
	SpeakerName *string
	SpeakerBio  *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *string
	SessionType *domain.SessionType
	AISummary   *string
}

// validateSession проверяет обязательные поля, тип и время сессии.
func validateSession(s domain.Session) error {
	switch {
	case strings.TrimSpace(s.Title) == "":
		return fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	case strings.TrimSpace(s.SpeakerName) == "":
		return fmt.Errorf("speaker name is required: %w", domain.ErrInvalidInput)
	case !s.SessionType.Valid():
		return fmt.Errorf("unknown session type %q: %w", s.SessionType, domain.ErrInvalidInput)
	case !s.EndTime.After(s.StartTime):
		return fmt.Errorf("end time must be after start time: %w", domain.ErrInvalidInput)
	case s.MaxAttendees != nil && *s.MaxAttendees <= 0:
		return fmt.Errorf("max attendees must be positive: %w", domain.ErrInvalidInput)
	}
	return nil
}

// organizerOf проверяет, что вызывающий организует событие.
func (s *SessionService) organizerOf(ctx context.Context, actor, eventID uuid.UUID) error {
	event, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != actor {
		return fmt.Errorf("only the event organizer can manage sessions: %w", domain.ErrForbidden)
	}
	return nil
}

// Create добавляет сессию в программу события.
func (s *SessionService) Create(ctx context.Context, actor uuid.UUID, in SessionInput) (domain.Session, error) {
	op := "SessionService.Create()"

	if err := s.organizerOf(ctx, actor, in.EventID); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	session := domain.Session{
		ID:           uuid.New(),
		EventID:      in.EventID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		SpeakerName:  strings.TrimSpace(in.SpeakerName),
		SpeakerBio:   in.SpeakerBio,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Location:     in.Location,
		SessionType:  in.SessionType,
		MaxAttendees: in.MaxAttendees,
	}
	if err := validateSession(session); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("session created",
		slog.String("op", op),
		slog.String("event", in.EventID.String()),
		slog.String("session", created.ID.String()),
	)
	return created, nil
}

// Update применяет патч к сессии.
func (s *SessionService) Update(ctx context.Context, actor, sessionID uuid.UUID, patch SessionPatch) (domain.Session, error) {
	op := "SessionService.Update()"

	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.organizerOf(ctx, actor, session.EventID); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	if patch.Title != nil {
		session.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		session.Description = *patch.Description
	}
	if patch.SpeakerName != nil {
		session.SpeakerName = strings.TrimSpace(*patch.SpeakerName)
	}
	if patch.SpeakerBio != nil {
		session.SpeakerBio = *patch.SpeakerBio
	}
	if patch.StartTime != nil {
		session.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		session.EndTime = *patch.EndTime
	}
	if patch.Location != nil {
		session.Location = *patch.Location
	}
	if patch.SessionType != nil {
		session.SessionType = *patch.SessionType
	}
	if patch.AISummary != nil {
		session.AISummary = *patch.AISummary
	}
	if err := validateSession(session); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateSession(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// Delete удаляет сессию.
func (s *SessionService) Delete(ctx context.Context, actor, sessionID uuid.UUID) error {
	op := "SessionService.Delete()"

	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.organizerOf(ctx, actor, session.EventID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ByEvent возвращает программу, упорядоченную по времени начала.
func (s *SessionService) ByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Session, error) {
	op := "SessionService.ByEvent()"

	sessions, err := s.repo.FindSessionsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sessions, nil
}
