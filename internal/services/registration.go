package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
)

// RegistrationService записывает участников на события.
type RegistrationService struct {
	logger *slog.Logger
	repo   RegistrationRepository
	now    func() time.Time
}

// NewRegistrationService создаёт новый экземпляр RegistrationService.
func NewRegistrationService(logger *slog.Logger, repo RegistrationRepository) *RegistrationService {
	return &RegistrationService{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
}

// Register бронирует место для вызывающего. Вместимость и уникальность
// атомарно проверяет репозиторий.
func (s *RegistrationService) Register(ctx context.Context, actor, eventID uuid.UUID) (domain.Registration, error) {
	op := "RegistrationService.Register()"
	log := s.logger.With(
		slog.String("op", op),
		slog.String("user", actor.String()),
		slog.String("event", eventID.String()),
	)

	if _, err := s.repo.FindEventByID(ctx, eventID); err != nil {
		return domain.Registration{}, fmt.Errorf("%s: %w", op, err)
	}

	reg, err := s.repo.CreateRegistration(ctx, domain.Registration{
		ID:           uuid.New(),
		EventID:      eventID,
		UserID:       actor,
		Status:       domain.RegistrationStatusRegistered,
		RegisteredAt: s.now(),
	})
	if err != nil {
		log.Info("registration refused", slog.String("reason", err.Error()))
		return domain.Registration{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("registered")
	return reg, nil
}

// Cancel отменяет регистрацию вызывающего.
func (s *RegistrationService) Cancel(ctx context.Context, actor, eventID uuid.UUID) error {
	op := "RegistrationService.Cancel()"

	reg, err := s.repo.FindRegistration(ctx, eventID, actor)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdateRegistrationStatus(ctx, reg.ID, domain.RegistrationStatusCancelled); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("registration cancelled",
		slog.String("op", op),
		slog.String("user", actor.String()),
		slog.String("event", eventID.String()),
	)
	return nil
}

// MyRegistrations пропускает регистрации на удалённые события.
func (s *RegistrationService) MyRegistrations(ctx context.Context, actor uuid.UUID) ([]domain.RegistrationWithEvent, error) {
	op := "RegistrationService.MyRegistrations()"

	regs, err := s.repo.FindRegistrationsByUser(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ids := uniqueEventIDs(regs, func(r domain.Registration) uuid.UUID { return r.EventID })
	events, err := s.repo.FindEventsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		event, ok := events[reg.EventID]
		if !ok {
			continue
		}
		result = append(result, domain.RegistrationWithEvent{Registration: reg, Event: event})
	}
	return result, nil
}
