package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusEvents/internal/assistant"
	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
)

const recommendationCandidates = 50

// RecommendationService подбирает события под интересы пользователя.
type RecommendationService struct {
	logger      *slog.Logger
	repo        RecommendationRepository
	recommender Recommender
	now         func() time.Time
}

// NewRecommendationService создаёт новый экземпляр RecommendationService.
func NewRecommendationService(logger *slog.Logger, repo RecommendationRepository, recommender Recommender) *RecommendationService {
	return &RecommendationService{
		logger:      logger,
		repo:        repo,
		recommender: recommender,
		now:         time.Now,
	}
}

// Recommend ранжирует предстоящие опубликованные события, на которые вызывающий
// ещё не записан, по интересам профиля и прошлым регистрациям.
func (s *RecommendationService) Recommend(ctx context.Context, actor uuid.UUID) (assistant.RecommendationsResult, error) {
	op := "RecommendationService.Recommend()"
	log := s.logger.With(slog.String("op", op), slog.String("user", actor.String()))

	profile, err := s.repo.FindProfileByUserID(ctx, actor)
	if err != nil {
		return assistant.RecommendationsResult{}, fmt.Errorf("%s: %w", op, err)
	}

	regs, err := s.repo.FindRegistrationsByUser(ctx, actor)
	if err != nil {
		return assistant.RecommendationsResult{}, fmt.Errorf("%s: %w", op, err)
	}
	booked := make(map[uuid.UUID]struct{}, len(regs))
	for _, reg := range regs {
		if reg.Status != domain.RegistrationStatusCancelled {
			booked[reg.EventID] = struct{}{}
		}
	}

	ids := uniqueEventIDs(regs, func(r domain.Registration) uuid.UUID { return r.EventID })
	past, err := s.repo.FindEventsByIDs(ctx, ids)
	if err != nil {
		return assistant.RecommendationsResult{}, fmt.Errorf("%s: %w", op, err)
	}
	attended := make([]string, 0, len(past))
	for _, id := range ids {
		if event, ok := past[id]; ok {
			if _, isBooked := booked[id]; isBooked {
				attended = append(attended, event.Title)
			}
		}
	}

	upcoming, err := s.repo.FindUpcomingEvents(ctx, s.now(), recommendationCandidates)
	if err != nil {
		return assistant.RecommendationsResult{}, fmt.Errorf("%s: %w", op, err)
	}
	available := make([]domain.Event, 0, len(upcoming))
	for _, event := range upcoming {
		if _, ok := booked[event.ID]; !ok {
			available = append(available, event)
		}
	}

	result := s.recommender.Recommendations(ctx, assistant.RecommendationInput{
		Interests:      profile.Interests,
		AttendedEvents: attended,
		Available:      available,
	})
	log.Debug("recommendations ready",
		slog.Int("candidates", len(available)),
		slog.Int("recommended", len(result.Recommendations)),
	)
	return result, nil
}
