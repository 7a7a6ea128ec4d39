package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/utils/logger/sl"

	"github.com/google/uuid"
)

const publishedSummariesLimit = 20

// FeedbackService собирает отзывы и строит отчёты по событиям.
type FeedbackService struct {
	logger   *slog.Logger
	repo     FeedbackRepository
	analyzer FeedbackAnalyzer
	now      func() time.Time
	intn     func(n int) int
}

// NewFeedbackService создаёт новый экземпляр FeedbackService.
func NewFeedbackService(logger *slog.Logger, repo FeedbackRepository, analyzer FeedbackAnalyzer) *FeedbackService {
	return &FeedbackService{
		logger:   logger,
		repo:     repo,
		analyzer: analyzer,
		now:      time.Now,
		intn:     rand.Intn,
	}
}

// FeedbackInput — отзыв участника.
type FeedbackInput struct {
	EventID     uuid.UUID
	SessionID   *uuid.UUID
	Rating      int
	Comments    string
	Suggestions string
}

// Submit сохраняет единственный отзыв вызывающего о событии, на которое он
// зарегистрирован. Оценки по категориям повторяют общую оценку.
func (s *FeedbackService) Submit(ctx context.Context, actor uuid.UUID, in FeedbackInput) (domain.Feedback, error) {
	op := "FeedbackService.Submit()"
	log := s.logger.With(
		slog.String("op", op),
		slog.String("user", actor.String()),
		slog.String("event", in.EventID.String()),
	)

	if _, err := s.repo.FindProfileByUserID(ctx, actor); err != nil {
		return domain.Feedback{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.FindRegistration(ctx, in.EventID, actor); err != nil {
		if domain.IsNotFound(err) {
			return domain.Feedback{}, fmt.Errorf("%s: %w", op, domain.ErrNotRegistered)
		}
		return domain.Feedback{}, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := s.repo.FeedbackExists(ctx, in.EventID, actor)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return domain.Feedback{}, fmt.Errorf("%s: %w", op, domain.ErrFeedbackExists)
	}

	if in.Rating < 1 || in.Rating > 5 {
		return domain.Feedback{}, fmt.Errorf("%s: rating must be between 1 and 5: %w", op, domain.ErrInvalidInput)
	}

	feedback, err := s.repo.CreateFeedback(ctx, domain.Feedback{
		ID:        uuid.New(),
		EventID:   in.EventID,
		UserID:    actor,
		SessionID: in.SessionID,
		Rating:    in.Rating,
		Comments:  strings.TrimSpace(in.Comments),
		Categories: domain.FeedbackCategories{
			Content:      in.Rating,
			Speaker:      in.Rating,
			Organization: in.Rating,
			Venue:        in.Rating,
		},
		Suggestions:    strings.TrimSpace(in.Suggestions),
		WouldRecommend: in.Rating >= 4,
		SubmittedAt:    s.now(),
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("feedback submitted", slog.Int("rating", feedback.Rating))
	return feedback, nil
}

// organizedEvent загружает событие, которое организует вызывающий.
func (s *FeedbackService) organizedEvent(ctx context.Context, actor, eventID uuid.UUID) (domain.Event, error) {
	event, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if event.OrganizerID != actor {
		return domain.Event{}, fmt.Errorf("only the organizer can access feedback: %w", domain.ErrForbidden)
	}
	return event, nil
}

// ComputeStats усредняет оценки до одного знака и считает каждую оценку 1..5.
func ComputeStats(feedback []domain.Feedback) domain.FeedbackStats {
	stats := domain.FeedbackStats{
		TotalResponses:     len(feedback),
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(feedback) == 0 {
		return stats
	}

	total := 0
	for _, f := range feedback {
		total += f.Rating
		if f.Rating >= 1 && f.Rating <= 5 {
			stats.RatingDistribution[f.Rating]++
		}
	}
	stats.AverageRating = math.Round(float64(total)/float64(len(feedback))*10) / 10
	return stats
}

// EventFeedback возвращает отзывы события и статистику по ним.
func (s *FeedbackService) EventFeedback(ctx context.Context, actor, eventID uuid.UUID) (domain.EventFeedback, error) {
	op := "FeedbackService.EventFeedback()"

	if _, err := s.organizedEvent(ctx, actor, eventID); err != nil {
		return domain.EventFeedback{}, fmt.Errorf("%s: %w", op, err)
	}

	feedback, err := s.repo.FindFeedbackByEvent(ctx, eventID)
	if err != nil {
		return domain.EventFeedback{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.EventFeedback{Feedback: feedback, Stats: ComputeStats(feedback)}, nil
}

// HasSubmitted сообщает, оставил ли вызывающий отзыв о событии.
func (s *FeedbackService) HasSubmitted(ctx context.Context, actor, eventID uuid.UUID) (bool, error) {
	op := "FeedbackService.HasSubmitted()"

	exists, err := s.repo.FeedbackExists(ctx, eventID, actor)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// MyFeedback добавляет к каждому отзыву его событие. Удалённое событие остаётся nil.
func (s *FeedbackService) MyFeedback(ctx context.Context, actor uuid.UUID) ([]domain.FeedbackWithEvent, error) {
	op := "FeedbackService.MyFeedback()"

	feedback, err := s.repo.FindFeedbackByUser(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ids := uniqueEventIDs(feedback, func(f domain.Feedback) uuid.UUID { return f.EventID })
	events, err := s.repo.FindEventsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.FeedbackWithEvent, 0, len(feedback))
	for _, f := range feedback {
		item := domain.FeedbackWithEvent{Feedback: f}
		if event, ok := events[f.EventID]; ok {
			item.Event = &event
		}
		result = append(result, item)
	}
	return result, nil
}

// GenerateSummary анализирует все отзывы события и сохраняет новую сводку.
func (s *FeedbackService) GenerateSummary(ctx context.Context, actor, eventID uuid.UUID) (domain.FeedbackSummary, error) {
	op := "FeedbackService.GenerateSummary()"
	log := s.logger.With(slog.String("op", op), slog.String("event", eventID.String()))

	event, err := s.organizedEvent(ctx, actor, eventID)
	if err != nil {
		return domain.FeedbackSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	feedback, err := s.repo.FindFeedbackByEvent(ctx, eventID)
	if err != nil {
		return domain.FeedbackSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(feedback) == 0 {
		return domain.FeedbackSummary{}, fmt.Errorf("%s: %w", op, domain.ErrNoFeedback)
	}

	stats := ComputeStats(feedback)
	analysis := s.analyzer.AnalyzeFeedback(ctx, event, feedback, stats.AverageRating)

	summary, err := s.repo.CreateFeedbackSummary(ctx, domain.FeedbackSummary{
		ID:                     uuid.New(),
		EventID:                eventID,
		OrganizerID:            actor,
		TotalResponses:         stats.TotalResponses,
		AverageRating:          stats.AverageRating,
		PositivePoints:         analysis.PositivePoints,
		RecurringProblems:      analysis.RecurringProblems,
		ActionableImprovements: analysis.ActionableImprovements,
		RawSummary:             analysis.OverallSummary,
		GeneratedAt:            s.now(),
	})
	if err != nil {
		log.Error("failed to store feedback summary", sl.Err(err))
		return domain.FeedbackSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("feedback summary generated", slog.Int("responses", stats.TotalResponses))
	return summary, nil
}

// LatestSummary возвращает последнюю сводку отзывов.
func (s *FeedbackService) LatestSummary(ctx context.Context, actor, eventID uuid.UUID) (domain.FeedbackSummary, error) {
	op := "FeedbackService.LatestSummary()"

	if _, err := s.organizedEvent(ctx, actor, eventID); err != nil {
		return domain.FeedbackSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	summary, err := s.repo.FindLatestFeedbackSummary(ctx, eventID)
	if err != nil {
		return domain.FeedbackSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return summary, nil
}

// between возвращает равномерно распределённое целое из [lo, hi].
func (s *FeedbackService) between(lo, hi int) int {
	return lo + s.intn(hi-lo+1)
}

// simulateTelemetry заменяет датчики зала.
func (s *FeedbackService) simulateTelemetry(event domain.Event, attendance int) domain.VenueTelemetry {
	return domain.VenueTelemetry{
		Temperature:       s.between(22, 28),
		AttendanceCount:   attendance,
		MicUsage:          s.between(60, 100),
		EnergyConsumption: s.between(150, 250),
		Duration:          int(math.Round(event.EndDate.Sub(event.StartDate).Hours())),
		AirQuality:        s.between(50, 100),
		InternetUsage:     s.between(500, 1000),
	}
}

// SeminarScore взвешивает заполняемость, энергоэффективность, качество воздуха
// и использование микрофонов в оценку 0..100.
func SeminarScore(t domain.VenueTelemetry, maxAttendees, energyEfficiency int) int {
	attendanceRate := 0.0
	if maxAttendees > 0 {
		attendanceRate = float64(t.AttendanceCount) / float64(maxAttendees) * 100
	}

	score := int(math.Round(attendanceRate*0.3 +
		float64(energyEfficiency)*0.2 +
		float64(100-t.AirQuality)*0.2 +
		float64(t.MicUsage)*0.3))
	return min(score, 100)
}

// GenerateSeminarSummary пишет итоговый отчёт по завершённому событию.
func (s *FeedbackService) GenerateSeminarSummary(ctx context.Context, actor, eventID uuid.UUID) (domain.SeminarSummary, error) {
	op := "FeedbackService.GenerateSeminarSummary()"
	log := s.logger.With(slog.String("op", op), slog.String("event", eventID.String()))

	event, err := s.organizedEvent(ctx, actor, eventID)
	if err != nil {
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	if event.EndDate.After(s.now()) {
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, domain.ErrEventNotEnded)
	}

	attendance, err := s.repo.CountRegistered(ctx, eventID)
	if err != nil {
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	telemetry := s.simulateTelemetry(event, attendance)
	efficiency := s.between(85, 100)

	text, err := s.analyzer.SeminarReport(ctx, event, telemetry, efficiency)
	if err != nil {
		log.Error("failed to write seminar report", sl.Err(err))
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	summary, err := s.repo.CreateSeminarSummary(ctx, domain.SeminarSummary{
		ID:               uuid.New(),
		EventID:          eventID,
		OrganizerID:      actor,
		IoTData:          telemetry,
		SummaryText:      text,
		EnergyEfficiency: efficiency,
		OverallScore:     SeminarScore(telemetry, event.MaxAttendees, efficiency),
		GeneratedAt:      s.now(),
	})
	if err != nil {
		log.Error("failed to store seminar summary", sl.Err(err))
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("seminar summary generated", slog.Int("score", summary.OverallScore))
	return summary, nil
}

// SeminarSummary возвращает последний отчёт по событию.
func (s *FeedbackService) SeminarSummary(ctx context.Context, eventID uuid.UUID) (domain.SeminarSummary, error) {
	op := "FeedbackService.SeminarSummary()"

	summary, err := s.repo.FindLatestSeminarSummary(ctx, eventID)
	if err != nil {
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return summary, nil
}

// PublishSeminarSummary публикует отчёт. Доступно организатору события.
func (s *FeedbackService) PublishSeminarSummary(ctx context.Context, actor, summaryID uuid.UUID) error {
	op := "FeedbackService.PublishSeminarSummary()"

	summary, err := s.repo.FindSeminarSummaryByID(ctx, summaryID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if summary.OrganizerID != actor {
		return fmt.Errorf("%s: only the organizer can publish this summary: %w", op, domain.ErrForbidden)
	}
	if err := s.repo.PublishSeminarSummary(ctx, summaryID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("seminar summary published", slog.String("op", op), slog.String("summary", summaryID.String()))
	return nil
}

// PublishedSeminarSummaries возвращает последние опубликованные отчёты с событиями.
func (s *FeedbackService) PublishedSeminarSummaries(ctx context.Context) ([]domain.SeminarSummaryWithEvent, error) {
	op := "FeedbackService.PublishedSeminarSummaries()"

	summaries, err := s.repo.FindPublishedSeminarSummaries(ctx, publishedSummariesLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ids := uniqueEventIDs(summaries, func(s domain.SeminarSummary) uuid.UUID { return s.EventID })
	events, err := s.repo.FindEventsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.SeminarSummaryWithEvent, 0, len(summaries))
	for _, summary := range summaries {
		item := domain.SeminarSummaryWithEvent{SeminarSummary: summary}
		if event, ok := events[summary.EventID]; ok {
			item.Event = &event
		}
		result = append(result, item)
	}
	return result, nil
}
