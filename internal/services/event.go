package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/utils/logger/sl"

	"github.com/google/uuid"
)

const upcomingEventsLimit = 10

// EventService управляет событиями организаторов.
type EventService struct {
	logger *slog.Logger
	repo   EventRepository
	now    func() time.Time
}

// NewEventService создаёт новый экземпляр EventService.
func NewEventService(logger *slog.Logger, repo EventRepository) *EventService {
	return &EventService{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
}

// EventInput — данные нового события.
type EventInput struct {
	Title              string
	Description        string
	Category           string
	StartDate          time.Time
	EndDate            time.Time
	Location           string
	IsVirtual          bool
	VirtualLink        string
	MaxAttendees       int
	TicketPrice        float64
	Tags               []string
	FacilitiesRequired []string
}

// EventPatch обновляет только поля, отличные от nil.
type EventPatch struct {
	Title              *string
	Description        *string
	Category           *string
	StartDate          *time.Time
	EndDate            *time.Time
	Location           *string
	IsVirtual          *bool
	VirtualLink        *string
	MaxAttendees       *int
	TicketPrice        *float64
	Tags               *[]string
	FacilitiesRequired *[]string
	Status             *domain.EventStatus
}

// validateEvent проверяет обязательные поля, даты, вместимость и цену.
func validateEvent(e domain.Event) error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	case strings.TrimSpace(e.Category) == "":
		return fmt.Errorf("category is required: %w", domain.ErrInvalidInput)
	case e.StartDate.IsZero() || e.EndDate.IsZero():
		return fmt.Errorf("start and end dates are required: %w", domain.ErrInvalidInput)
	case !e.EndDate.After(e.StartDate):
		return fmt.Errorf("end date must be after start date: %w", domain.ErrInvalidInput)
	case e.MaxAttendees <= 0:
		return fmt.Errorf("max attendees must be positive: %w", domain.ErrInvalidInput)
	case e.TicketPrice < 0:
		return fmt.Errorf("ticket price cannot be negative: %w", domain.ErrInvalidInput)
	case !e.Status.Valid():
		return fmt.Errorf("unknown status %q: %w", e.Status, domain.ErrInvalidInput)
	}
	return nil
}

// Create сохраняет черновик события, организатором становится вызывающий.
func (s *EventService) Create(ctx context.Context, actor uuid.UUID, in EventInput) (domain.Event, error) {
	op := "EventService.Create()"
	log := s.logger.With(slog.String("op", op), slog.String("user", actor.String()))

	if _, err := requireRole(ctx, s.repo, actor, domain.RoleOrganizer, domain.RoleAdmin); err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	event := domain.Event{
		ID:                 uuid.New(),
		OrganizerID:        actor,
		Title:              strings.TrimSpace(in.Title),
		Description:        in.Description,
		Category:           strings.TrimSpace(in.Category),
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		Location:           in.Location,
		IsVirtual:          in.IsVirtual,
		VirtualLink:        in.VirtualLink,
		MaxAttendees:       in.MaxAttendees,
		TicketPrice:        in.TicketPrice,
		Tags:               in.Tags,
		FacilitiesRequired: in.FacilitiesRequired,
		Status:             domain.EventStatusDraft,
		CreatedAt:          s.now(),
	}
	if err := validateEvent(event); err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event created", slog.String("event", created.ID.String()))
	return created, nil
}

// ownedEvent загружает событие и проверяет, что вызывающий его организатор.
func (s *EventService) ownedEvent(ctx context.Context, actor, eventID uuid.UUID) (domain.Event, error) {
	event, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if event.OrganizerID != actor {
		return domain.Event{}, fmt.Errorf("event %s belongs to another organizer: %w", eventID, domain.ErrForbidden)
	}
	return event, nil
}

// Update применяет патч к событию организатора.
func (s *EventService) Update(ctx context.Context, actor, eventID uuid.UUID, patch EventPatch) (domain.Event, error) {
	op := "EventService.Update()"

	event, err := s.ownedEvent(ctx, actor, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	applyEventPatch(&event, patch)
	if err := validateEvent(event); err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// applyEventPatch копирует заданные поля патча в событие.
func applyEventPatch(e *domain.Event, p EventPatch) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = strings.TrimSpace(*p.Category)
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.IsVirtual != nil {
		e.IsVirtual = *p.IsVirtual
	}
	if p.VirtualLink != nil {
		e.VirtualLink = *p.VirtualLink
	}
	if p.MaxAttendees != nil {
		e.MaxAttendees = *p.MaxAttendees
	}
	if p.TicketPrice != nil {
		e.TicketPrice = *p.TicketPrice
	}
	if p.Tags != nil {
		e.Tags = *p.Tags
	}
	if p.FacilitiesRequired != nil {
		e.FacilitiesRequired = *p.FacilitiesRequired
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}

// Publish переводит событие в статус published.
func (s *EventService) Publish(ctx context.Context, actor, eventID uuid.UUID) (domain.Event, error) {
	op := "EventService.Publish()"

	published := domain.EventStatusPublished
	event, err := s.Update(ctx, actor, eventID, EventPatch{Status: &published})
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("event published", slog.String("op", op), slog.String("event", eventID.String()))
	return event, nil
}

// Delete удаляет событие организатора.
func (s *EventService) Delete(ctx context.Context, actor, eventID uuid.UUID) error {
	op := "EventService.Delete()"

	if _, err := s.ownedEvent(ctx, actor, eventID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("event deleted", slog.String("op", op), slog.String("event", eventID.String()))
	return nil
}

// Get возвращает событие по ID.
func (s *EventService) Get(ctx context.Context, eventID uuid.UUID) (domain.Event, error) {
	op := "EventService.Get()"

	event, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	return event, nil
}

// Details добавляет профиль организатора. Без профиля поле остаётся nil.
func (s *EventService) Details(ctx context.Context, eventID uuid.UUID) (domain.EventWithOrganizer, error) {
	op := "EventService.Details()"

	event, err := s.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return domain.EventWithOrganizer{}, fmt.Errorf("%s: %w", op, err)
	}

	result := domain.EventWithOrganizer{Event: event}
	organizer, err := s.repo.FindProfileByUserID(ctx, event.OrganizerID)
	switch {
	case err == nil:
		result.Organizer = &organizer
	case !domain.IsNotFound(err):
		return domain.EventWithOrganizer{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// List возвращает события, опционально отфильтрованные по статусу.
func (s *EventService) List(ctx context.Context, status domain.EventStatus, limit int) ([]domain.Event, error) {
	op := "EventService.List()"

	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%s: unknown status %q: %w", op, status, domain.ErrInvalidInput)
	}

	events, err := s.repo.ListEvents(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// Published возвращает опубликованные события.
func (s *EventService) Published(ctx context.Context) ([]domain.Event, error) {
	return s.List(ctx, domain.EventStatusPublished, 0)
}

// Mine возвращает события, которые организует вызывающий.
func (s *EventService) Mine(ctx context.Context, actor uuid.UUID) ([]domain.Event, error) {
	op := "EventService.Mine()"

	events, err := s.repo.FindEventsByOrganizer(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// ByCategory возвращает опубликованные события категории.
func (s *EventService) ByCategory(ctx context.Context, category string) ([]domain.Event, error) {
	op := "EventService.ByCategory()"

	events, err := s.repo.FindEventsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// Upcoming возвращает опубликованные события, которые ещё не начались.
func (s *EventService) Upcoming(ctx context.Context) ([]domain.Event, error) {
	op := "EventService.Upcoming()"

	events, err := s.repo.FindUpcomingEvents(ctx, s.now(), upcomingEventsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// Past возвращает завершившиеся опубликованные события.
func (s *EventService) Past(ctx context.Context) ([]domain.Event, error) {
	op := "EventService.Past()"

	events, err := s.repo.FindPastEvents(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// Search ищет опубликованные события по названию, описанию, категории и тегам.
// Для пустого запроса событий нет.
func (s *EventService) Search(ctx context.Context, term string) ([]domain.Event, error) {
	op := "EventService.Search()"

	if strings.TrimSpace(term) == "" {
		return []domain.Event{}, nil
	}

	events, err := s.repo.SearchEvents(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}
