package dto

import (
	"strconv"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/services"

	"github.com/google/uuid"
)

type SubmitFeedbackRequest struct {
	SessionID   *uuid.UUID `json:"session_id"`
	Rating      int        `json:"rating"`
	Comments    string     `json:"comments"`
	Suggestions string     `json:"suggestions"`
}

type FeedbackResponse struct {
	ID             uuid.UUID                 `json:"id"`
	EventID        uuid.UUID                 `json:"event_id"`
	UserID         uuid.UUID                 `json:"user_id"`
	SessionID      *uuid.UUID                `json:"session_id"`
	Rating         int                       `json:"rating"`
	Comments       string                    `json:"comments"`
	Categories     domain.FeedbackCategories `json:"categories"`
	Suggestions    string                    `json:"suggestions"`
	WouldRecommend bool                      `json:"would_recommend"`
	SubmittedAt    time.Time                 `json:"submitted_at"`
	Event          *EventResponse            `json:"event,omitempty"`
}

type FeedbackStatsResponse struct {
	TotalResponses     int            `json:"total_responses"`
	AverageRating      float64        `json:"average_rating"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

type EventFeedbackResponse struct {
	Feedback []FeedbackResponse   `json:"feedback"`
	Stats    FeedbackStatsResponse `json:"stats"`
}

type SubmittedResponse struct {
	Submitted bool `json:"submitted"`
}

type FeedbackSummaryResponse struct {
	ID                     uuid.UUID `json:"id"`
	EventID                uuid.UUID `json:"event_id"`
	TotalResponses         int       `json:"total_responses"`
	AverageRating          float64   `json:"average_rating"`
	PositivePoints         []string  `json:"positive_points"`
	RecurringProblems      []string  `json:"recurring_problems"`
	ActionableImprovements []string  `json:"actionable_improvements"`
	RawSummary             string    `json:"raw_summary"`
	GeneratedAt            time.Time `json:"generated_at"`
}

type SeminarSummaryResponse struct {
	ID               uuid.UUID             `json:"id"`
	EventID          uuid.UUID             `json:"event_id"`
	IoTData          domain.VenueTelemetry `json:"iot_data"`
	SummaryText      string                `json:"summary_text"`
	EnergyEfficiency int                   `json:"energy_efficiency"`
	OverallScore     int                   `json:"overall_score"`
	GeneratedAt      time.Time             `json:"generated_at"`
	IsPublished      bool                  `json:"is_published"`
	Event            *EventResponse        `json:"event,omitempty"`
}

// MapSubmitFeedbackRequest конвертирует SubmitFeedbackRequest DTO во входные данные сервиса.
func MapSubmitFeedbackRequest(eventID uuid.UUID, req SubmitFeedbackRequest) services.FeedbackInput {
	return services.FeedbackInput{
		EventID:     eventID,
		SessionID:   req.SessionID,
		Rating:      req.Rating,
		Comments:    req.Comments,
		Suggestions: req.Suggestions,
	}
}

// MapDomainToFeedbackResponse конвертирует Feedback в FeedbackResponse DTO.
func MapDomainToFeedbackResponse(f domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:             f.ID,
		EventID:        f.EventID,
		UserID:         f.UserID,
		SessionID:      f.SessionID,
		Rating:         f.Rating,
		Comments:       f.Comments,
		Categories:     f.Categories,
		Suggestions:    f.Suggestions,
		WouldRecommend: f.WouldRecommend,
		SubmittedAt:    f.SubmittedAt,
	}
}

// MapFeedbackWithEventList конвертирует отзывы с событиями в слайс DTO.
func MapFeedbackWithEventList(items []domain.FeedbackWithEvent) []FeedbackResponse {
	result := make([]FeedbackResponse, len(items))
	for i, f := range items {
		result[i] = MapDomainToFeedbackResponse(f.Feedback)
		if f.Event != nil {
			event := MapDomainToEventResponse(*f.Event)
			result[i].Event = &event
		}
	}
	return result
}

// MapFeedbackStats всегда отдаёт все пять корзин оценок.
func MapFeedbackStats(s domain.FeedbackStats) FeedbackStatsResponse {
	dist := make(map[string]int, 5)
	for rating := 1; rating <= 5; rating++ {
		dist[strconv.Itoa(rating)] = s.RatingDistribution[rating]
	}
	return FeedbackStatsResponse{
		TotalResponses:     s.TotalResponses,
		AverageRating:      s.AverageRating,
		RatingDistribution: dist,
	}
}

// MapEventFeedback конвертирует отзывы события со статистикой в DTO.
func MapEventFeedback(ef domain.EventFeedback) EventFeedbackResponse {
	items := make([]FeedbackResponse, len(ef.Feedback))
	for i, f := range ef.Feedback {
		items[i] = MapDomainToFeedbackResponse(f)
	}
	return EventFeedbackResponse{
		Feedback: items,
		Stats:    MapFeedbackStats(ef.Stats),
	}
}

// MapDomainToFeedbackSummaryResponse конвертирует FeedbackSummary в DTO.
func MapDomainToFeedbackSummaryResponse(s domain.FeedbackSummary) FeedbackSummaryResponse {
	return FeedbackSummaryResponse{
		ID:                     s.ID,
		EventID:                s.EventID,
		TotalResponses:         s.TotalResponses,
		AverageRating:          s.AverageRating,
		PositivePoints:         nonNil(s.PositivePoints),
		RecurringProblems:      nonNil(s.RecurringProblems),
		ActionableImprovements: nonNil(s.ActionableImprovements),
		RawSummary:             s.RawSummary,
		GeneratedAt:            s.GeneratedAt,
	}
}

// MapDomainToSeminarSummaryResponse конвертирует SeminarSummary в DTO.
func MapDomainToSeminarSummaryResponse(s domain.SeminarSummary) SeminarSummaryResponse {
	return SeminarSummaryResponse{
		ID:               s.ID,
		EventID:          s.EventID,
		IoTData:          s.IoTData,
		SummaryText:      s.SummaryText,
		EnergyEfficiency: s.EnergyEfficiency,
		OverallScore:     s.OverallScore,
		GeneratedAt:      s.GeneratedAt,
		IsPublished:      s.IsPublished,
	}
}

// MapSeminarSummariesWithEvent конвертирует отчёты с событиями в слайс DTO.
func MapSeminarSummariesWithEvent(items []domain.SeminarSummaryWithEvent) []SeminarSummaryResponse {
	result := make([]SeminarSummaryResponse, len(items))
	for i, s := range items {
		result[i] = MapDomainToSeminarSummaryResponse(s.SeminarSummary)
		if s.Event != nil {
			event := MapDomainToEventResponse(*s.Event)
			result[i].Event = &event
		}
	}
	return result
}
