package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
)

// FlexibleStringSlice принимает и JSON-строку, и массив строк.
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "" {
			*f = []string{s}
		} else {
			*f = nil
		}
		return nil
	}

	return fmt.Errorf("expected string or []string, got %s", string(data))
}

// cleaned убирает пустые элементы и пробелы по краям.
func (f FlexibleStringSlice) cleaned() []string {
	out := make([]string, 0, len(f))
	for _, s := range f {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HallSelectionSchema - структурированный ответ на промпт подбора зала
type HallSelectionSchema struct {
	SelectedHall     string              `json:"selectedHall" description:"Name of the selected hall, exactly as listed"`
	MatchScore       int                 `json:"matchScore" description:"How well the hall fits, 0-100"`
	Reasoning        string              `json:"reasoning" description:"Why this hall was selected"`
	AlternativeHalls FlexibleStringSlice `json:"alternativeHalls" description:"Up to two other suitable halls"`
	FacilitiesMatch  FlexibleStringSlice `json:"facilitiesMatch" description:"Required facilities the hall offers"`
	CapacityAnalysis string              `json:"capacityAnalysis" description:"Capacity compared to the expected attendance"`
}

func (s HallSelectionSchema) ToDomain() domain.HallRecommendation {
	score := s.MatchScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	alternatives := s.AlternativeHalls.cleaned()
	if len(alternatives) > 2 {
		alternatives = alternatives[:2]
	}

	return domain.HallRecommendation{
		SelectedHall:     strings.TrimSpace(s.SelectedHall),
		MatchScore:       score,
		Reasoning:        s.Reasoning,
		AlternativeHalls: alternatives,
		FacilitiesMatch:  s.FacilitiesMatch.cleaned(),
		CapacityAnalysis: s.CapacityAnalysis,
	}
}

// TagsSchema - структурированный ответ на промпт подбора тегов
type TagsSchema struct {
	Tags FlexibleStringSlice `json:"tags" description:"3 to 6 short tags for the event"`
}

func (s TagsSchema) ToDomain() []string {
	tags := s.Tags.cleaned()
	if len(tags) > 6 {
		tags = tags[:6]
	}
	return tags
}

// FeedbackAnalysisSchema - структурированный ответ на промпт анализа отзывов
type FeedbackAnalysisSchema struct {
	PositivePoints         FlexibleStringSlice `json:"positivePoints" description:"What attendees liked"`
	RecurringProblems      FlexibleStringSlice `json:"recurringProblems" description:"Problems mentioned by several attendees"`
	ActionableImprovements FlexibleStringSlice `json:"actionableImprovements" description:"Concrete improvements for the next event"`
	OverallSummary         string              `json:"overallSummary" description:"Two or three sentence summary"`
}

func (s FeedbackAnalysisSchema) ToDomain() domain.FeedbackAnalysis {
	return domain.FeedbackAnalysis{
		PositivePoints:         s.PositivePoints.cleaned(),
		RecurringProblems:      s.RecurringProblems.cleaned(),
		ActionableImprovements: s.ActionableImprovements.cleaned(),
		OverallSummary:         s.OverallSummary,
	}
}

type RecommendationSchema struct {
	EventID string              `json:"eventId" description:"Id of the recommended event"`
	Score   int                 `json:"score" description:"Relevance score, 1-10"`
	Reasons FlexibleStringSlice `json:"reasons" description:"Short reasons for the recommendation"`
}

// RecommendationsSchema - структурированный ответ на промпт рекомендаций
type RecommendationsSchema struct {
	Recommendations []RecommendationSchema `json:"recommendations" description:"Recommended events, best first"`
}

// ToDomain оставляет только рекомендации известных событий.
func (s RecommendationsSchema) ToDomain(events []domain.Event) []domain.Recommendation {
	titles := make(map[uuid.UUID]string, len(events))
	for _, e := range events {
		titles[e.ID] = e.Title
	}

	out := make([]domain.Recommendation, 0, len(s.Recommendations))
	for _, r := range s.Recommendations {
		id, err := uuid.Parse(strings.TrimSpace(r.EventID))
		if err != nil {
			continue
		}
		title, ok := titles[id]
		if !ok {
			continue
		}
		out = append(out, domain.Recommendation{
			EventID: id,
			Title:   title,
			Score:   r.Score,
			Reasons: r.Reasons.cleaned(),
		})
	}
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}
