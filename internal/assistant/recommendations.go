package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/models/dto"
	"campusEvents/internal/utils/logger/sl"
)

const maxRecommendations = 5

// RecommendationInput — интересы пользователя и события-кандидаты.
type RecommendationInput struct {
	Interests      []string
	AttendedEvents []string
	Available      []domain.Event
}

// RecommendationsResult — ответ рекомендаций.
type RecommendationsResult struct {
	Success         bool
	Recommendations []domain.Recommendation
	Error           string
}

// Recommendations ранжирует события через модель. Без модели ранжирует по
// интересам, ошибка модели даёт неуспешный ответ.
func (a *Assistant) Recommendations(ctx context.Context, in RecommendationInput) RecommendationsResult {
	op := "Assistant.Recommendations()"
	log := a.log.With(slog.String("op", op))

	if !a.enabled() {
		return RecommendationsResult{Success: true, Recommendations: ScoreByInterests(in.Interests, in.Available)}
	}

	var schema dto.RecommendationsSchema
	if err := a.completer.CompleteStructured(ctx, recommendationPrompt(in), "recommendations", &schema); err != nil {
		log.Error("recommendation generation failed", sl.Err(err))
		return RecommendationsResult{Success: false, Error: "Failed to generate recommendations"}
	}

	return RecommendationsResult{Success: true, Recommendations: schema.ToDomain(in.Available)}
}

// ScoreByInterests ранжирует события без модели: два балла за каждый
// совпавший интерес, ещё три, если интерес называет категорию, три базовых,
// не больше 10. Возвращает до пяти лучших.
func ScoreByInterests(interests []string, events []domain.Event) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(events))

	for _, e := range events {
		category := strings.ToLower(e.Category)
		score := 0
		var reasons []string

		var matches []string
		categoryHit := false
		for _, interest := range interests {
			i := strings.ToLower(interest)
			if i == "" {
				continue
			}
			if strings.Contains(category, i) {
				categoryHit = true
			}
			if strings.Contains(strings.ToLower(e.Title), i) || strings.Contains(category, i) || anyContains(e.Tags, i) {
				matches = append(matches, interest)
			}
		}

		if len(matches) > 0 {
			score += len(matches) * 2
			reasons = append(reasons, "Matches your interests: "+strings.Join(matches, ", "))
		}
		if categoryHit {
			score += 3
			reasons = append(reasons, fmt.Sprintf("Relevant to your %s interests", e.Category))
		}
		score += 3
		if len(reasons) == 0 {
			reasons = []string{fmt.Sprintf("Great %s event", e.Category)}
		}

		out = append(out, domain.Recommendation{
			EventID: e.ID,
			Title:   e.Title,
			Score:   min(score, 10),
			Reasons: reasons,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}

func anyContains(values []string, sub string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), sub) {
			return true
		}
	}
	return false
}

// recommendationPrompt собирает промпт рекомендаций.
func recommendationPrompt(in RecommendationInput) string {
	var sb strings.Builder
	for _, e := range in.Available {
		fmt.Fprintf(&sb, "- [%s] %s (%s): %s [Tags: %s]\n",
			e.ID, e.Title, e.Category, e.Description, strings.Join(e.Tags, ", "))
	}

	return fmt.Sprintf(`Generate personalized event recommendations for a user based on their profile:

User Interests: %s
Previously Attended Events: %s

Available Events:
%s
Analyze the user's interests and past attendance to recommend the most relevant events. For each recommendation, provide the event id shown in brackets, a relevance score (1-10) and brief reasons why it matches their interests.

Recommend up to 5 events, ordered by relevance score.`,
		strings.Join(in.Interests, ", "), strings.Join(in.AttendedEvents, ", "), sb.String())
}
