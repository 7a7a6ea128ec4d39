package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/models/dto"
	"campusEvents/internal/utils/logger/sl"
)

var (
	fallbackPositive     = []string{"Event was well-organized", "Good content quality", "Engaging speakers"}
	fallbackProblems     = []string{"Audio issues", "Room temperature", "Limited networking time"}
	fallbackImprovements = []string{"Improve sound system", "Better climate control", "Extended break times"}
)

// AnalyzeFeedback обобщает отзывы события. Анализ возвращается всегда: при
// сбое completer используется шаблонный.
func (a *Assistant) AnalyzeFeedback(ctx context.Context, event domain.Event, feedback []domain.Feedback, averageRating float64) domain.FeedbackAnalysis {
	op := "Assistant.AnalyzeFeedback()"
	log := a.log.With(slog.String("op", op), slog.String("event_id", event.ID.String()))

	if a.enabled() {
		var schema dto.FeedbackAnalysisSchema
		err := a.completer.CompleteStructured(ctx, feedbackPrompt(event, feedback, averageRating), "feedback_analysis", &schema)
		if err == nil {
			analysis := schema.ToDomain()
			if analysis.OverallSummary == "" {
				analysis.OverallSummary = "Analysis completed"
			}
			return analysis
		}
		log.Warn("feedback analysis failed, using template", sl.Err(err))
	}

	return domain.FeedbackAnalysis{
		PositivePoints:         append([]string(nil), fallbackPositive...),
		RecurringProblems:      append([]string(nil), fallbackProblems...),
		ActionableImprovements: append([]string(nil), fallbackImprovements...),
		OverallSummary: fmt.Sprintf(
			`Based on %d responses with an average rating of %.1f/5, the event "%s" was generally well-received. Attendees appreciated the organization and content quality, though some technical and environmental improvements could enhance future events.`,
			len(feedback), averageRating, event.Title),
	}
}

// feedbackPrompt собирает промпт анализа отзывов.
func feedbackPrompt(event domain.Event, feedback []domain.Feedback, averageRating float64) string {
	comments := make([]string, 0, len(feedback))
	suggestions := make([]string, 0, len(feedback))
	for _, f := range feedback {
		comments = append(comments, f.Comments)
		if s := strings.TrimSpace(f.Suggestions); s != "" {
			suggestions = append(suggestions, s)
		}
	}

	return fmt.Sprintf(`You are an AI assistant analyzing feedback for a seminar/event. Please analyze the following feedback data and provide a structured summary.

Event: %s
Category: %s
Total Responses: %d
Average Rating: %.1f/5

Feedback Comments:
%s

Suggestions:
%s

Focus on:
1. Identifying the most frequently mentioned positive aspects
2. Finding recurring issues or complaints
3. Suggesting specific, actionable improvements based on the feedback
4. Providing an overall assessment of the event's success`,
		event.Title, event.Category, len(feedback), averageRating,
		strings.Join(comments, "\n"), strings.Join(suggestions, "\n"))
}

// SeminarReport пишет итоговый текст по телеметрии зала.
func (a *Assistant) SeminarReport(ctx context.Context, event domain.Event, t domain.VenueTelemetry, energyEfficiency int) (string, error) {
	op := "Assistant.SeminarReport()"

	if !a.enabled() {
		return fmt.Sprintf(`The "%s" %s event was successfully conducted at %s with %d attendees out of %d registered participants. The %d-hour event maintained optimal environmental conditions with an average temperature of %d°C and good air quality (AQI: %d).

Technical infrastructure performed excellently with %d%% microphone utilization and %dMB of internet usage, ensuring seamless communication throughout the event. The venue's energy efficiency rating of %d%% demonstrates our commitment to sustainable event management, with total energy consumption of %d kWh.

Overall, the event achieved its objectives with strong attendance and positive technical performance metrics, establishing a benchmark for future events in terms of both participant engagement and environmental responsibility.`,
			event.Title, event.Category, event.Location, t.AttendanceCount, event.MaxAttendees, t.Duration,
			t.Temperature, t.AirQuality, t.MicUsage, t.InternetUsage, energyEfficiency, t.EnergyConsumption), nil
	}

	prompt := fmt.Sprintf(`Generate a professional seminar summary for:

Event: %s
Category: %s
Location: %s
Duration: %d hours
Attendance: %d/%d

IoT Data:
- Temperature: %d°C
- Microphone Usage: %d%%
- Energy Consumption: %d kWh
- Air Quality: %d AQI
- Internet Usage: %d MB
- Energy Efficiency: %d%%

Create a 2-3 paragraph professional summary highlighting success metrics, venue performance, and sustainability aspects.`,
		event.Title, event.Category, event.Location, t.Duration, t.AttendanceCount, event.MaxAttendees,
		t.Temperature, t.MicUsage, t.EnergyConsumption, t.AirQuality, t.InternetUsage, energyEfficiency)

	text, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return text, nil
}
