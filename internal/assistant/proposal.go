package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/models/dto"
	"campusEvents/internal/utils"
	"campusEvents/internal/utils/logger/sl"
)

const maxTags = 6

var categoryTags = map[string][]string{
	"Technology": {"Tech", "Innovation", "Digital"},
	"Business":   {"Entrepreneurship", "Strategy", "Leadership"},
	"Health":     {"Wellness", "Healthcare", "Medical"},
	"Education":  {"Academic", "Teaching", "Research"},
	"Arts":       {"Creative", "Culture", "Design"},
	"Sports":     {"Fitness", "Athletics", "Competition"},
}

var quoted = regexp.MustCompile(`"([^"]+)"`)

// TagsInput — данные для подбора тегов.
type TagsInput struct {
	Title          string
	Category       string
	Description    string
	TargetAudience string
}

// TagsResult — ответ подбора тегов.
type TagsResult struct {
	Success bool
	Tags    []string
	Error   string
}

// ProposalTags предлагает до шести тегов. Из ответа, который не является
// JSON-массивом, извлекаются строки в кавычках, иначе берутся базовые теги.
func (a *Assistant) ProposalTags(ctx context.Context, in TagsInput) TagsResult {
	op := "Assistant.ProposalTags()"
	log := a.log.With(slog.String("op", op))

	if !a.enabled() {
		return TagsResult{Success: true, Tags: fallbackTags(in.Category)}
	}

	prompt := fmt.Sprintf(`Generate relevant tags for this event proposal:

Title: %s
Category: %s
Description: %s
Target Audience: %s

Generate 5-8 relevant tags that would help categorize and discover this event. Include:
- Category-specific tags
- Skill/topic tags
- Audience-specific tags
- Format/type tags

Return only the tags as a JSON array of strings, like: ["tag1", "tag2", "tag3"]`,
		in.Title, in.Category, in.Description, orDefault(in.TargetAudience, "General"))

	text, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		log.Error("text generation failed", sl.Err(err))
		return TagsResult{Success: false, Error: "Failed to generate tags"}
	}

	if tags := parseTags(text); len(tags) > 0 {
		return TagsResult{Success: true, Tags: tags}
	}

	log.Warn("no tags in AI answer, using base tags")
	return TagsResult{Success: true, Tags: []string{in.Category, "Professional Development", "Learning"}}
}

// parseTags разбирает ответ модели в список тегов.
func parseTags(text string) []string {
	cleaned := utils.CleanJSON(text)

	var schema dto.TagsSchema
	if err := json.Unmarshal([]byte(cleaned), &schema.Tags); err == nil {
		return schema.ToDomain()
	}
	if err := json.Unmarshal([]byte(cleaned), &schema); err == nil && len(schema.Tags) > 0 {
		return schema.ToDomain()
	}

	var tags []string
	for _, m := range quoted.FindAllStringSubmatch(text, -1) {
		if t := strings.TrimSpace(m[1]); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

// fallbackTags — базовые теги категории.
func fallbackTags(category string) []string {
	extra, ok := categoryTags[category]
	if !ok {
		extra = []string{"Workshop", "Seminar"}
	}

	tags := append([]string{category, "Professional Development", "Learning"}, extra...)
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

// SummarizeProposal пишет анализ предложения для администратора. В отличие от
// других генераторов ошибка completer возвращается, чтобы обогащение можно
// было повторить или отметить упавшим.
func (a *Assistant) SummarizeProposal(ctx context.Context, p domain.Proposal, halls *domain.HallAvailability) (domain.AISummary, error) {
	op := "Assistant.SummarizeProposal()"

	var rec *domain.HallRecommendation
	if halls != nil {
		rec = halls.RecommendedHall
	}

	if !a.enabled() {
		return domain.AISummary{Success: true, Summary: proposalSummaryFallback(p, rec)}, nil
	}

	text, err := a.completer.Complete(ctx, proposalSummaryPrompt(p, rec))
	if err != nil {
		return domain.AISummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.AISummary{Success: true, Summary: text}, nil
}

// proposalSummaryPrompt собирает промпт сводки предложения.
func proposalSummaryPrompt(p domain.Proposal, rec *domain.HallRecommendation) string {
	hall := "No optimal hall recommendation available"
	if rec != nil {
		hall = fmt.Sprintf("Recommended Hall: %s\nMatch Score: %d/100\nReasoning: %s",
			rec.SelectedHall, rec.MatchScore, rec.Reasoning)
	}

	return fmt.Sprintf(`Analyze this event proposal and provide a comprehensive summary for admin review:

PROPOSAL DETAILS:
Title: %s
Category: %s
Expected Attendees: %d
Preferred Date: %s
Duration: %d hours
Target Audience: %s
Learning Objectives: %s
Justification: %s
Required Facilities: %s
Tags: %s

HALL AVAILABILITY:
%s

Please provide:
1. Executive Summary (2-3 sentences)
2. Strengths of the proposal
3. Potential concerns or areas for improvement
4. Hall suitability assessment
5. Overall recommendation (Approve/Needs Review/Reject) with reasoning

Format as a structured analysis for admin decision-making.`,
		p.Title, p.Category, p.ExpectedAttendees, p.PreferredDate.Format("2006-01-02"), p.DurationHours,
		p.TargetAudience, p.LearningObjectives, p.Justification,
		strings.Join(p.FacilitiesRequired, ", "), strings.Join(p.Tags, ", "), hall)
}

// proposalSummaryFallback — шаблонная сводка без модели.
func proposalSummaryFallback(p domain.Proposal, rec *domain.HallRecommendation) string {
	hall := "Hall availability requires further assessment"
	if rec != nil {
		hall = fmt.Sprintf("Recommended venue: %s with %d%% compatibility", rec.SelectedHall, rec.MatchScore)
	}

	return fmt.Sprintf(`EXECUTIVE SUMMARY:
The proposal "%s" is a %s event targeting %d attendees. The event aims to provide valuable learning opportunities in the specified domain.

STRENGTHS:
• Clear event objectives and target audience
• Well-defined learning outcomes
• Appropriate duration (%d hours)
• Comprehensive facility requirements identified

POTENTIAL CONCERNS:
• Venue capacity and availability needs verification
• Resource allocation requirements
• Timeline feasibility assessment needed

HALL SUITABILITY:
%s

OVERALL RECOMMENDATION: NEEDS REVIEW
This proposal shows merit and aligns with educational objectives. Recommend admin review for final approval based on resource availability and strategic alignment.`,
		p.Title, p.Category, p.ExpectedAttendees, p.DurationHours, hall)
}
