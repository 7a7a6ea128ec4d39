package dto

import (
	"encoding/json"
	"testing"
	"time"

	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFeedbackStatsFillsAllBuckets(t *testing.T) {
	stats := MapFeedbackStats(domain.FeedbackStats{
		TotalResponses:     3,
		AverageRating:      4.3,
		RatingDistribution: map[int]int{4: 2, 5: 1},
	})

	assert.Equal(t, map[string]int{"1": 0, "2": 0, "3": 0, "4": 2, "5": 1}, stats.RatingDistribution)
	assert.Equal(t, 3, stats.TotalResponses)
}

func TestProposalResponseShape(t *testing.T) {
	p := domain.NewProposal(uuid.New(), uuid.New(), domain.ProposalInput{
		Title:             "Hackathon",
		Description:       "24h",
		Category:          "Technical",
		ExpectedAttendees: 80,
		PreferredDate:     time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC),
		DurationHours:     24,
	}, time.Now())

	raw, err := json.Marshal(MapProposalWithOrganizer(domain.ProposalWithOrganizer{Proposal: p, OrganizerName: "Grace Hopper"}))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Grace Hopper", body["organizer_name"])
	assert.Equal(t, "pending", body["workflow_status"])
	assert.Equal(t, []any{}, body["tags"])
	assert.Nil(t, body["hall_availability"])
	assert.Nil(t, body["ai_summary"])
	assert.NotContains(t, body, "workflow_error")

	require.NoError(t, p.CompleteWorkflow(&domain.HallAvailability{
		AvailableHalls:       []string{"Nehru Hall"},
		RecommendedHall:      &domain.HallRecommendation{SelectedHall: "Nehru Hall", MatchScore: 70},
		HallSelectionSuccess: true,
	}, &domain.AISummary{Success: true, Summary: "ok"}, time.Now()))

	resp := MapDomainToProposalResponse(p)
	require.NotNil(t, resp.HallAvailability)
	assert.Equal(t, "Nehru Hall", resp.HallAvailability.RecommendedHall.SelectedHall)
	assert.Equal(t, []string{}, resp.HallAvailability.RecommendedHall.AlternativeHalls)
	assert.Equal(t, "ok", resp.AISummary.Summary)
}

func TestMapUpdateEventRequest(t *testing.T) {
	status := "published"
	title := "New title"

	patch := MapUpdateEventRequest(UpdateEventRequest{Title: &title, Status: &status})
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.EventStatusPublished, *patch.Status)
	assert.Equal(t, &title, patch.Title)
	assert.Nil(t, patch.Location)

	patch = MapUpdateEventRequest(UpdateEventRequest{})
	assert.Nil(t, patch.Status)
}
