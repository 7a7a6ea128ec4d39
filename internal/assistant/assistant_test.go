package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	enabled bool
	text    string
	err     error
	prompts []string
}

func (f *fakeCompleter) Enabled() bool { return f.enabled }

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeCompleter) CompleteStructured(_ context.Context, prompt string, _ string, out any) error {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.text), out)
}

func newTestAssistant(c Completer) *Assistant {
	return New(slog.New(slog.DiscardHandler), c)
}

func TestGeneratorsFallBackWhenDisabled(t *testing.T) {
	a := newTestAssistant(&fakeCompleter{enabled: false})
	ctx := context.Background()

	desc := a.EventDescription(ctx, EventDescriptionInput{Title: "Go Day", Category: "Technology"})
	require.True(t, desc.Success)
	assert.Contains(t, desc.Content, `Join us for an exciting Technology event: "Go Day"`)
	assert.Contains(t, desc.Content, "Latest trends and best practices in Technology")

	prop := a.ProposalDescription(ctx, ProposalDescriptionInput{
		Title:              "Go Day",
		Category:           "Technology",
		TargetAudience:     "students",
		LearningObjectives: "Concurrency",
		Justification:      "Demand",
	})
	require.True(t, prop.Success)
	assert.Contains(t, prop.Content, "Proposal: Go Day")
	assert.Contains(t, prop.Content, "Learning Outcomes:\nConcurrency")

	session := a.SessionSummary(ctx, SessionSummaryInput{
		Title:       "Channels",
		SpeakerName: "R. Pike",
		SessionType: "keynote",
		KeyPoints:   []string{"select", "close"},
	})
	require.True(t, session.Success)
	assert.Contains(t, session.Content, "• select\n• close")

	faq := a.AnswerFAQ(ctx, FAQInput{Question: "Is parking free?", EventContext: "Go Day"})
	require.True(t, faq.Success)
	assert.Contains(t, faq.Content, `"Is parking free?"`)
	assert.NotContains(t, faq.Content, "Here are the key details")
}

func TestSocialPostFallbacks(t *testing.T) {
	a := newTestAssistant(nil)
	in := SocialPostInput{
		Title:       "Go Concurrency Day",
		Description: "All about goroutines",
		Date:        "2026-11-02",
		Location:    "Nehru Hall",
	}

	tests := []struct {
		platform Platform
		contains string
	}{
		{PlatformTwitter, "#GoConcurrencyDay #Networking #Learning"},
		{PlatformLinkedIn, "#ProfessionalDevelopment #Networking #GoConcurrencyDay"},
		{PlatformFacebook, "Tag your friends who would love this!"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			in.Platform = tt.platform
			res := a.SocialPost(context.Background(), in)

			require.True(t, res.Success)
			assert.Contains(t, res.Content, tt.contains)
			assert.Contains(t, res.Content, "Nehru Hall")
		})
	}

	in.Platform = "myspace"
	res := a.SocialPost(context.Background(), in)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestGenerateUsesCompleter(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := &fakeCompleter{enabled: true, text: "generated"}
		res := newTestAssistant(c).EventDescription(context.Background(), EventDescriptionInput{Title: "T", Category: "C"})

		assert.Equal(t, domain.GeneratedContent{Success: true, Content: "generated"}, res)
		require.Len(t, c.prompts, 1)
		assert.Contains(t, c.prompts[0], "Basic Description: Professional event")
	})

	t.Run("failure", func(t *testing.T) {
		c := &fakeCompleter{enabled: true, err: errors.New("503")}
		res := newTestAssistant(c).AnswerFAQ(context.Background(), FAQInput{Question: "q"})

		assert.False(t, res.Success)
		assert.Equal(t, "Failed to generate FAQ answer", res.Error)
		assert.Empty(t, res.Content)
	})
}

func TestProposalTags(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
		category  string
		want      []string
		success   bool
	}{
		{
			name:      "fallback with known category",
			completer: &fakeCompleter{},
			category:  "Technology",
			want:      []string{"Technology", "Professional Development", "Learning", "Tech", "Innovation", "Digital"},
			success:   true,
		},
		{
			name:      "fallback with unknown category",
			completer: &fakeCompleter{},
			category:  "Robotics",
			want:      []string{"Robotics", "Professional Development", "Learning", "Workshop", "Seminar"},
			success:   true,
		},
		{
			name:      "json array answer",
			completer: &fakeCompleter{enabled: true, text: "```json\n[\"Go\", \"Backend\", \" \"]\n```"},
			category:  "Technology",
			want:      []string{"Go", "Backend"},
			success:   true,
		},
		{
			name:      "quoted strings in prose",
			completer: &fakeCompleter{enabled: true, text: `Try "Go" and "Cloud" as tags.`},
			category:  "Technology",
			want:      []string{"Go", "Cloud"},
			success:   true,
		},
		{
			name:      "no tags in answer",
			completer: &fakeCompleter{enabled: true, text: "no idea"},
			category:  "Arts",
			want:      []string{"Arts", "Professional Development", "Learning"},
			success:   true,
		},
		{
			name:      "completer error",
			completer: &fakeCompleter{enabled: true, err: errors.New("boom")},
			category:  "Arts",
			success:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestAssistant(tt.completer).ProposalTags(context.Background(), TagsInput{Title: "T", Category: tt.category})

			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.want, res.Tags)
		})
	}
}

func TestSummarizeProposal(t *testing.T) {
	p := domain.Proposal{
		Title:             "Go Day",
		Category:          "Technology",
		ExpectedAttendees: 150,
		DurationHours:     3,
		PreferredDate:     time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC),
	}
	halls := &domain.HallAvailability{
		RecommendedHall: &domain.HallRecommendation{SelectedHall: "Gandhi Auditorium", MatchScore: 95},
	}

	t.Run("fallback template", func(t *testing.T) {
		s, err := newTestAssistant(nil).SummarizeProposal(context.Background(), p, halls)
		require.NoError(t, err)

		assert.True(t, s.Success)
		assert.Contains(t, s.Summary, "EXECUTIVE SUMMARY:")
		assert.Contains(t, s.Summary, "Recommended venue: Gandhi Auditorium with 95% compatibility")
		assert.Contains(t, s.Summary, "OVERALL RECOMMENDATION: NEEDS REVIEW")
	})

	t.Run("fallback without hall", func(t *testing.T) {
		s, err := newTestAssistant(nil).SummarizeProposal(context.Background(), p, nil)
		require.NoError(t, err)
		assert.Contains(t, s.Summary, "Hall availability requires further assessment")
	})

	t.Run("completer answer", func(t *testing.T) {
		c := &fakeCompleter{enabled: true, text: "Looks good"}
		s, err := newTestAssistant(c).SummarizeProposal(context.Background(), p, halls)
		require.NoError(t, err)

		assert.Equal(t, domain.AISummary{Success: true, Summary: "Looks good"}, s)
		require.Len(t, c.prompts, 1)
		assert.Contains(t, c.prompts[0], "Recommended Hall: Gandhi Auditorium")
		assert.Contains(t, c.prompts[0], "Preferred Date: 2026-11-02")
	})

	t.Run("completer error is returned", func(t *testing.T) {
		c := &fakeCompleter{enabled: true, err: errors.New("timeout")}
		_, err := newTestAssistant(c).SummarizeProposal(context.Background(), p, halls)
		require.Error(t, err)
	})
}

func TestAnalyzeFeedback(t *testing.T) {
	event := domain.Event{ID: uuid.New(), Title: "Go Day", Category: "Technology"}
	feedback := []domain.Feedback{
		{Rating: 5, Comments: "great", Suggestions: "more labs"},
		{Rating: 4, Comments: "good", Suggestions: " "},
	}

	t.Run("structured answer", func(t *testing.T) {
		c := &fakeCompleter{enabled: true, text: `{
			"positivePoints": ["Labs"],
			"recurringProblems": "Too short",
			"actionableImprovements": [],
			"overallSummary": "Fine"
		}`}
		got := newTestAssistant(c).AnalyzeFeedback(context.Background(), event, feedback, 4.5)

		assert.Equal(t, []string{"Labs"}, got.PositivePoints)
		assert.Equal(t, []string{"Too short"}, got.RecurringProblems)
		assert.Empty(t, got.ActionableImprovements)
		assert.Equal(t, "Fine", got.OverallSummary)
		require.Len(t, c.prompts, 1)
		assert.Contains(t, c.prompts[0], "Suggestions:\nmore labs\n")
	})

	t.Run("error falls back to template", func(t *testing.T) {
		c := &fakeCompleter{enabled: true, err: errors.New("bad json")}
		got := newTestAssistant(c).AnalyzeFeedback(context.Background(), event, feedback, 4.5)

		assert.Equal(t, fallbackPositive, got.PositivePoints)
		assert.Contains(t, got.OverallSummary, "Based on 2 responses with an average rating of 4.5/5")
	})
}

func TestScoreByInterests(t *testing.T) {
	tech := domain.Event{ID: uuid.New(), Title: "Go Workshop", Category: "Technology", Tags: []string{"backend"}}
	arts := domain.Event{ID: uuid.New(), Title: "Painting", Category: "Arts"}
	biz := domain.Event{ID: uuid.New(), Title: "Pitch Night", Category: "Business", Tags: []string{"startup"}}

	got := ScoreByInterests([]string{"technology", "go", "backend"}, []domain.Event{arts, biz, tech})

	require.Len(t, got, 3)
	assert.Equal(t, tech.ID, got[0].EventID)
	assert.Equal(t, 10, got[0].Score)
	assert.Equal(t, []string{
		"Matches your interests: technology, go, backend",
		"Relevant to your Technology interests",
	}, got[0].Reasons)

	assert.Equal(t, arts.ID, got[1].EventID)
	assert.Equal(t, 3, got[1].Score)
	assert.Equal(t, []string{"Great Arts event"}, got[1].Reasons)
}

func TestScoreByInterestsCapsAtFive(t *testing.T) {
	events := make([]domain.Event, 8)
	for i := range events {
		events[i] = domain.Event{ID: uuid.New(), Title: "E", Category: "C"}
	}

	assert.Len(t, ScoreByInterests(nil, events), 5)
}

func TestRecommendationsWithCompleter(t *testing.T) {
	known := domain.Event{ID: uuid.New(), Title: "Go Workshop", Category: "Technology"}
	c := &fakeCompleter{enabled: true, text: `{"recommendations": [
		{"eventId": "` + known.ID.String() + `", "score": 9, "reasons": ["fits"]},
		{"eventId": "` + uuid.NewString() + `", "score": 8, "reasons": ["ghost"]}
	]}`}

	res := newTestAssistant(c).Recommendations(context.Background(), RecommendationInput{Available: []domain.Event{known}})

	require.True(t, res.Success)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "Go Workshop", res.Recommendations[0].Title)
	assert.Equal(t, 9, res.Recommendations[0].Score)
}
