package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func newTestProposal() Proposal {
	return NewProposal(uuid.New(), uuid.New(), ProposalInput{
		Title:             "Robotics Expo",
		Description:       "Student robots on display",
		Category:          "Technical",
		ExpectedAttendees: 120,
		PreferredDate:     time.Date(2026, 12, 5, 14, 0, 0, 0, time.UTC),
		DurationHours:     4,
		Tags:              []string{"robots"},
	}, testNow)
}

func enrichment() (*HallAvailability, *AISummary) {
	return &HallAvailability{
			AvailableHalls:       []string{"APJ Abdul Kalam Hall"},
			RecommendedHall:      &HallRecommendation{SelectedHall: "APJ Abdul Kalam Hall", MatchScore: 90},
			HallSelectionSuccess: true,
		},
		&AISummary{Success: true, Summary: "Looks solid"}
}

func TestNewProposalIsValid(t *testing.T) {
	p := newTestProposal()

	assert.Equal(t, ProposalStatusSubmitted, p.Status)
	assert.Equal(t, WorkflowStatusPending, p.WorkflowStatus)
	assert.Equal(t, testNow, p.WorkflowRequestedAt)
	assert.NoError(t, p.Validate())
	assert.True(t, p.CanDecide())
	assert.True(t, p.CanRecordWorkflow())
	assert.False(t, p.CanRetrigger())
	assert.False(t, p.CanMaterialize())
}

func TestProposalInputValidate(t *testing.T) {
	valid := ProposalInput{
		Title:             "t",
		Description:       "d",
		Category:          "c",
		ExpectedAttendees: 1,
		PreferredDate:     testNow,
		DurationHours:     1,
	}
	require.NoError(t, valid.Validate())

	tests := map[string]func(in *ProposalInput){
		"title":     func(in *ProposalInput) { in.Title = "" },
		"attendees": func(in *ProposalInput) { in.ExpectedAttendees = 0 },
		"duration":  func(in *ProposalInput) { in.DurationHours = -1 },
		"date":      func(in *ProposalInput) { in.PreferredDate = time.Time{} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			assert.ErrorIs(t, in.Validate(), ErrInvalidInput)
		})
	}
}

func TestWorkflowTransitions(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		p := newTestProposal()
		halls, summary := enrichment()

		require.NoError(t, p.CompleteWorkflow(halls, summary, testNow))
		assert.Equal(t, WorkflowStatusCompleted, p.WorkflowStatus)
		assert.NoError(t, p.Validate())

		err := p.FailWorkflow("late failure", testNow)
		assert.ErrorIs(t, err, ErrInvalidState, "terminal workflow is not overwritten")
	})

	t.Run("fail", func(t *testing.T) {
		p := newTestProposal()

		require.NoError(t, p.FailWorkflow("", testNow))
		assert.Equal(t, "unknown error", p.WorkflowError)
		assert.True(t, p.CanRetrigger())
		assert.NoError(t, p.Validate())

		halls, summary := enrichment()
		assert.ErrorIs(t, p.CompleteWorkflow(halls, summary, testNow), ErrInvalidState)
	})

	t.Run("missing enrichment", func(t *testing.T) {
		p := newTestProposal()
		assert.ErrorIs(t, p.CompleteWorkflow(nil, &AISummary{}, testNow), ErrInvalidInput)
	})
}

func TestDecide(t *testing.T) {
	reviewer := uuid.New()

	t.Run("approve before enrichment", func(t *testing.T) {
		p := newTestProposal()

		require.NoError(t, p.Decide(ProposalStatusApproved, reviewer, "ok", testNow))
		assert.Equal(t, reviewer, *p.ReviewedBy)
		assert.True(t, p.CanMaterialize())
		assert.True(t, p.CanRecordWorkflow(), "enrichment may still land after approval")
		assert.NoError(t, p.Validate())
	})

	t.Run("decided once", func(t *testing.T) {
		p := newTestProposal()
		require.NoError(t, p.Decide(ProposalStatusRejected, reviewer, "no room", testNow))

		assert.ErrorIs(t, p.Decide(ProposalStatusApproved, reviewer, "", testNow), ErrInvalidState)
		assert.Equal(t, ProposalStatusRejected, p.Status)
	})

	t.Run("not a decision", func(t *testing.T) {
		p := newTestProposal()
		assert.ErrorIs(t, p.Decide(ProposalStatusSubmitted, reviewer, "", testNow), ErrInvalidInput)
	})
}

func TestValidateRejectsUnreachableStates(t *testing.T) {
	tests := map[string]func(p *Proposal){
		"pending with results": func(p *Proposal) { p.AISummary = &AISummary{} },
		"failed without error": func(p *Proposal) { p.WorkflowStatus = WorkflowStatusFailed },
		"submitted but reviewed": func(p *Proposal) {
			at := testNow
			p.ReviewedAt = &at
		},
		"comments before decision": func(p *Proposal) { p.AdminComments = "hm" },
		"event for rejected": func(p *Proposal) {
			id := uuid.New()
			p.CreatedEventID = &id
		},
		"unknown status": func(p *Proposal) { p.Status = "archived" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := newTestProposal()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidState)
		})
	}
}

func TestToEvent(t *testing.T) {
	p := newTestProposal()
	eventID := uuid.New()

	e := p.ToEvent(eventID, testNow)
	assert.Equal(t, "TBD", e.Location)
	assert.Equal(t, p.PreferredDate.Add(4*time.Hour), e.EndDate)
	assert.Equal(t, EventStatusDraft, e.Status)
	assert.Equal(t, 120, e.MaxAttendees)
	assert.Zero(t, e.TicketPrice)
	require.NotNil(t, e.CreatedFromProposal)
	assert.Equal(t, p.ID, *e.CreatedFromProposal)

	halls, summary := enrichment()
	require.NoError(t, p.CompleteWorkflow(halls, summary, testNow))
	assert.Equal(t, "APJ Abdul Kalam Hall", p.ToEvent(eventID, testNow).Location)
}

func TestProfileDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Profile{FirstName: "Ada", LastName: "Lovelace"}.DisplayName())
	assert.Equal(t, "Ada", Profile{FirstName: "Ada"}.DisplayName())
	assert.Equal(t, "Lovelace", Profile{LastName: "Lovelace"}.DisplayName())
}
