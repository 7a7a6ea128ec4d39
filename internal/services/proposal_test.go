package services

import (
	"context"
	"testing"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/orchestrator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proposalInput() domain.ProposalInput {
	return domain.ProposalInput{
		Title:              "  Intro to Kubernetes  ",
		Description:        "Hands-on cluster workshop",
		Category:           "Workshop",
		ExpectedAttendees:  80,
		PreferredDate:      time.Now().Add(14 * 24 * time.Hour),
		DurationHours:      3,
		FacilitiesRequired: []string{"Computers"},
	}
}

func newProposalFixture() (*ProposalService, *fakeStore, *fakeQueue) {
	store := newFakeStore()
	queue := &fakeQueue{}
	return NewProposalService(testLogger(), store, queue), store, queue
}

func TestSubmitProposal(t *testing.T) {
	svc, store, queue := newProposalFixture()
	organizer := store.addProfile(domain.RoleOrganizer)

	p, err := svc.Submit(context.Background(), organizer, proposalInput())
	require.NoError(t, err)

	assert.Equal(t, "Intro to Kubernetes", p.Title)
	assert.Equal(t, organizer, p.OrganizerID)
	assert.Equal(t, domain.ProposalStatusSubmitted, p.Status)
	assert.Equal(t, domain.WorkflowStatusPending, p.WorkflowStatus)
	require.NoError(t, p.Validate())

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, queuedJob{kind: orchestrator.JobEnrich, id: p.ID}, queue.jobs[0])
	assert.Contains(t, store.proposals, p.ID)
}

func TestSubmitProposalRejects(t *testing.T) {
	svc, store, queue := newProposalFixture()
	attendee := store.addProfile(domain.RoleAttendee)
	organizer := store.addProfile(domain.RoleOrganizer)

	_, err := svc.Submit(context.Background(), attendee, proposalInput())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Submit(context.Background(), uuid.New(), proposalInput())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	in := proposalInput()
	in.ExpectedAttendees = 0
	_, err = svc.Submit(context.Background(), organizer, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, queue.jobs)
	assert.Empty(t, store.proposals)
}

func TestSubmitProposalSurvivesFullQueue(t *testing.T) {
	svc, store, queue := newProposalFixture()
	queue.err = orchestrator.ErrBufferFull
	organizer := store.addProfile(domain.RoleOrganizer)

	p, err := svc.Submit(context.Background(), organizer, proposalInput())
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusPending, store.proposals[p.ID].WorkflowStatus)
}

func TestUpdateProposalStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approval schedules materialization", func(t *testing.T) {
		svc, store, queue := newProposalFixture()
		organizer := store.addProfile(domain.RoleOrganizer)
		admin := store.addProfile(domain.RoleAdmin)
		p, err := svc.Submit(ctx, organizer, proposalInput())
		require.NoError(t, err)

		decided, err := svc.UpdateStatus(ctx, admin, p.ID, domain.ProposalStatusApproved, " looks good ")
		require.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusApproved, decided.Status)
		assert.Equal(t, "looks good", store.proposals[p.ID].AdminComments)
		require.NotNil(t, store.proposals[p.ID].ReviewedBy)
		assert.Equal(t, admin, *store.proposals[p.ID].ReviewedBy)

		require.Len(t, queue.jobs, 2)
		assert.Equal(t, queuedJob{kind: orchestrator.JobMaterialize, id: p.ID}, queue.jobs[1])

		_, err = svc.UpdateStatus(ctx, admin, p.ID, domain.ProposalStatusRejected, "")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("rejection schedules nothing", func(t *testing.T) {
		svc, store, queue := newProposalFixture()
		organizer := store.addProfile(domain.RoleOrganizer)
		admin := store.addProfile(domain.RoleAdmin)
		p, err := svc.Submit(ctx, organizer, proposalInput())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, admin, p.ID, domain.ProposalStatusRejected, "capacity insufficient")
		require.NoError(t, err)
		assert.Len(t, queue.jobs, 1)
		assert.Equal(t, domain.ProposalStatusRejected, store.proposals[p.ID].Status)
	})

	t.Run("errors", func(t *testing.T) {
		svc, store, _ := newProposalFixture()
		organizer := store.addProfile(domain.RoleOrganizer)
		admin := store.addProfile(domain.RoleAdmin)
		p, err := svc.Submit(ctx, organizer, proposalInput())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, organizer, p.ID, domain.ProposalStatusApproved, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = svc.UpdateStatus(ctx, admin, p.ID, domain.ProposalStatusSubmitted, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.UpdateStatus(ctx, admin, uuid.New(), domain.ProposalStatusApproved, "")
		assert.ErrorIs(t, err, domain.ErrProposalNotFound)

		assert.Equal(t, domain.ProposalStatusSubmitted, store.proposals[p.ID].Status)
	})
}

func TestRetrigger(t *testing.T) {
	ctx := context.Background()
	svc, store, queue := newProposalFixture()
	organizer := store.addProfile(domain.RoleOrganizer)
	admin := store.addProfile(domain.RoleAdmin)
	p, err := svc.Submit(ctx, organizer, proposalInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Retrigger(ctx, admin, p.ID), domain.ErrInvalidState)

	failed := store.proposals[p.ID]
	require.NoError(t, failed.FailWorkflow("upstream timeout", time.Now()))
	store.proposals[p.ID] = failed

	assert.ErrorIs(t, svc.Retrigger(ctx, organizer, p.ID), domain.ErrForbidden)
	require.NoError(t, svc.Retrigger(ctx, admin, p.ID))

	got := store.proposals[p.ID]
	assert.Equal(t, domain.WorkflowStatusPending, got.WorkflowStatus)
	assert.Empty(t, got.WorkflowError)
	assert.Equal(t, queuedJob{kind: orchestrator.JobEnrich, id: p.ID}, queue.jobs[len(queue.jobs)-1])
}

func TestGetProposalVisibility(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newProposalFixture()
	organizer := store.addProfile(domain.RoleOrganizer)
	other := store.addProfile(domain.RoleOrganizer)
	admin := store.addProfile(domain.RoleAdmin)
	p, err := svc.Submit(ctx, organizer, proposalInput())
	require.NoError(t, err)

	got, err := svc.GetProposal(ctx, organizer, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test organizer", got.OrganizerName)

	_, err = svc.GetProposal(ctx, admin, p.ID)
	assert.NoError(t, err)

	_, err = svc.GetProposal(ctx, other, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.AllProposals(ctx, organizer, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	all, err := svc.AllProposals(ctx, admin, domain.ProposalStatusSubmitted)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := svc.MyProposals(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
