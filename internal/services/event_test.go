package services

import (
	"context"
	"testing"
	"time"

	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventInput(start time.Time) EventInput {
	return EventInput{
		Title:        "Robotics Expo",
		Category:     "Technology",
		StartDate:    start,
		EndDate:      start.Add(3 * time.Hour),
		Location:     "Gandhi Auditorium",
		MaxAttendees: 120,
		Tags:         []string{"robots"},
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewEventService(testLogger(), store)
	organizer := store.addProfile(domain.RoleOrganizer)
	attendee := store.addProfile(domain.RoleAttendee)
	start := time.Now().Add(48 * time.Hour)

	e, err := svc.Create(ctx, organizer, eventInput(start))
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusDraft, e.Status)
	assert.Equal(t, organizer, e.OrganizerID)

	_, err = svc.Create(ctx, attendee, eventInput(start))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	bad := eventInput(start)
	bad.EndDate = start
	_, err = svc.Create(ctx, organizer, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = eventInput(start)
	bad.MaxAttendees = 0
	_, err = svc.Create(ctx, organizer, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePublishDeleteEvent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewEventService(testLogger(), store)
	organizer := store.addProfile(domain.RoleOrganizer)
	other := store.addProfile(domain.RoleOrganizer)

	e, err := svc.Create(ctx, organizer, eventInput(time.Now().Add(time.Hour)))
	require.NoError(t, err)

	title := "Robotics Expo 2026"
	updated, err := svc.Update(ctx, organizer, e.ID, EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "Gandhi Auditorium", updated.Location)

	_, err = svc.Update(ctx, other, e.ID, EventPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	end := e.StartDate.Add(-time.Hour)
	_, err = svc.Update(ctx, organizer, e.ID, EventPatch{EndDate: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bogus := domain.EventStatus("archived")
	_, err = svc.Update(ctx, organizer, e.ID, EventPatch{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	published, err := svc.Publish(ctx, organizer, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusPublished, published.Status)

	assert.ErrorIs(t, svc.Delete(ctx, other, e.ID), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, organizer, e.ID))
	_, err = svc.Get(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventQueries(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewEventService(testLogger(), store)
	organizer := store.addProfile(domain.RoleOrganizer)
	now := time.Now()

	past := store.addEvent(organizer, now.Add(-48*time.Hour), now.Add(-47*time.Hour), 10)
	future := store.addEvent(organizer, now.Add(48*time.Hour), now.Add(50*time.Hour), 10)
	draft := store.addEvent(organizer, now.Add(72*time.Hour), now.Add(73*time.Hour), 10)
	draft.Status = domain.EventStatusDraft
	store.events[draft.ID] = draft

	upcoming, err := svc.Upcoming(ctx)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, future.ID, upcoming[0].ID)

	gone, err := svc.Past(ctx)
	require.NoError(t, err)
	require.Len(t, gone, 1)
	assert.Equal(t, past.ID, gone[0].ID)

	found, err := svc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = svc.Search(ctx, "meetup")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = svc.List(ctx, "archived", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	details, err := svc.Details(ctx, future.ID)
	require.NoError(t, err)
	require.NotNil(t, details.Organizer)
	assert.Equal(t, organizer, details.Organizer.UserID)

	orphan := store.addEvent(uuid.New(), now, now.Add(time.Hour), 5)
	details, err = svc.Details(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, details.Organizer)
}

func TestRegistration(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewRegistrationService(testLogger(), store)
	organizer := store.addProfile(domain.RoleOrganizer)
	event := store.addEvent(organizer, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), 1)

	first, second := uuid.New(), uuid.New()

	reg, err := svc.Register(ctx, first, event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusRegistered, reg.Status)

	_, err = svc.Register(ctx, first, event.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	_, err = svc.Register(ctx, second, event.ID)
	assert.ErrorIs(t, err, domain.ErrEventFull)

	_, err = svc.Register(ctx, second, uuid.New())
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	assert.ErrorIs(t, svc.Cancel(ctx, second, event.ID), domain.ErrRegistrationNotFound)
	require.NoError(t, svc.Cancel(ctx, first, event.ID))

	_, err = svc.Register(ctx, second, event.ID)
	require.NoError(t, err, "cancelled seat is free again")

	mine, err := svc.MyRegistrations(ctx, first)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.RegistrationStatusCancelled, mine[0].Status)
	assert.Equal(t, event.Title, mine[0].Event.Title)

	delete(store.events, event.ID)
	mine, err = svc.MyRegistrations(ctx, first)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewSessionService(testLogger(), store)
	organizer := store.addProfile(domain.RoleOrganizer)
	other := store.addProfile(domain.RoleOrganizer)
	start := time.Now().Add(24 * time.Hour)
	event := store.addEvent(organizer, start, start.Add(8*time.Hour), 100)

	in := SessionInput{
		EventID:     event.ID,
		Title:       "Opening keynote",
		SpeakerName: "Dr. Rao",
		StartTime:   start.Add(time.Hour),
		EndTime:     start.Add(2 * time.Hour),
		SessionType: domain.SessionTypeKeynote,
	}

	_, err := svc.Create(ctx, other, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	bad := in
	bad.SessionType = "lecture"
	_, err = svc.Create(ctx, organizer, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	late, err := svc.Create(ctx, organizer, in)
	require.NoError(t, err)

	early := in
	early.Title = "Registration desk"
	early.SessionType = domain.SessionTypeNetworking
	early.StartTime = start
	early.EndTime = start.Add(time.Hour)
	_, err = svc.Create(ctx, organizer, early)
	require.NoError(t, err)

	agenda, err := svc.ByEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, agenda, 2)
	assert.Equal(t, "Registration desk", agenda[0].Title)

	panel := domain.SessionTypePanel
	updated, err := svc.Update(ctx, organizer, late.ID, SessionPatch{SessionType: &panel})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionTypePanel, updated.SessionType)

	assert.ErrorIs(t, svc.Delete(ctx, other, late.ID), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, organizer, late.ID))
	assert.ErrorIs(t, svc.Delete(ctx, organizer, late.ID), domain.ErrSessionNotFound)
}
