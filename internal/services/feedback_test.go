package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusEvents/internal/assistant"
	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenAnalyzer struct {
	*assistant.Assistant
}

func (brokenAnalyzer) SeminarReport(context.Context, domain.Event, domain.VenueTelemetry, int) (string, error) {
	return "", errors.New("upstream 503")
}

func newFeedbackFixture() (*FeedbackService, *fakeStore) {
	store := newFakeStore()
	svc := NewFeedbackService(testLogger(), store, assistant.New(testLogger(), nil))
	svc.intn = func(int) int { return 0 }
	return svc, store
}

func register(t *testing.T, store *fakeStore, eventID, userID uuid.UUID) {
	t.Helper()
	_, err := store.CreateRegistration(context.Background(), domain.Registration{
		ID:      uuid.New(),
		EventID: eventID,
		UserID:  userID,
		Status:  domain.RegistrationStatusRegistered,
	})
	require.NoError(t, err)
}

func TestSubmitFeedback(t *testing.T) {
	ctx := context.Background()
	svc, store := newFeedbackFixture()
	organizer := store.addProfile(domain.RoleOrganizer)
	attendee := store.addProfile(domain.RoleAttendee)
	stranger := store.addProfile(domain.RoleAttendee)
	event := store.addEvent(organizer, time.Now().Add(-3*time.Hour), time.Now().Add(-time.Hour), 50)
	register(t, store, event.ID, attendee)

	_, err := svc.Submit(ctx, uuid.New(), FeedbackInput{EventID: event.ID, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = svc.Submit(ctx, stranger, FeedbackInput{EventID: event.ID, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrNotRegistered)

	_, err = svc.Submit(ctx, attendee, FeedbackInput{EventID: event.ID, Rating: 6})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fb, err := svc.Submit(ctx, attendee, FeedbackInput{EventID: event.ID, Rating: 4, Comments: " great "})
	require.NoError(t, err)
	assert.Equal(t, domain.FeedbackCategories{Content: 4, Speaker: 4, Organization: 4, Venue: 4}, fb.Categories)
	assert.True(t, fb.WouldRecommend)
	assert.Equal(t, "great", fb.Comments)

	_, err = svc.Submit(ctx, attendee, FeedbackInput{EventID: event.ID, Rating: 2})
	assert.ErrorIs(t, err, domain.ErrFeedbackExists)

	submitted, err := svc.HasSubmitted(ctx, attendee, event.ID)
	require.NoError(t, err)
	assert.True(t, submitted)

	mine, err := svc.MyFeedback(ctx, attendee)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Event)
	assert.Equal(t, event.ID, mine[0].Event.ID)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats([]domain.Feedback{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.Equal(t, 3, stats.TotalResponses)
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, stats.RatingDistribution)

	empty := ComputeStats(nil)
	assert.Zero(t, empty.AverageRating)
	assert.Len(t, empty.RatingDistribution, 5)
}

func TestEventFeedbackAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, store := newFeedbackFixture()
	organizer := store.addProfile(domain.RoleOrganizer)
	attendee := store.addProfile(domain.RoleAttendee)
	event := store.addEvent(organizer, time.Now().Add(-3*time.Hour), time.Now().Add(-time.Hour), 50)

	_, err := svc.GenerateSummary(ctx, organizer, event.ID)
	assert.ErrorIs(t, err, domain.ErrNoFeedback)

	register(t, store, event.ID, attendee)
	_, err = svc.Submit(ctx, attendee, FeedbackInput{EventID: event.ID, Rating: 3})
	require.NoError(t, err)

	_, err = svc.EventFeedback(ctx, attendee, event.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	view, err := svc.EventFeedback(ctx, organizer, event.ID)
	require.NoError(t, err)
	assert.Len(t, view.Feedback, 1)
	assert.Equal(t, 3.0, view.Stats.AverageRating)

	summary, err := svc.GenerateSummary(ctx, organizer, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalResponses)
	assert.NotEmpty(t, summary.PositivePoints)
	assert.Contains(t, summary.RawSummary, "Based on 1 responses")

	latest, err := svc.LatestSummary(ctx, organizer, event.ID)
	require.NoError(t, err)
	assert.Equal(t, summary.ID, latest.ID)
}

func TestSeminarScore(t *testing.T) {
	tests := []struct {
		name       string
		telemetry  domain.VenueTelemetry
		max        int
		efficiency int
		want       int
	}{
		{
			name:       "half full",
			telemetry:  domain.VenueTelemetry{AttendanceCount: 50, AirQuality: 50, MicUsage: 80},
			max:        100,
			efficiency: 90,
			// 15 + 18 + 10 + 24
			want: 67,
		},
		{
			name:       "capped",
			telemetry:  domain.VenueTelemetry{AttendanceCount: 400, AirQuality: 0, MicUsage: 100},
			max:        100,
			efficiency: 100,
			want:       100,
		},
		{
			name:       "no capacity",
			telemetry:  domain.VenueTelemetry{AttendanceCount: 10, AirQuality: 100, MicUsage: 60},
			max:        0,
			efficiency: 85,
			want:       35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeminarScore(tt.telemetry, tt.max, tt.efficiency))
		})
	}
}

func TestGenerateSeminarSummary(t *testing.T) {
	ctx := context.Background()
	svc, store := newFeedbackFixture()
	organizer := store.addProfile(domain.RoleOrganizer)
	other := store.addProfile(domain.RoleOrganizer)
	now := time.Now()
	ongoing := store.addEvent(organizer, now.Add(-time.Hour), now.Add(time.Hour), 10)
	ended := store.addEvent(organizer, now.Add(-5*time.Hour), now.Add(-time.Hour), 10)
	register(t, store, ended.ID, uuid.New())
	register(t, store, ended.ID, uuid.New())

	_, err := svc.GenerateSeminarSummary(ctx, organizer, ongoing.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotEnded)

	_, err = svc.GenerateSeminarSummary(ctx, other, ended.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	summary, err := svc.GenerateSeminarSummary(ctx, organizer, ended.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VenueTelemetry{
		Temperature:       22,
		AttendanceCount:   2,
		MicUsage:          60,
		EnergyConsumption: 150,
		Duration:          4,
		AirQuality:        50,
		InternetUsage:     500,
	}, summary.IoTData)
	assert.Equal(t, 85, summary.EnergyEfficiency)
	// 20*0.3 + 85*0.2 + 50*0.2 + 60*0.3 = 6 + 17 + 10 + 18
	assert.Equal(t, 51, summary.OverallScore)
	assert.Contains(t, summary.SummaryText, "with 2 attendees out of 10")
	assert.False(t, summary.IsPublished)

	assert.ErrorIs(t, svc.PublishSeminarSummary(ctx, other, summary.ID), domain.ErrForbidden)
	require.NoError(t, svc.PublishSeminarSummary(ctx, organizer, summary.ID))

	published, err := svc.PublishedSeminarSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.NotNil(t, published[0].Event)
	assert.Equal(t, ended.ID, published[0].Event.ID)

	latest, err := svc.SeminarSummary(ctx, ended.ID)
	require.NoError(t, err)
	assert.Equal(t, summary.ID, latest.ID)
}

func TestGenerateSeminarSummaryReportFailure(t *testing.T) {
	store := newFakeStore()
	svc := NewFeedbackService(testLogger(), store, brokenAnalyzer{assistant.New(testLogger(), nil)})
	organizer := store.addProfile(domain.RoleOrganizer)
	ended := store.addEvent(organizer, time.Now().Add(-5*time.Hour), time.Now().Add(-time.Hour), 10)

	_, err := svc.GenerateSeminarSummary(context.Background(), organizer, ended.ID)
	assert.Error(t, err)
	assert.Empty(t, store.seminars)
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewRecommendationService(testLogger(), store, assistant.New(testLogger(), nil))
	organizer := store.addProfile(domain.RoleOrganizer)
	user := store.addProfile(domain.RoleAttendee)
	profile := store.profiles[user]
	profile.Interests = []string{"technology"}
	store.profiles[user] = profile

	now := time.Now()
	booked := store.addEvent(organizer, now.Add(time.Hour), now.Add(2*time.Hour), 10)
	open := store.addEvent(organizer, now.Add(3*time.Hour), now.Add(4*time.Hour), 10)
	register(t, store, booked.ID, user)

	result, err := svc.Recommend(ctx, user)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, open.ID, result.Recommendations[0].EventID)

	_, err = svc.Recommend(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
