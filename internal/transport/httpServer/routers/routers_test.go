package routers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusEvents/internal/assistant"
	"campusEvents/internal/auth"
	"campusEvents/internal/halls"
	"campusEvents/internal/models/domain"
	"campusEvents/internal/services"
	"campusEvents/internal/transport/httpServer/handlers"
	"campusEvents/internal/transport/httpServer/routers"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProposals struct {
	handlers.ProposalService

	submittedBy uuid.UUID
	submitted   domain.ProposalInput
	decideErr   error
}

func (f *fakeProposals) Submit(_ context.Context, actor uuid.UUID, in domain.ProposalInput) (domain.Proposal, error) {
	f.submittedBy = actor
	f.submitted = in
	return domain.NewProposal(uuid.New(), actor, in, time.Now()), nil
}

func (f *fakeProposals) UpdateStatus(_ context.Context, _, id uuid.UUID, status domain.ProposalStatus, _ string) (domain.Proposal, error) {
	if f.decideErr != nil {
		return domain.Proposal{}, f.decideErr
	}
	return domain.Proposal{ID: id, Status: status, WorkflowStatus: domain.WorkflowStatusPending}, nil
}

type fakeEvents struct {
	handlers.EventService

	listStatus domain.EventStatus
	listLimit  int
}

func (f *fakeEvents) List(_ context.Context, status domain.EventStatus, limit int) ([]domain.Event, error) {
	f.listStatus = status
	f.listLimit = limit
	return []domain.Event{{ID: uuid.New(), Title: "Go Meetup", Status: domain.EventStatusPublished}}, nil
}

func (f *fakeEvents) Get(context.Context, uuid.UUID) (domain.Event, error) {
	return domain.Event{}, domain.ErrEventNotFound
}

type fakeProfiles struct {
	handlers.ProfileService
}

func (fakeProfiles) AdminLogin(_ context.Context, username, password string) (string, error) {
	if username == "admin" && password == "secret" {
		return "token-123", nil
	}
	return "", domain.ErrUnauthenticated
}

type fakeContent struct {
	handlers.ContentGenerator
}

type testEnv struct {
	mux       *chi.Mux
	tokens    *auth.Tokens
	proposals *fakeProposals
	events    *fakeEvents
}

func newTestEnv() *testEnv {
	log := slog.New(slog.DiscardHandler)
	tokens := auth.NewTokens("test-secret", time.Hour)
	proposals := &fakeProposals{}
	events := &fakeEvents{}

	router := routers.NewRouter(log, tokens, routers.Handlers{
		Profile:      handlers.NewProfileHandler(log, fakeProfiles{}),
		Proposal:     handlers.NewProposalHandler(log, proposals),
		Event:        handlers.NewEventHandler(log, events),
		Registration: handlers.NewRegistrationHandler(log, nil),
		Session:      handlers.NewSessionHandler(log, nil),
		Feedback:     handlers.NewFeedbackHandler(log, nil),
		AI:           handlers.NewAIHandler(log, fakeContent{}, halls.NewSelector(log, nil), nil),
	})

	mux := chi.NewRouter()
	router.Mount(mux)
	return &testEnv{mux: mux, tokens: tokens, proposals: proposals, events: events}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, user uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if user != uuid.Nil {
		token, err := e.tokens.Issue(user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func TestHeartbeat(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/ping", nil, uuid.Nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitProposal(t *testing.T) {
	env := newTestEnv()
	body := map[string]any{
		"title":              "Cloud Workshop",
		"description":        "Hands-on",
		"category":           "Workshop",
		"expected_attendees": 40,
		"preferred_date":     "2026-11-20T10:00:00Z",
		"duration_hours":     3,
	}

	t.Run("requires a token", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/proposals", body, uuid.Nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("created", func(t *testing.T) {
		user := uuid.New()
		rec := env.do(t, http.MethodPost, "/api/v1/proposals", body, user)
		require.Equal(t, http.StatusCreated, rec.Code)

		assert.Equal(t, user, env.proposals.submittedBy)
		assert.Equal(t, "Cloud Workshop", env.proposals.submitted.Title)
		assert.Equal(t, 40, env.proposals.submitted.ExpectedAttendees)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "submitted", resp["status"])
		assert.Equal(t, "pending", resp["workflow_status"])
		assert.Nil(t, resp["hall_availability"])
	})

	t.Run("bad json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/proposals", bytes.NewBufferString("{"))
		token, _ := env.tokens.Issue(uuid.New())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateProposalStatus(t *testing.T) {
	env := newTestEnv()
	path := "/api/v1/proposals/" + uuid.NewString() + "/status"

	rec := env.do(t, http.MethodPut, path, map[string]string{"status": "submitted"}, uuid.New())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, path, map[string]string{"status": "approved"}, uuid.New())
	assert.Equal(t, http.StatusOK, rec.Code)

	env.proposals.decideErr = domain.ErrInvalidState
	rec = env.do(t, http.MethodPut, path, map[string]string{"status": "rejected"}, uuid.New())
	assert.Equal(t, http.StatusConflict, rec.Code)

	env.proposals.decideErr = domain.ErrForbidden
	rec = env.do(t, http.MethodPut, path, map[string]string{"status": "approved"}, uuid.New())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetEvents(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/events?status=bogus", nil, uuid.Nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/events?limit=0", nil, uuid.Nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/events?status=published&limit=5", nil, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.EventStatusPublished, env.events.listStatus)
	assert.Equal(t, 5, env.events.listLimit)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Go Meetup", resp[0]["title"])
	assert.Equal(t, []any{}, resp[0]["tags"])
}

func TestGetEventNotFound(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/events/"+uuid.NewString(), nil, uuid.Nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/events/not-a-uuid", nil, uuid.Nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/auth/admin/login", map[string]string{"username": "admin", "password": "secret"}, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "token-123", resp["access_token"])
	assert.Equal(t, "Bearer", resp["token_type"])

	rec = env.do(t, http.MethodPost, "/api/v1/auth/admin/login", map[string]string{"username": "admin", "password": "nope"}, uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHalls(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/halls", nil, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, len(halls.Catalog()))

	rec = env.do(t, http.MethodPost, "/api/v1/halls/select", map[string]any{
		"event_type":        "Technical",
		"participant_count": 120,
	}, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, true, result["success"])
	assert.NotNil(t, result["recommendation"])

	rec = env.do(t, http.MethodPost, "/api/v1/halls/select", map[string]any{"participant_count": 0}, uuid.Nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSocialPostRejectsUnknownPlatform(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/ai/social-post", map[string]string{"title": "x", "platform": "myspace"}, uuid.New())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/ai/social-post", map[string]string{"title": "x", "platform": "twitter"}, uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

var (
	_ handlers.ProfileService        = (*services.ProfileService)(nil)
	_ handlers.ProposalService       = (*services.ProposalService)(nil)
	_ handlers.EventService          = (*services.EventService)(nil)
	_ handlers.RegistrationService   = (*services.RegistrationService)(nil)
	_ handlers.SessionService        = (*services.SessionService)(nil)
	_ handlers.FeedbackService       = (*services.FeedbackService)(nil)
	_ handlers.RecommendationService = (*services.RecommendationService)(nil)
	_ handlers.ContentGenerator      = (*assistant.Assistant)(nil)
	_ handlers.HallSelector          = (*halls.Selector)(nil)
)
