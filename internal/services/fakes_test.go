package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/orchestrator"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the PostgreSQL repository.
type fakeStore struct {
	profiles      map[uuid.UUID]domain.Profile
	proposals     map[uuid.UUID]domain.Proposal
	events        map[uuid.UUID]domain.Event
	registrations map[uuid.UUID]domain.Registration
	sessions      map[uuid.UUID]domain.Session
	feedback      []domain.Feedback
	fbSummaries   []domain.FeedbackSummary
	seminars      map[uuid.UUID]domain.SeminarSummary
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:      make(map[uuid.UUID]domain.Profile),
		proposals:     make(map[uuid.UUID]domain.Proposal),
		events:        make(map[uuid.UUID]domain.Event),
		registrations: make(map[uuid.UUID]domain.Registration),
		sessions:      make(map[uuid.UUID]domain.Session),
		seminars:      make(map[uuid.UUID]domain.SeminarSummary),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func (f *fakeStore) addProfile(role domain.Role) uuid.UUID {
	id := uuid.New()
	f.profiles[id] = domain.Profile{
		ID:        uuid.New(),
		UserID:    id,
		Role:      role,
		FirstName: "Test",
		LastName:  string(role),
		Email:     string(role) + "@campus.edu",
	}
	return id
}

func (f *fakeStore) addEvent(organizer uuid.UUID, start, end time.Time, maxAttendees int) domain.Event {
	e := domain.Event{
		ID:           uuid.New(),
		OrganizerID:  organizer,
		Title:        "Go Meetup",
		Category:     "Technology",
		StartDate:    start,
		EndDate:      end,
		Location:     "Nehru Hall",
		MaxAttendees: maxAttendees,
		Status:       domain.EventStatusPublished,
	}
	f.events[e.ID] = e
	return e
}

// profiles

func (f *fakeStore) CreateProfile(_ context.Context, p domain.Profile) (domain.Profile, error) {
	if _, ok := f.profiles[p.UserID]; ok {
		return domain.Profile{}, domain.ErrProfileExists
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.profiles[p.UserID] = p
	return p, nil
}

func (f *fakeStore) UpsertProfile(_ context.Context, p domain.Profile) (domain.Profile, error) {
	if existing, ok := f.profiles[p.UserID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = uuid.New()
	}
	f.profiles[p.UserID] = p
	return p, nil
}

func (f *fakeStore) FindProfileByUserID(_ context.Context, userID uuid.UUID) (domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, p domain.Profile) (domain.Profile, error) {
	if _, ok := f.profiles[p.UserID]; !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	f.profiles[p.UserID] = p
	return p, nil
}

// proposals

func (f *fakeStore) CreateProposal(_ context.Context, p domain.Proposal) (domain.Proposal, error) {
	f.proposals[p.ID] = p
	return p, nil
}

func (f *fakeStore) FindProposalByID(_ context.Context, id uuid.UUID) (domain.Proposal, error) {
	p, ok := f.proposals[id]
	if !ok {
		return domain.Proposal{}, domain.ErrProposalNotFound
	}
	return p, nil
}

func (f *fakeStore) withOrganizer(p domain.Proposal) domain.ProposalWithOrganizer {
	return domain.ProposalWithOrganizer{Proposal: p, OrganizerName: f.profiles[p.OrganizerID].DisplayName()}
}

func (f *fakeStore) FindProposalWithOrganizer(ctx context.Context, id uuid.UUID) (domain.ProposalWithOrganizer, error) {
	p, err := f.FindProposalByID(ctx, id)
	if err != nil {
		return domain.ProposalWithOrganizer{}, err
	}
	return f.withOrganizer(p), nil
}

func (f *fakeStore) FindProposalsByOrganizer(_ context.Context, organizerID uuid.UUID) ([]domain.Proposal, error) {
	var out []domain.Proposal
	for _, p := range f.proposals {
		if p.OrganizerID == organizerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) ListProposalsWithOrganizer(_ context.Context, status domain.ProposalStatus) ([]domain.ProposalWithOrganizer, error) {
	var out []domain.ProposalWithOrganizer
	for _, p := range f.proposals {
		if status == "" || p.Status == status {
			out = append(out, f.withOrganizer(p))
		}
	}
	return out, nil
}

func (f *fakeStore) DecideProposal(_ context.Context, p domain.Proposal) error {
	stored, ok := f.proposals[p.ID]
	if !ok {
		return domain.ErrProposalNotFound
	}
	if stored.Status != domain.ProposalStatusSubmitted {
		return domain.ErrInvalidState
	}
	stored.Status = p.Status
	stored.ReviewedAt = p.ReviewedAt
	stored.ReviewedBy = p.ReviewedBy
	stored.AdminComments = p.AdminComments
	f.proposals[p.ID] = stored
	return nil
}

func (f *fakeStore) ResetWorkflow(_ context.Context, id uuid.UUID, at time.Time) error {
	p, ok := f.proposals[id]
	if !ok {
		return domain.ErrProposalNotFound
	}
	if p.WorkflowStatus != domain.WorkflowStatusFailed {
		return domain.ErrInvalidState
	}
	p.WorkflowStatus = domain.WorkflowStatusPending
	p.WorkflowError = ""
	p.WorkflowAttempts = 0
	p.WorkflowRequestedAt = at
	p.WorkflowCompletedAt = nil
	f.proposals[id] = p
	return nil
}

// events

func (f *fakeStore) CreateEvent(_ context.Context, e domain.Event) (domain.Event, error) {
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeStore) FindEventByID(_ context.Context, id uuid.UUID) (domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return e, nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, e domain.Event) (domain.Event, error) {
	if _, ok := f.events[e.ID]; !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, id uuid.UUID) error {
	if _, ok := f.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) filterEvents(keep func(domain.Event) bool) []domain.Event {
	var out []domain.Event
	for _, e := range f.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func (f *fakeStore) ListEvents(_ context.Context, status domain.EventStatus, limit int) ([]domain.Event, error) {
	out := f.filterEvents(func(e domain.Event) bool { return status == "" || e.Status == status })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) FindEventsByOrganizer(_ context.Context, organizerID uuid.UUID) ([]domain.Event, error) {
	return f.filterEvents(func(e domain.Event) bool { return e.OrganizerID == organizerID }), nil
}

func (f *fakeStore) FindEventsByCategory(_ context.Context, category string) ([]domain.Event, error) {
	return f.filterEvents(func(e domain.Event) bool {
		return e.Category == category && e.Status == domain.EventStatusPublished
	}), nil
}

func (f *fakeStore) FindUpcomingEvents(_ context.Context, now time.Time, limit int) ([]domain.Event, error) {
	out := f.filterEvents(func(e domain.Event) bool {
		return e.Status == domain.EventStatusPublished && e.StartDate.After(now)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) FindPastEvents(_ context.Context, now time.Time) ([]domain.Event, error) {
	return f.filterEvents(func(e domain.Event) bool {
		return e.Status == domain.EventStatusPublished && e.EndDate.Before(now)
	}), nil
}

func (f *fakeStore) SearchEvents(_ context.Context, term string) ([]domain.Event, error) {
	term = strings.ToLower(term)
	return f.filterEvents(func(e domain.Event) bool {
		return e.Status == domain.EventStatusPublished && strings.Contains(strings.ToLower(e.Title), term)
	}), nil
}

func (f *fakeStore) FindEventsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Event, error) {
	out := make(map[uuid.UUID]domain.Event)
	for _, id := range ids {
		if e, ok := f.events[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

// registrations

func (f *fakeStore) CreateRegistration(_ context.Context, reg domain.Registration) (domain.Registration, error) {
	event, ok := f.events[reg.EventID]
	if !ok {
		return domain.Registration{}, domain.ErrEventNotFound
	}
	registered := 0
	for _, r := range f.registrations {
		if r.EventID != reg.EventID {
			continue
		}
		if r.UserID == reg.UserID {
			return domain.Registration{}, domain.ErrAlreadyRegistered
		}
		if r.Status == domain.RegistrationStatusRegistered {
			registered++
		}
	}
	if registered >= event.MaxAttendees {
		return domain.Registration{}, domain.ErrEventFull
	}
	f.registrations[reg.ID] = reg
	return reg, nil
}

func (f *fakeStore) FindRegistration(_ context.Context, eventID, userID uuid.UUID) (domain.Registration, error) {
	for _, r := range f.registrations {
		if r.EventID == eventID && r.UserID == userID {
			return r, nil
		}
	}
	return domain.Registration{}, domain.ErrRegistrationNotFound
}

func (f *fakeStore) UpdateRegistrationStatus(_ context.Context, id uuid.UUID, status domain.RegistrationStatus) error {
	r, ok := f.registrations[id]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	r.Status = status
	f.registrations[id] = r
	return nil
}

func (f *fakeStore) FindRegistrationsByUser(_ context.Context, userID uuid.UUID) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, r := range f.registrations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CountRegistered(_ context.Context, eventID uuid.UUID) (int, error) {
	n := 0
	for _, r := range f.registrations {
		if r.EventID == eventID && r.Status == domain.RegistrationStatusRegistered {
			n++
		}
	}
	return n, nil
}

// sessions

func (f *fakeStore) CreateSession(_ context.Context, s domain.Session) (domain.Session, error) {
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeStore) FindSessionByID(_ context.Context, id uuid.UUID) (domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeStore) FindSessionsByEvent(_ context.Context, eventID uuid.UUID) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range f.sessions {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeStore) UpdateSession(_ context.Context, s domain.Session) (domain.Session, error) {
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	delete(f.sessions, id)
	return nil
}

// feedback

func (f *fakeStore) CreateFeedback(_ context.Context, fb domain.Feedback) (domain.Feedback, error) {
	for _, existing := range f.feedback {
		if existing.EventID == fb.EventID && existing.UserID == fb.UserID {
			return domain.Feedback{}, domain.ErrFeedbackExists
		}
	}
	f.feedback = append(f.feedback, fb)
	return fb, nil
}

func (f *fakeStore) FeedbackExists(_ context.Context, eventID, userID uuid.UUID) (bool, error) {
	return slices.ContainsFunc(f.feedback, func(fb domain.Feedback) bool {
		return fb.EventID == eventID && fb.UserID == userID
	}), nil
}

func (f *fakeStore) FindFeedbackByEvent(_ context.Context, eventID uuid.UUID) ([]domain.Feedback, error) {
	var out []domain.Feedback
	for _, fb := range f.feedback {
		if fb.EventID == eventID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeStore) FindFeedbackByUser(_ context.Context, userID uuid.UUID) ([]domain.Feedback, error) {
	var out []domain.Feedback
	for _, fb := range f.feedback {
		if fb.UserID == userID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateFeedbackSummary(_ context.Context, s domain.FeedbackSummary) (domain.FeedbackSummary, error) {
	f.fbSummaries = append(f.fbSummaries, s)
	return s, nil
}

func (f *fakeStore) FindLatestFeedbackSummary(_ context.Context, eventID uuid.UUID) (domain.FeedbackSummary, error) {
	for i := len(f.fbSummaries) - 1; i >= 0; i-- {
		if f.fbSummaries[i].EventID == eventID {
			return f.fbSummaries[i], nil
		}
	}
	return domain.FeedbackSummary{}, domain.ErrSummaryNotFound
}

func (f *fakeStore) CreateSeminarSummary(_ context.Context, s domain.SeminarSummary) (domain.SeminarSummary, error) {
	f.seminars[s.ID] = s
	return s, nil
}

func (f *fakeStore) FindSeminarSummaryByID(_ context.Context, id uuid.UUID) (domain.SeminarSummary, error) {
	s, ok := f.seminars[id]
	if !ok {
		return domain.SeminarSummary{}, domain.ErrSummaryNotFound
	}
	return s, nil
}

func (f *fakeStore) FindLatestSeminarSummary(_ context.Context, eventID uuid.UUID) (domain.SeminarSummary, error) {
	var latest *domain.SeminarSummary
	for _, s := range f.seminars {
		if s.EventID == eventID && (latest == nil || s.GeneratedAt.After(latest.GeneratedAt)) {
			latest = &s
		}
	}
	if latest == nil {
		return domain.SeminarSummary{}, domain.ErrSummaryNotFound
	}
	return *latest, nil
}

func (f *fakeStore) PublishSeminarSummary(_ context.Context, id uuid.UUID) error {
	s, ok := f.seminars[id]
	if !ok {
		return domain.ErrSummaryNotFound
	}
	s.IsPublished = true
	f.seminars[id] = s
	return nil
}

func (f *fakeStore) FindPublishedSeminarSummaries(_ context.Context, limit int) ([]domain.SeminarSummary, error) {
	var out []domain.SeminarSummary
	for _, s := range f.seminars {
		if s.IsPublished {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type queuedJob struct {
	kind orchestrator.JobKind
	id   uuid.UUID
}

type fakeQueue struct {
	jobs []queuedJob
	err  error
}

func (q *fakeQueue) AddJob(kind orchestrator.JobKind, id uuid.UUID) (chan struct{}, error) {
	if q.err != nil {
		return nil, fmt.Errorf("AddJob: %w", q.err)
	}
	q.jobs = append(q.jobs, queuedJob{kind: kind, id: id})
	done := make(chan struct{})
	close(done)
	return done, nil
}
