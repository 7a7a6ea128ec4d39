package routers

import (
	"log/slog"

	"campusEvents/internal/transport/httpServer/handlers"
	myMiddleware "campusEvents/internal/transport/httpServer/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Router struct {
	log                 *slog.Logger
	tokens              myMiddleware.TokenParser
	profileHandler      *handlers.ProfileHandler
	proposalHandler     *handlers.ProposalHandler
	eventHandler        *handlers.EventHandler
	registrationHandler *handlers.RegistrationHandler
	sessionHandler      *handlers.SessionHandler
	feedbackHandler     *handlers.FeedbackHandler
	aiHandler           *handlers.AIHandler
}

type Handlers struct {
	Profile      *handlers.ProfileHandler
	Proposal     *handlers.ProposalHandler
	Event        *handlers.EventHandler
	Registration *handlers.RegistrationHandler
	Session      *handlers.SessionHandler
	Feedback     *handlers.FeedbackHandler
	AI           *handlers.AIHandler
}

func NewRouter(log *slog.Logger, tokens myMiddleware.TokenParser, h Handlers) *Router {
	return &Router{
		log:                 log,
		tokens:              tokens,
		profileHandler:      h.Profile,
		proposalHandler:     h.Proposal,
		eventHandler:        h.Event,
		registrationHandler: h.Registration,
		sessionHandler:      h.Session,
		feedbackHandler:     h.Feedback,
		aiHandler:           h.AI,
	}
}

func (r *Router) Mount(mux *chi.Mux) {

	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(myMiddleware.LoggerMiddleware(r.log))
	mux.Use(middleware.Heartbeat("/ping"))

	authenticated := myMiddleware.Authenticate(r.log, r.tokens)

	mux.Route("/api", func(mux chi.Router) {
		mux.Route("/v1", func(mux chi.Router) {
			mux.Post("/auth/admin/login", r.profileHandler.AdminLogin)

			mux.Route("/profiles", func(mux chi.Router) {
				mux.Use(authenticated)
				mux.Post("/", r.profileHandler.Create)
				mux.Get("/me", r.profileHandler.Me)
				mux.Patch("/me", r.profileHandler.UpdateMe)
				mux.Get("/{userId}", r.profileHandler.Get)
			})

			mux.Route("/proposals", func(mux chi.Router) {
				mux.Use(authenticated)
				mux.Post("/", r.proposalHandler.Submit)
				mux.Get("/", r.proposalHandler.List)
				mux.Get("/mine", r.proposalHandler.Mine)
				mux.Get("/{proposalId}", r.proposalHandler.Get)
				mux.Put("/{proposalId}/status", r.proposalHandler.UpdateStatus)
				mux.Post("/{proposalId}/retrigger", r.proposalHandler.Retrigger)
			})

			mux.Route("/events", func(mux chi.Router) {
				mux.Get("/", r.eventHandler.GetEvents)
				mux.Get("/published", r.eventHandler.Published)
				mux.Get("/upcoming", r.eventHandler.Upcoming)
				mux.Get("/past", r.eventHandler.Past)
				mux.Get("/search", r.eventHandler.Search)
				mux.Get("/category/{category}", r.eventHandler.ByCategory)
				mux.Get("/{eventId}", r.eventHandler.GetEvent)
				mux.Get("/{eventId}/details", r.eventHandler.Details)
				mux.Get("/{eventId}/sessions", r.sessionHandler.ByEvent)
				mux.Get("/{eventId}/seminar-summary", r.feedbackHandler.SeminarSummary)

				mux.Group(func(mux chi.Router) {
					mux.Use(authenticated)
					mux.Post("/", r.eventHandler.Create)
					mux.Get("/mine", r.eventHandler.Mine)
					mux.Patch("/{eventId}", r.eventHandler.ChangeEvent)
					mux.Delete("/{eventId}", r.eventHandler.Delete)
					mux.Post("/{eventId}/publish", r.eventHandler.Publish)

					mux.Post("/{eventId}/registration", r.registrationHandler.Register)
					mux.Delete("/{eventId}/registration", r.registrationHandler.Cancel)

					mux.Post("/{eventId}/sessions", r.sessionHandler.Create)

					mux.Post("/{eventId}/feedback", r.feedbackHandler.Submit)
					mux.Get("/{eventId}/feedback", r.feedbackHandler.EventFeedback)
					mux.Get("/{eventId}/feedback/submitted", r.feedbackHandler.Submitted)
					mux.Post("/{eventId}/feedback/summary", r.feedbackHandler.GenerateSummary)
					mux.Get("/{eventId}/feedback/summary", r.feedbackHandler.LatestSummary)
					mux.Post("/{eventId}/seminar-summary", r.feedbackHandler.GenerateSeminarSummary)
				})
			})

			mux.Group(func(mux chi.Router) {
				mux.Use(authenticated)
				mux.Get("/registrations/mine", r.registrationHandler.Mine)
				mux.Patch("/sessions/{sessionId}", r.sessionHandler.Update)
				mux.Delete("/sessions/{sessionId}", r.sessionHandler.Delete)
				mux.Get("/feedback/mine", r.feedbackHandler.Mine)
				mux.Post("/seminar-summaries/{summaryId}/publish", r.feedbackHandler.PublishSeminarSummary)
			})

			mux.Get("/seminar-summaries/published", r.feedbackHandler.PublishedSeminarSummaries)

			mux.Get("/halls", r.aiHandler.Halls)
			mux.Post("/halls/select", r.aiHandler.SelectHall)

			mux.Route("/ai", func(mux chi.Router) {
				mux.Use(authenticated)
				mux.Get("/recommendations", r.aiHandler.Recommendations)
				mux.Post("/event-description", r.aiHandler.EventDescription)
				mux.Post("/proposal-description", r.aiHandler.ProposalDescription)
				mux.Post("/proposal-tags", r.aiHandler.ProposalTags)
				mux.Post("/social-post", r.aiHandler.SocialPost)
				mux.Post("/session-summary", r.aiHandler.SessionSummary)
				mux.Post("/faq", r.aiHandler.FAQ)
			})
		})
	})
}
