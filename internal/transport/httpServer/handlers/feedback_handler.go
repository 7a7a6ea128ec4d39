package handlers

import (
	"log/slog"
	"net/http"

	"campusEvents/internal/transport/httpServer/handlers/dto"
)

// FeedbackHandler обслуживает отзывы и отчёты по событиям.
type FeedbackHandler struct {
	service FeedbackService
	log     *slog.Logger
}

// NewFeedbackHandler создаёт новый экземпляр FeedbackHandler.
func NewFeedbackHandler(log *slog.Logger, service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		log:     log,
	}
}

// Submit обрабатывает POST /api/v1/events/{eventId}/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.Submit()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	feedback, err := h.service.Submit(r.Context(), userID, dto.MapSubmitFeedbackRequest(eventID, req))
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusCreated, dto.MapDomainToFeedbackResponse(feedback))
}

// EventFeedback обрабатывает GET /api/v1/events/{eventId}/feedback
func (h *FeedbackHandler) EventFeedback(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.EventFeedback()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	result, err := h.service.EventFeedback(r.Context(), userID, eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapEventFeedback(result))
}

// Submitted обрабатывает GET /api/v1/events/{eventId}/feedback/submitted
func (h *FeedbackHandler) Submitted(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.Submitted()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	submitted, err := h.service.HasSubmitted(r.Context(), userID, eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.SubmittedResponse{Submitted: submitted})
}

// Mine обрабатывает GET /api/v1/feedback/mine
func (h *FeedbackHandler) Mine(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.Mine()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	items, err := h.service.MyFeedback(r.Context(), userID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapFeedbackWithEventList(items))
}

// GenerateSummary обрабатывает POST /api/v1/events/{eventId}/feedback/summary
func (h *FeedbackHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.GenerateSummary()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	summary, err := h.service.GenerateSummary(r.Context(), userID, eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusCreated, dto.MapDomainToFeedbackSummaryResponse(summary))
}

// LatestSummary обрабатывает GET /api/v1/events/{eventId}/feedback/summary
func (h *FeedbackHandler) LatestSummary(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.LatestSummary()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	summary, err := h.service.LatestSummary(r.Context(), userID, eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToFeedbackSummaryResponse(summary))
}

// GenerateSeminarSummary обрабатывает POST /api/v1/events/{eventId}/seminar-summary
func (h *FeedbackHandler) GenerateSeminarSummary(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.GenerateSeminarSummary()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	summary, err := h.service.GenerateSeminarSummary(r.Context(), userID, eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusCreated, dto.MapDomainToSeminarSummaryResponse(summary))
}

// SeminarSummary обрабатывает GET /api/v1/events/{eventId}/seminar-summary
func (h *FeedbackHandler) SeminarSummary(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.SeminarSummary()"
	log := h.log.With(slog.String("op", op))

	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	summary, err := h.service.SeminarSummary(r.Context(), eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToSeminarSummaryResponse(summary))
}

// PublishSeminarSummary обрабатывает POST /api/v1/seminar-summaries/{summaryId}/publish
func (h *FeedbackHandler) PublishSeminarSummary(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.PublishSeminarSummary()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	summaryID, err := uuidParam(r, "summaryId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	if err := h.service.PublishSeminarSummary(r.Context(), userID, summaryID); err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, map[string]string{"status": "ok"})
}

// PublishedSeminarSummaries обрабатывает GET /api/v1/seminar-summaries/published
func (h *FeedbackHandler) PublishedSeminarSummaries(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.FeedbackHandler.PublishedSeminarSummaries()"
	log := h.log.With(slog.String("op", op))

	items, err := h.service.PublishedSeminarSummaries(r.Context())
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapSeminarSummariesWithEvent(items))
}
