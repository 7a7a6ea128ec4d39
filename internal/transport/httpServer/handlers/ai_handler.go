package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"campusEvents/internal/assistant"
	"campusEvents/internal/halls"
	"campusEvents/internal/transport/httpServer/handlers/dto"
)

// AIHandler обслуживает генераторы текста, каталог залов и рекомендации.
// Генераторы сообщают об ошибке в теле ответа со статусом 200.
type AIHandler struct {
	content   ContentGenerator
	selector  HallSelector
	recommend RecommendationService
	log       *slog.Logger
}

// NewAIHandler создаёт новый экземпляр AIHandler.
func NewAIHandler(log *slog.Logger, content ContentGenerator, selector HallSelector, recommend RecommendationService) *AIHandler {
	return &AIHandler{
		content:   content,
		selector:  selector,
		recommend: recommend,
		log:       log,
	}
}

// EventDescription обрабатывает POST /api/v1/ai/event-description
func (h *AIHandler) EventDescription(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.AIHandler.EventDescription()"
	log := h.log.With(slog.String("op", op))

	var req dto.EventDescriptionRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(log, fmt.Errorf("title is required"), w, http.StatusBadRequest)
		return
	}

	result := h.content.EventDescription(r.Context(), assistant.EventDescriptionInput{
		Title:            req.Title,
		Category:         req.Category,
		BasicDescription: req.BasicDescription,
		TargetAudience:   req.TargetAudience,
	})
	respond(log, w, http.StatusOK, dto.MapGeneratedContent(result))
}

// ProposalDescription обрабатывает POST /api/v1/ai/proposal-description
func (h *AIHandler) ProposalDescription(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.AIHandler.ProposalDescription()"
	log := h.log.With(slog.String("op", op))

	var req dto.ProposalDescriptionRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(log, fmt.Errorf("title is required"), w, http.StatusBadRequest)
		return
	}

	result := h.content.ProposalDescription(r.Context(), assistant.ProposalDescriptionInput{
		Title:              req.Title,
		Category:           req.Category,
		TargetAudience:     req.TargetAudience,
		LearningObjectives: req.LearningObjectives,
		Justification:      req.Justification,
	})
	respond(log, w, http.StatusOK, dto.MapGeneratedContent(result))
}

// ProposalTags обрабатывает POST /api/v1/ai/proposal-tags
func (h *AIHandler) ProposalTags(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.AIHandler.ProposalTags()"
	log := h.log.With(slog.String("op", op))

	var req dto.ProposalTagsRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	result := h.content.ProposalTags(r.Context(), assistant.TagsInput{
		Title:          req.Title,
		Category:       req.Category,
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
	})
	respond(log, w, http.StatusOK, dto.MapTagsResult(result))
}

// SocialPost обрабатывает POST /api/v1/ai/social-post
func (h *AIHandler) SocialPost(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.AIHandler.SocialPost()"
	log := h.log.With(slog.String("op", op))

	var req dto.SocialPostRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	platform := assistant.Platform(strings.ToLower(req.Platform))
	if !platform.Valid() {
		respondError(log, fmt.Errorf("unsupported platform: %s", req.Platform), w, http.StatusBadRequest)
		return
	}

	result := h.content.SocialPost(r.Context(), assistant.SocialPostInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Platform:    platform,
	})
	respond(log, w, http.StatusOK, dto.MapGeneratedContent(result))
}

// SessionSummary обрабатывает POST /api/v1/ai/session-summary
func (h *AIHandler) SessionSummary(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.AIHandler.SessionSummary()"
	log := h.log.With(slog.String("op", op))

	var req dto.SessionSummaryRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	result := h.content.SessionSummary(r.Context(), assistant.SessionSummaryInput{
		Title:       req.Title,
		Description: req.Description,
		SpeakerName: req.SpeakerName,
		SessionType: req.SessionType,
		KeyPoints:   req.KeyPoints,
	})
	respond(log, w, http.StatusOK, dto.MapGeneratedContent(result))
}

// FAQ обрабатывает POST /api/v1/ai/faq
func (h *AIHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.AIHandler.FAQ()"
	log := h.log.With(slog.String("op", op))

	var req dto.FAQRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondError(log, fmt.Errorf("question is required"), w, http.StatusBadRequest)
		return
	}

	result := h.content.AnswerFAQ(r.Context(), assistant.FAQInput{
		Question:     req.Question,
		EventContext: req.EventContext,
		EventDetails: req.EventDetails,
	})
	respond(log, w, http.StatusOK, dto.MapGeneratedContent(result))
}

// Recommendations обрабатывает GET /api/v1/ai/recommendations
func (h *AIHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.AIHandler.Recommendations()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	result, err := h.recommend.Recommend(r.Context(), userID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapRecommendations(result))
}

// Halls обрабатывает GET /api/v1/halls
func (h *AIHandler) Halls(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.AIHandler.Halls()"
	log := h.log.With(slog.String("op", op))

	respond(log, w, http.StatusOK, dto.MapHalls(halls.Catalog()))
}

// SelectHall обрабатывает POST /api/v1/halls/select
func (h *AIHandler) SelectHall(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.AIHandler.SelectHall()"
	log := h.log.With(slog.String("op", op))

	var req dto.SelectHallRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}
	if req.ParticipantCount <= 0 {
		respondError(log, fmt.Errorf("participant count must be positive"), w, http.StatusBadRequest)
		return
	}

	result := h.selector.Select(r.Context(), dto.MapSelectHallRequest(req))
	respond(log, w, http.StatusOK, dto.MapSelectHallResult(result))
}
