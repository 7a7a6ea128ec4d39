package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/transport/httpServer/handlers/dto"

	"github.com/go-chi/chi/v5"
)

const maxListLimit = 100

// EventHandler обслуживает события.
type EventHandler struct {
	service EventService
	log     *slog.Logger
}

// NewEventHandler создаёт новый экземпляр EventHandler.
func NewEventHandler(log *slog.Logger, service EventService) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log,
	}
}

// GetEvents обрабатывает GET /api/v1/events?status=...&limit=...
// Если параметр status не задан или пустой — возвращаются все события.
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.GetEvents()"
	log := h.log.With(slog.String("op", op))

	status := domain.EventStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		respondError(log, fmt.Errorf("invalid status filter: %s", status), w, http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxListLimit {
			respondError(log, fmt.Errorf("limit must be between 1 and %d", maxListLimit), w, http.StatusBadRequest)
			return
		}
		limit = n
	}

	events, err := h.service.List(r.Context(), status, limit)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToEventResponseList(events))
}

// Published обрабатывает GET /api/v1/events/published
func (h *EventHandler) Published(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.Published()"
	h.list(op, w, r, h.service.Published)
}

// Upcoming обрабатывает GET /api/v1/events/upcoming
func (h *EventHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.Upcoming()"
	h.list(op, w, r, h.service.Upcoming)
}

// Past обрабатывает GET /api/v1/events/past
func (h *EventHandler) Past(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.Past()"
	h.list(op, w, r, h.service.Past)
}

// list отдаёт список событий, полученный через find.
func (h *EventHandler) list(op string, w http.ResponseWriter, r *http.Request, find func(ctx context.Context) ([]domain.Event, error)) {
	log := h.log.With(slog.String("op", op))

	events, err := find(r.Context())
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToEventResponseList(events))
}

// Mine обрабатывает GET /api/v1/events/mine
func (h *EventHandler) Mine(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.Mine()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	events, err := h.service.Mine(r.Context(), userID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToEventResponseList(events))
}

// Search обрабатывает GET /api/v1/events/search?q=...
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.Search()"
	log := h.log.With(slog.String("op", op))

	events, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToEventResponseList(events))
}

// ByCategory обрабатывает GET /api/v1/events/category/{category}
func (h *EventHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.ByCategory()"
	log := h.log.With(slog.String("op", op))

	category := chi.URLParam(r, "category")
	if category == "" {
		respondError(log, fmt.Errorf("empty category"), w, http.StatusBadRequest)
		return
	}

	events, err := h.service.ByCategory(r.Context(), category)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToEventResponseList(events))
}

// Create обрабатывает POST /api/v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.Create()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	event, err := h.service.Create(r.Context(), userID, dto.MapCreateEventRequest(req))
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusCreated, dto.MapDomainToEventResponse(event))
}

// GetEvent обрабатывает GET /api/v1/events/{eventId}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.GetEvent()"
	log := h.log.With(slog.String("op", op))

	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	event, err := h.service.Get(r.Context(), eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToEventResponse(event))
}

// Details обрабатывает GET /api/v1/events/{eventId}/details
func (h *EventHandler) Details(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.Details()"
	log := h.log.With(slog.String("op", op))

	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	event, err := h.service.Details(r.Context(), eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapEventDetails(event))
}

// ChangeEvent обрабатывает PATCH /api/v1/events/{eventId}
// Обновляет только переданные поля.
func (h *EventHandler) ChangeEvent(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.ChangeEvent()"
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

	var req dto.UpdateEventRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}
	if req.Status != nil && !domain.EventStatus(*req.Status).Valid() {
		respondError(log, fmt.Errorf("invalid status: %s", *req.Status), w, http.StatusBadRequest)
		return
	}

	log.Info("changing event", slog.String("eventID", eventID.String()))

	updated, err := h.service.Update(r.Context(), userID, eventID, dto.MapUpdateEventRequest(req))
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToEventResponse(updated))
}

// Publish обрабатывает POST /api/v1/events/{eventId}/publish
func (h *EventHandler) Publish(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.Publish()"
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

	event, err := h.service.Publish(r.Context(), userID, eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToEventResponse(event))
}

// Delete обрабатывает DELETE /api/v1/events/{eventId}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.Delete()"
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

	if err := h.service.Delete(r.Context(), userID, eventID); err != nil {
		respondServiceError(log, err, w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
