package handlers

import (
	"log/slog"
	"net/http"

	"campusEvents/internal/transport/httpServer/handlers/dto"
)

// SessionHandler обслуживает программу событий.
type SessionHandler struct {
	service SessionService
	log     *slog.Logger
}

// NewSessionHandler создаёт новый экземпляр SessionHandler.
func NewSessionHandler(log *slog.Logger, service SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

// Create обрабатывает POST /api/v1/events/{eventId}/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.SessionHandler.Create()"
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

	var req dto.CreateSessionRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	session, err := h.service.Create(r.Context(), userID, dto.MapCreateSessionRequest(eventID, req))
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusCreated, dto.MapDomainToSessionResponse(session))
}

// ByEvent обрабатывает GET /api/v1/events/{eventId}/sessions
func (h *SessionHandler) ByEvent(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.SessionHandler.ByEvent()"
	log := h.log.With(slog.String("op", op))

	eventID, err := uuidParam(r, "eventId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	sessions, err := h.service.ByEvent(r.Context(), eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToSessionResponseList(sessions))
}

// Update обрабатывает PATCH /api/v1/sessions/{sessionId}
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.SessionHandler.Update()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	sessionID, err := uuidParam(r, "sessionId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	var req dto.UpdateSessionRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	session, err := h.service.Update(r.Context(), userID, sessionID, dto.MapUpdateSessionRequest(req))
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToSessionResponse(session))
}

// Delete обрабатывает DELETE /api/v1/sessions/{sessionId}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.SessionHandler.Delete()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	sessionID, err := uuidParam(r, "sessionId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), userID, sessionID); err != nil {
		respondServiceError(log, err, w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
