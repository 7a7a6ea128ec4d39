package handlers

import (
	"log/slog"
	"net/http"

	"campusEvents/internal/transport/httpServer/handlers/dto"
)

// RegistrationHandler обслуживает регистрации на события.
type RegistrationHandler struct {
	service RegistrationService
	log     *slog.Logger
}

// NewRegistrationHandler создаёт новый экземпляр RegistrationHandler.
func NewRegistrationHandler(log *slog.Logger, service RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
		log:     log,
	}
}

// Register обрабатывает POST /api/v1/events/{eventId}/registration
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.RegistrationHandler.Register()"
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

	reg, err := h.service.Register(r.Context(), userID, eventID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusCreated, dto.MapDomainToRegistrationResponse(reg))
}

// Cancel обрабатывает DELETE /api/v1/events/{eventId}/registration
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.RegistrationHandler.Cancel()"
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

	if err := h.service.Cancel(r.Context(), userID, eventID); err != nil {
		respondServiceError(log, err, w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Mine обрабатывает GET /api/v1/registrations/mine
func (h *RegistrationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.RegistrationHandler.Mine()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	regs, err := h.service.MyRegistrations(r.Context(), userID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapRegistrationsWithEvent(regs))
}
