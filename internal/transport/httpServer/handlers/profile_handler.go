package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"campusEvents/internal/transport/httpServer/handlers/dto"
)

// ProfileHandler обслуживает профили и вход администратора.
type ProfileHandler struct {
	service ProfileService
	log     *slog.Logger
}

// NewProfileHandler создаёт новый экземпляр ProfileHandler.
func NewProfileHandler(log *slog.Logger, service ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log,
	}
}

// AdminLogin обрабатывает POST /api/v1/auth/admin/login
func (h *ProfileHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProfileHandler.AdminLogin()"
	log := h.log.With(slog.String("op", op))

	var req dto.AdminLoginRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(log, fmt.Errorf("username and password are required"), w, http.StatusBadRequest)
		return
	}

	token, err := h.service.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "Bearer"})
}

// Create обрабатывает POST /api/v1/profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProfileHandler.Create()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), userID, dto.MapCreateProfileRequest(req))
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusCreated, dto.MapDomainToProfileResponse(profile))
}

// Me обрабатывает GET /api/v1/profiles/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProfileHandler.Me()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToProfileResponse(profile))
}

// UpdateMe обрабатывает PATCH /api/v1/profiles/me
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProfileHandler.UpdateMe()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, dto.MapUpdateProfileRequest(req))
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToProfileResponse(profile))
}

// Get обрабатывает GET /api/v1/profiles/{userId}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProfileHandler.Get()"
	log := h.log.With(slog.String("op", op))

	userID, err := uuidParam(r, "userId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToProfileResponse(profile))
}
