package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/transport/httpServer/handlers/dto"
)

// ProposalHandler обслуживает предложения событий.
type ProposalHandler struct {
	service ProposalService
	log     *slog.Logger
}

// NewProposalHandler создаёт новый экземпляр ProposalHandler.
func NewProposalHandler(log *slog.Logger, service ProposalService) *ProposalHandler {
	return &ProposalHandler{
		service: service,
		log:     log,
	}
}

// Submit обрабатывает POST /api/v1/proposals
// Предложение сохраняется сразу, подбор зала и сводка добавляются в фоне.
func (h *ProposalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProposalHandler.Submit()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	var req dto.SubmitProposalRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	proposal, err := h.service.Submit(r.Context(), userID, dto.MapProposalRequestToInput(req))
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	log.Info("proposal submitted", slog.String("proposalID", proposal.ID.String()))
	respond(log, w, http.StatusCreated, dto.MapDomainToProposalResponse(proposal))
}

// List обрабатывает GET /api/v1/proposals?status=... для администраторов.
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProposalHandler.List()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	status := domain.ProposalStatus(r.URL.Query().Get("status"))
	if status != "" && !isValidProposalStatus(status) {
		respondError(log, fmt.Errorf("invalid status filter: %s", status), w, http.StatusBadRequest)
		return
	}

	proposals, err := h.service.AllProposals(r.Context(), userID, status)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapProposalWithOrganizerList(proposals))
}

// Mine обрабатывает GET /api/v1/proposals/mine
func (h *ProposalHandler) Mine(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProposalHandler.Mine()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}

	proposals, err := h.service.MyProposals(r.Context(), userID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToProposalResponseList(proposals))
}

// Get обрабатывает GET /api/v1/proposals/{proposalId}
func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProposalHandler.Get()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	proposalID, err := uuidParam(r, "proposalId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	proposal, err := h.service.GetProposal(r.Context(), userID, proposalID)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapProposalWithOrganizer(proposal))
}

// UpdateStatus обрабатывает PUT /api/v1/proposals/{proposalId}/status
func (h *ProposalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProposalHandler.UpdateStatus()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	proposalID, err := uuidParam(r, "proposalId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	var req dto.UpdateProposalStatusRequest
	if err := decode(r, w, &req); err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	status := domain.ProposalStatus(req.Status)
	if !status.Terminal() {
		respondError(log, fmt.Errorf("invalid status: %s", req.Status), w, http.StatusBadRequest)
		return
	}

	log.Info("updating proposal status",
		slog.String("proposalID", proposalID.String()),
		slog.String("status", req.Status),
	)

	proposal, err := h.service.UpdateStatus(r.Context(), userID, proposalID, status, req.AdminComments)
	if err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusOK, dto.MapDomainToProposalResponse(proposal))
}

// Retrigger обрабатывает POST /api/v1/proposals/{proposalId}/retrigger
func (h *ProposalHandler) Retrigger(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.ProposalHandler.Retrigger()"
	log := h.log.With(slog.String("op", op))

	userID, ok := actor(log, w, r)
	if !ok {
		return
	}
	proposalID, err := uuidParam(r, "proposalId")
	if err != nil {
		respondError(log, err, w, http.StatusBadRequest)
		return
	}

	if err := h.service.Retrigger(r.Context(), userID, proposalID); err != nil {
		respondServiceError(log, err, w)
		return
	}

	respond(log, w, http.StatusAccepted, map[string]string{"status": "ok"})
}

// isValidProposalStatus проверяет, является ли переданный статус допустимым.
func isValidProposalStatus(status domain.ProposalStatus) bool {
	switch status {
	case domain.ProposalStatusSubmitted,
		domain.ProposalStatusApproved,
		domain.ProposalStatusRejected:
		return true
	default:
		return false
	}
}
