package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/orchestrator"
	"campusEvents/internal/utils/logger/sl"

	"github.com/google/uuid"
)

// ProposalService ведёт предложения от подачи до решения администратора.
type ProposalService struct {
	logger *slog.Logger
	repo   ProposalRepository
	jobs   JobQueue
	now    func() time.Time
}

// NewProposalService создаёт новый экземпляр ProposalService.
func NewProposalService(logger *slog.Logger, repo ProposalRepository, jobs JobQueue) *ProposalService {
	return &ProposalService{
		logger: logger,
		repo:   repo,
		jobs:   jobs,
		now:    time.Now,
	}
}

// Submit сохраняет предложение и ставит его обогащение в очередь. Предложение
// принимается, даже если джобу поставить не удалось: её подберёт свипер.
func (s *ProposalService) Submit(ctx context.Context, actor uuid.UUID, in domain.ProposalInput) (domain.Proposal, error) {
	op := "ProposalService.Submit()"
	log := s.logger.With(slog.String("op", op), slog.String("user", actor.String()))

	if _, err := requireRole(ctx, s.repo, actor, domain.RoleOrganizer); err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: only organizers can submit proposals: %w", op, err)
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if err := in.Validate(); err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}

	proposal, err := s.repo.CreateProposal(ctx, domain.NewProposal(uuid.New(), actor, in, s.now()))
	if err != nil {
		log.Error("failed to store proposal", sl.Err(err))
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("proposal submitted", slog.String("proposal", proposal.ID.String()))

	if _, err := s.jobs.AddJob(orchestrator.JobEnrich, proposal.ID); err != nil {
		log.Warn("enrichment not queued, left for sweeper", slog.String("proposal", proposal.ID.String()), sl.Err(err))
	}

	return proposal, nil
}

// UpdateStatus записывает решение администратора. После одобрения в очередь
// ставится создание события.
func (s *ProposalService) UpdateStatus(ctx context.Context, actor, proposalID uuid.UUID, status domain.ProposalStatus, comments string) (domain.Proposal, error) {
	op := "ProposalService.UpdateStatus()"
	log := s.logger.With(
		slog.String("op", op),
		slog.String("proposal", proposalID.String()),
		slog.String("status", string(status)),
	)

	if _, err := requireRole(ctx, s.repo, actor, domain.RoleAdmin); err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}

	proposal, err := s.repo.FindProposalByID(ctx, proposalID)
	if err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := proposal.Decide(status, actor, strings.TrimSpace(comments), s.now()); err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DecideProposal(ctx, proposal); err != nil {
		if !errors.Is(err, domain.ErrInvalidState) {
			log.Error("failed to store decision", sl.Err(err))
		}
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("proposal decided")

	if proposal.Status == domain.ProposalStatusApproved {
		if _, err := s.jobs.AddJob(orchestrator.JobMaterialize, proposal.ID); err != nil {
			log.Warn("materialization not queued, left for sweeper", sl.Err(err))
		}
	}

	return proposal, nil
}

// Retrigger повторно запускает обогащение предложения с упавшим workflow.
func (s *ProposalService) Retrigger(ctx context.Context, actor, proposalID uuid.UUID) error {
	op := "ProposalService.Retrigger()"
	log := s.logger.With(slog.String("op", op), slog.String("proposal", proposalID.String()))

	if _, err := requireRole(ctx, s.repo, actor, domain.RoleAdmin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.ResetWorkflow(ctx, proposalID, s.now()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.jobs.AddJob(orchestrator.JobEnrich, proposalID); err != nil {
		log.Warn("enrichment not queued, left for sweeper", sl.Err(err))
	}

	log.Info("workflow retriggered")
	return nil
}

// MyProposals возвращает предложения вызывающего, новые первыми.
func (s *ProposalService) MyProposals(ctx context.Context, actor uuid.UUID) ([]domain.Proposal, error) {
	op := "ProposalService.MyProposals()"

	proposals, err := s.repo.FindProposalsByOrganizer(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return proposals, nil
}

// AllProposals возвращает предложения администратору. Пустой статус — все.
func (s *ProposalService) AllProposals(ctx context.Context, actor uuid.UUID, status domain.ProposalStatus) ([]domain.ProposalWithOrganizer, error) {
	op := "ProposalService.AllProposals()"

	if _, err := requireRole(ctx, s.repo, actor, domain.RoleAdmin); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	proposals, err := s.repo.ListProposalsWithOrganizer(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return proposals, nil
}

// PendingProposals — очередь модерации. Вызывающий не проверяется.
func (s *ProposalService) PendingProposals(ctx context.Context) ([]domain.ProposalWithOrganizer, error) {
	op := "ProposalService.PendingProposals()"

	proposals, err := s.repo.ListProposalsWithOrganizer(ctx, domain.ProposalStatusSubmitted)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return proposals, nil
}

// GetProposal доступен организатору предложения и администраторам.
func (s *ProposalService) GetProposal(ctx context.Context, actor, proposalID uuid.UUID) (domain.ProposalWithOrganizer, error) {
	op := "ProposalService.GetProposal()"

	proposal, err := s.repo.FindProposalWithOrganizer(ctx, proposalID)
	if err != nil {
		return domain.ProposalWithOrganizer{}, fmt.Errorf("%s: %w", op, err)
	}
	if proposal.OrganizerID == actor {
		return proposal, nil
	}

	if _, err := requireRole(ctx, s.repo, actor, domain.RoleAdmin); err != nil {
		return domain.ProposalWithOrganizer{}, fmt.Errorf("%s: %w", op, err)
	}
	return proposal, nil
}
