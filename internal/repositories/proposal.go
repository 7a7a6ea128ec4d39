package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/models/repositories"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const proposalColumns = `p.id, p.organizer_id, p.title, p.description, p.category,
	p.expected_attendees, p.preferred_date, p.duration_hours, p.facilities_required,
	p.tags, p.justification, p.target_audience, p.learning_objectives, p.status,
	p.submitted_at, p.reviewed_at, p.reviewed_by, p.admin_comments, p.workflow_status,
	p.workflow_error, p.workflow_attempts, p.workflow_requested_at,
	p.workflow_completed_at, p.hall_availability, p.ai_summary, p.created_event_id,
	p.created_at, p.updated_at`

const proposalWithOrganizerQuery = `SELECT ` + proposalColumns + `,
	pr.first_name AS organizer_first_name, pr.last_name AS organizer_last_name
	FROM proposals p
	LEFT JOIN profiles pr ON pr.user_id = p.organizer_id`

func (r *Repository) CreateProposal(ctx context.Context, proposal domain.Proposal) (domain.Proposal, error) {
	op := "repository.CreateProposal()"

	if proposal.ID == uuid.Nil {
		proposal.ID = uuid.New()
	}
	if err := proposal.Validate(); err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}

	repoProposal, err := mapProposalToRepo(proposal)
	if err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}

	insertQuery := `INSERT INTO proposals (
		id, organizer_id, title, description, category, expected_attendees,
		preferred_date, duration_hours, facilities_required, tags, justification,
		target_audience, learning_objectives, status, submitted_at, workflow_status,
		workflow_requested_at, created_at, updated_at
	) VALUES (
		:id, :organizer_id, :title, :description, :category, :expected_attendees,
		:preferred_date, :duration_hours, :facilities_required, :tags, :justification,
		:target_audience, :learning_objectives, :status, :submitted_at, :workflow_status,
		:workflow_requested_at, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
	)`

	if _, err := r.DB.NamedExecContext(ctx, insertQuery, repoProposal); err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}

	return proposal, nil
}

func (r *Repository) FindProposalByID(ctx context.Context, id uuid.UUID) (domain.Proposal, error) {
	op := "repository.FindProposalByID()"

	var repoProposal repositories.Proposal
	query := `SELECT ` + proposalColumns + ` FROM proposals p WHERE p.id = $1`

	if err := r.DB.GetContext(ctx, &repoProposal, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Proposal{}, fmt.Errorf("%s: %s: %w", op, id, domain.ErrProposalNotFound)
		}
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}

	proposal, err := mapProposalToDomain(repoProposal)
	if err != nil {
		return domain.Proposal{}, fmt.Errorf("%s: %w", op, err)
	}
	return proposal, nil
}

func (r *Repository) FindProposalWithOrganizer(ctx context.Context, id uuid.UUID) (domain.ProposalWithOrganizer, error) {
	op := "repository.FindProposalWithOrganizer()"

	var row repositories.ProposalWithOrganizer
	if err := r.DB.GetContext(ctx, &row, proposalWithOrganizerQuery+` WHERE p.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ProposalWithOrganizer{}, fmt.Errorf("%s: %s: %w", op, id, domain.ErrProposalNotFound)
		}
		return domain.ProposalWithOrganizer{}, fmt.Errorf("%s: %w", op, err)
	}

	result, err := mapProposalWithOrganizer(row)
	if err != nil {
		return domain.ProposalWithOrganizer{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (r *Repository) FindProposalsByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]domain.Proposal, error) {
	op := "repository.FindProposalsByOrganizer()"

	var rows []repositories.Proposal
	query := `SELECT ` + proposalColumns + ` FROM proposals p
		WHERE p.organizer_id = $1 ORDER BY p.submitted_at DESC`

	if err := r.DB.SelectContext(ctx, &rows, query, organizerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.Proposal, 0, len(rows))
	for _, row := range rows {
		p, err := mapProposalToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	return result, nil
}

// ListProposalsWithOrganizer возвращает предложения, новые первыми,
// опционально по статусу.
func (r *Repository) ListProposalsWithOrganizer(ctx context.Context, status domain.ProposalStatus) ([]domain.ProposalWithOrganizer, error) {
	op := "repository.ListProposalsWithOrganizer()"

	query := proposalWithOrganizerQuery
	var args []any
	if status != "" {
		query += ` WHERE p.status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY p.submitted_at DESC`

	var rows []repositories.ProposalWithOrganizer
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.ProposalWithOrganizer, 0, len(rows))
	for _, row := range rows {
		p, err := mapProposalWithOrganizer(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	return result, nil
}

// DecideProposal сохраняет решение администратора, только пока предложение
// в статусе submitted.
func (r *Repository) DecideProposal(ctx context.Context, proposal domain.Proposal) error {
	op := "repository.DecideProposal()"

	if !proposal.Status.Terminal() || proposal.ReviewedAt == nil || proposal.ReviewedBy == nil {
		return fmt.Errorf("%s: proposal carries no decision: %w", op, domain.ErrInvalidInput)
	}
	if err := proposal.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.DB.ExecContext(ctx,
		`UPDATE proposals SET status = $2, reviewed_at = $3, reviewed_by = $4,
			admin_comments = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status = $6`,
		proposal.ID,
		string(proposal.Status),
		*proposal.ReviewedAt,
		*proposal.ReviewedBy,
		proposal.AdminComments,
		string(domain.ProposalStatusSubmitted),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return r.checkProposalUpdated(ctx, op, proposal.ID, result)
}

// MarkWorkflowAttempt засчитывает попытку обогащения, пока workflow в pending.
func (r *Repository) MarkWorkflowAttempt(ctx context.Context, id uuid.UUID) (int, error) {
	op := "repository.MarkWorkflowAttempt()"

	var attempts int
	err := r.DB.GetContext(ctx, &attempts,
		`UPDATE proposals SET workflow_attempts = workflow_attempts + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND workflow_status = $2
		RETURNING workflow_attempts`,
		id, string(domain.WorkflowStatusPending),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, r.missingOrInvalid(ctx, op, id)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return attempts, nil
}

// SaveWorkflowResult сохраняет финальный результат обогащения. Завершить
// можно только pending workflow.
func (r *Repository) SaveWorkflowResult(ctx context.Context, proposal domain.Proposal) error {
	op := "repository.SaveWorkflowResult()"

	if proposal.WorkflowStatus == domain.WorkflowStatusPending || proposal.WorkflowCompletedAt == nil {
		return fmt.Errorf("%s: workflow is not finished: %w", op, domain.ErrInvalidInput)
	}
	if err := proposal.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	halls, err := marshalNullable(proposal.HallAvailability)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	summary, err := marshalNullable(proposal.AISummary)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.DB.ExecContext(ctx,
		`UPDATE proposals SET workflow_status = $2, workflow_error = $3,
			hall_availability = $4, ai_summary = $5, workflow_completed_at = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND workflow_status = $7`,
		proposal.ID,
		string(proposal.WorkflowStatus),
		proposal.WorkflowError,
		halls,
		summary,
		*proposal.WorkflowCompletedAt,
		string(domain.WorkflowStatusPending),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return r.checkProposalUpdated(ctx, op, proposal.ID, result)
}

// ResetWorkflow возвращает упавший workflow в pending.
func (r *Repository) ResetWorkflow(ctx context.Context, id uuid.UUID, at time.Time) error {
	op := "repository.ResetWorkflow()"

	result, err := r.DB.ExecContext(ctx,
		`UPDATE proposals SET workflow_status = $2, workflow_error = '', workflow_attempts = 0,
			workflow_requested_at = $3, workflow_completed_at = NULL,
			hall_availability = NULL, ai_summary = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND workflow_status = $4`,
		id,
		string(domain.WorkflowStatusPending),
		at,
		string(domain.WorkflowStatusFailed),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return r.checkProposalUpdated(ctx, op, id, result)
}

// CreateEventFromProposal создаёт событие из одобренного предложения и
// связывает их в одной транзакции. Для предложения с событием возвращает
// ID связанного события.
func (r *Repository) CreateEventFromProposal(ctx context.Context, proposalID uuid.UUID, build func(domain.Proposal) domain.Event) (uuid.UUID, error) {
	op := "repository.CreateEventFromProposal()"

	var eventID uuid.UUID
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var row repositories.Proposal
		query := `SELECT ` + proposalColumns + ` FROM proposals p WHERE p.id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &row, query, proposalID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%s: %w", proposalID, domain.ErrProposalNotFound)
			}
			return err
		}

		proposal, err := mapProposalToDomain(row)
		if err != nil {
			return err
		}

		if proposal.CreatedEventID != nil {
			eventID = *proposal.CreatedEventID
			return nil
		}
		if !proposal.CanMaterialize() {
			return fmt.Errorf("proposal is %s: %w", proposal.Status, domain.ErrInvalidState)
		}

		event := build(proposal)
		if err := insertEventTx(ctx, tx, event); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE proposals SET created_event_id = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
			proposalID, event.ID,
		); err != nil {
			return err
		}

		eventID = event.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return eventID, nil
}

// FindStalledProposals возвращает предложения, обогащение которых ждёт с
// момента раньше before.
func (r *Repository) FindStalledProposals(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	op := "repository.FindStalledProposals()"

	var ids []uuid.UUID
	err := r.DB.SelectContext(ctx, &ids,
		`SELECT id FROM proposals WHERE workflow_status = $1 AND workflow_requested_at < $2
		ORDER BY workflow_requested_at ASC`,
		string(domain.WorkflowStatusPending), before,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

// FindApprovedWithoutEvent возвращает одобренные до before предложения без
// созданного события.
func (r *Repository) FindApprovedWithoutEvent(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	op := "repository.FindApprovedWithoutEvent()"

	var ids []uuid.UUID
	err := r.DB.SelectContext(ctx, &ids,
		`SELECT id FROM proposals WHERE status = $1 AND created_event_id IS NULL AND reviewed_at < $2
		ORDER BY reviewed_at ASC`,
		string(domain.ProposalStatusApproved), before,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

func (r *Repository) checkProposalUpdated(ctx context.Context, op string, id uuid.UUID, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: checking rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return r.missingOrInvalid(ctx, op, id)
	}
	return nil
}

// missingOrInvalid отличает условный апдейт, не задевший строк из-за
// отсутствия предложения, от апдейта с неподходящим состоянием.
func (r *Repository) missingOrInvalid(ctx context.Context, op string, id uuid.UUID) error {
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM proposals WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %s: %w", op, id, domain.ErrProposalNotFound)
	}
	return fmt.Errorf("%s: %s: %w", op, id, domain.ErrInvalidState)
}

// marshalNullable кодирует обогащение для JSONB-колонки, nil остаётся NULL.
func marshalNullable(v any) (any, error) {
	switch t := v.(type) {
	case *domain.HallAvailability:
		if t == nil {
			return nil, nil
		}
	case *domain.AISummary:
		if t == nil {
			return nil, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func mapProposalToRepo(p domain.Proposal) (repositories.Proposal, error) {
	var halls, summary []byte
	if p.HallAvailability != nil {
		b, err := json.Marshal(p.HallAvailability)
		if err != nil {
			return repositories.Proposal{}, err
		}
		halls = b
	}
	if p.AISummary != nil {
		b, err := json.Marshal(p.AISummary)
		if err != nil {
			return repositories.Proposal{}, err
		}
		summary = b
	}

	row := repositories.Proposal{
		BaseModel:           repositories.BaseModel{ID: p.ID},
		OrganizerID:         p.OrganizerID,
		Title:               p.Title,
		Description:         p.Description,
		Category:            p.Category,
		ExpectedAttendees:   p.ExpectedAttendees,
		PreferredDate:       p.PreferredDate,
		DurationHours:       p.DurationHours,
		FacilitiesRequired:  nonNil(p.FacilitiesRequired),
		Tags:                nonNil(p.Tags),
		Justification:       p.Justification,
		TargetAudience:      p.TargetAudience,
		LearningObjectives:  p.LearningObjectives,
		Status:              string(p.Status),
		SubmittedAt:         p.SubmittedAt,
		AdminComments:       p.AdminComments,
		WorkflowStatus:      string(p.WorkflowStatus),
		WorkflowError:       p.WorkflowError,
		WorkflowAttempts:    p.WorkflowAttempts,
		WorkflowRequestedAt: p.WorkflowRequestedAt,
		HallAvailability:    halls,
		AISummary:           summary,
	}
	if p.ReviewedAt != nil {
		row.ReviewedAt = sql.NullTime{Time: *p.ReviewedAt, Valid: true}
	}
	if p.ReviewedBy != nil {
		row.ReviewedBy = uuid.NullUUID{UUID: *p.ReviewedBy, Valid: true}
	}
	if p.WorkflowCompletedAt != nil {
		row.WorkflowCompletedAt = sql.NullTime{Time: *p.WorkflowCompletedAt, Valid: true}
	}
	if p.CreatedEventID != nil {
		row.CreatedEventID = uuid.NullUUID{UUID: *p.CreatedEventID, Valid: true}
	}
	return row, nil
}

func mapProposalToDomain(row repositories.Proposal) (domain.Proposal, error) {
	p := domain.Proposal{
		ID:                  row.ID,
		OrganizerID:         row.OrganizerID,
		Title:               row.Title,
		Description:         row.Description,
		Category:            row.Category,
		ExpectedAttendees:   row.ExpectedAttendees,
		PreferredDate:       row.PreferredDate,
		DurationHours:       row.DurationHours,
		FacilitiesRequired:  []string(row.FacilitiesRequired),
		Tags:                []string(row.Tags),
		Justification:       row.Justification,
		TargetAudience:      row.TargetAudience,
		LearningObjectives:  row.LearningObjectives,
		Status:              domain.ProposalStatus(row.Status),
		SubmittedAt:         row.SubmittedAt,
		AdminComments:       row.AdminComments,
		WorkflowStatus:      domain.WorkflowStatus(row.WorkflowStatus),
		WorkflowError:       row.WorkflowError,
		WorkflowAttempts:    row.WorkflowAttempts,
		WorkflowRequestedAt: row.WorkflowRequestedAt,
	}

	if row.ReviewedAt.Valid {
		t := row.ReviewedAt.Time
		p.ReviewedAt = &t
	}
	if row.ReviewedBy.Valid {
		id := row.ReviewedBy.UUID
		p.ReviewedBy = &id
	}
	if row.WorkflowCompletedAt.Valid {
		t := row.WorkflowCompletedAt.Time
		p.WorkflowCompletedAt = &t
	}
	if row.CreatedEventID.Valid {
		id := row.CreatedEventID.UUID
		p.CreatedEventID = &id
	}

	if len(row.HallAvailability) > 0 {
		var halls domain.HallAvailability
		if err := json.Unmarshal(row.HallAvailability, &halls); err != nil {
			return domain.Proposal{}, fmt.Errorf("decode hall availability: %w", err)
		}
		p.HallAvailability = &halls
	}
	if len(row.AISummary) > 0 {
		var summary domain.AISummary
		if err := json.Unmarshal(row.AISummary, &summary); err != nil {
			return domain.Proposal{}, fmt.Errorf("decode ai summary: %w", err)
		}
		p.AISummary = &summary
	}

	return p, nil
}

func mapProposalWithOrganizer(row repositories.ProposalWithOrganizer) (domain.ProposalWithOrganizer, error) {
	p, err := mapProposalToDomain(row.Proposal)
	if err != nil {
		return domain.ProposalWithOrganizer{}, err
	}

	name := strings.TrimSpace(row.OrganizerFirstName.String + " " + row.OrganizerLastName.String)
	if name == "" {
		name = "Unknown"
	}

	return domain.ProposalWithOrganizer{Proposal: p, OrganizerName: name}, nil
}
