package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProposalStatus — решение администратора по предложению.
type ProposalStatus string

const (
	ProposalStatusSubmitted ProposalStatus = "submitted"
	ProposalStatusApproved  ProposalStatus = "approved"
	ProposalStatusRejected  ProposalStatus = "rejected"
)

// Terminal сообщает, принято ли решение.
func (s ProposalStatus) Terminal() bool {
	return s == ProposalStatusApproved || s == ProposalStatusRejected
}

// WorkflowStatus отслеживает фоновое обогащение независимо от ProposalStatus.
type WorkflowStatus string

const (
	// WorkflowStatusPending - обогащение запланировано или выполняется
	WorkflowStatusPending   WorkflowStatus = "pending"
	WorkflowStatusCompleted WorkflowStatus = "completed"
	WorkflowStatusFailed    WorkflowStatus = "failed"
)

// HallRecommendation — результат подбора зала.
type HallRecommendation struct {
	SelectedHall     string   `json:"selectedHall"`
	MatchScore       int      `json:"matchScore"`
	Reasoning        string   `json:"reasoning"`
	AlternativeHalls []string `json:"alternativeHalls"`
	FacilitiesMatch  []string `json:"facilitiesMatch"`
	CapacityAnalysis string   `json:"capacityAnalysis"`
}

// HallAvailability — обогащение, сохраняемое в предложении после Step A.
type HallAvailability struct {
	AvailableHalls       []string            `json:"availableHalls"`
	RecommendedHall      *HallRecommendation `json:"recommendedHall"`
	HallSelectionSuccess bool                `json:"hallSelectionSuccess"`
}

// AISummary содержит текст анализа для администраторов.
type AISummary struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
	Error   string `json:"error,omitempty"`
}

// Proposal - заявка организатора на событие, которую рассматривает администратор
type Proposal struct {
	ID          uuid.UUID
	OrganizerID uuid.UUID

	Title              string
	Description        string
	Category           string
	ExpectedAttendees  int
	PreferredDate      time.Time
	DurationHours      int
	FacilitiesRequired []string
	Tags               []string
	Justification      string
	TargetAudience     string
	LearningObjectives string

	Status        ProposalStatus
	SubmittedAt   time.Time
	ReviewedAt    *time.Time
	ReviewedBy    *uuid.UUID
	AdminComments string

	WorkflowStatus      WorkflowStatus
	WorkflowError       string
	WorkflowAttempts    int
	WorkflowRequestedAt time.Time
	WorkflowCompletedAt *time.Time
	HallAvailability    *HallAvailability
	AISummary           *AISummary

	CreatedEventID *uuid.UUID
}

// ProposalWithOrganizer — модель чтения с именем организатора.
type ProposalWithOrganizer struct {
	Proposal
	OrganizerName string
}

// Validate проверяет, что оба статуса и связанные с ними данные образуют
// достижимую комбинацию.
//
//	status     workflow   enrichment  error  decision  createdEvent
//	submitted  pending    -           -      -         -
//	submitted  completed  yes         -      -         -
//	submitted  failed     -           yes    -         -
//	approved   any        as above    ...    yes       optional
//	rejected   any        as above    ...    yes       -
func (p *Proposal) Validate() error {
	const op = "Proposal.Validate()"

	switch p.Status {
	case ProposalStatusSubmitted, ProposalStatusApproved, ProposalStatusRejected:
	default:
		return fmt.Errorf("%s: unknown status %q: %w", op, p.Status, ErrInvalidState)
	}

	switch p.WorkflowStatus {
	case WorkflowStatusPending:
		if p.HallAvailability != nil || p.AISummary != nil || p.WorkflowError != "" {
			return fmt.Errorf("%s: pending workflow carries results: %w", op, ErrInvalidState)
		}
	case WorkflowStatusCompleted:
		if p.WorkflowError != "" {
			return fmt.Errorf("%s: completed workflow carries an error: %w", op, ErrInvalidState)
		}
		if p.HallAvailability == nil || p.AISummary == nil {
			return fmt.Errorf("%s: completed workflow without enrichment: %w", op, ErrInvalidState)
		}
	case WorkflowStatusFailed:
		if p.WorkflowError == "" {
			return fmt.Errorf("%s: failed workflow without an error: %w", op, ErrInvalidState)
		}
		if p.HallAvailability != nil || p.AISummary != nil {
			return fmt.Errorf("%s: failed workflow carries enrichment: %w", op, ErrInvalidState)
		}
	default:
		return fmt.Errorf("%s: unknown workflow status %q: %w", op, p.WorkflowStatus, ErrInvalidState)
	}

	decided := p.ReviewedAt != nil || p.ReviewedBy != nil
	if p.Status.Terminal() != decided {
		return fmt.Errorf("%s: decision fields do not match status %q: %w", op, p.Status, ErrInvalidState)
	}
	if !p.Status.Terminal() && p.AdminComments != "" {
		return fmt.Errorf("%s: comments on undecided proposal: %w", op, ErrInvalidState)
	}

	if p.CreatedEventID != nil && p.Status != ProposalStatusApproved {
		return fmt.Errorf("%s: event linked to %s proposal: %w", op, p.Status, ErrInvalidState)
	}

	return nil
}

// CanDecide сообщает, может ли администратор одобрить или отклонить
// предложение. Одобрение не ждёт обогащения.
func (p *Proposal) CanDecide() bool {
	return p.Status == ProposalStatusSubmitted
}

// CanRecordWorkflow сообщает, может ли Step A ещё сохранить результат.
func (p *Proposal) CanRecordWorkflow() bool {
	return p.WorkflowStatus == WorkflowStatusPending
}

// CanRetrigger сообщает, можно ли повторно запустить упавшее обогащение.
func (p *Proposal) CanRetrigger() bool {
	return p.WorkflowStatus == WorkflowStatusFailed
}

// CanMaterialize сообщает, есть ли работа для Step B.
func (p *Proposal) CanMaterialize() bool {
	return p.Status == ProposalStatusApproved && p.CreatedEventID == nil
}

// Decide применяет решение администратора в памяти.
func (p *Proposal) Decide(status ProposalStatus, reviewer uuid.UUID, comments string, at time.Time) error {
	const op = "Proposal.Decide()"

	if !status.Terminal() {
		return fmt.Errorf("%s: %q is not a decision: %w", op, status, ErrInvalidInput)
	}
	if !p.CanDecide() {
		return fmt.Errorf("%s: proposal already %s: %w", op, p.Status, ErrInvalidState)
	}

	p.Status = status
	p.ReviewedAt = &at
	p.ReviewedBy = &reviewer
	p.AdminComments = comments
	return nil
}

// CompleteWorkflow записывает успешное обогащение в памяти.
func (p *Proposal) CompleteWorkflow(halls *HallAvailability, summary *AISummary, at time.Time) error {
	const op = "Proposal.CompleteWorkflow()"

	if !p.CanRecordWorkflow() {
		return fmt.Errorf("%s: workflow already %s: %w", op, p.WorkflowStatus, ErrInvalidState)
	}
	if halls == nil || summary == nil {
		return fmt.Errorf("%s: missing enrichment: %w", op, ErrInvalidInput)
	}

	p.WorkflowStatus = WorkflowStatusCompleted
	p.WorkflowError = ""
	p.HallAvailability = halls
	p.AISummary = summary
	p.WorkflowCompletedAt = &at
	return nil
}

// FailWorkflow записывает упавшее обогащение в памяти.
func (p *Proposal) FailWorkflow(reason string, at time.Time) error {
	const op = "Proposal.FailWorkflow()"

	if !p.CanRecordWorkflow() {
		return fmt.Errorf("%s: workflow already %s: %w", op, p.WorkflowStatus, ErrInvalidState)
	}
	if reason == "" {
		reason = "unknown error"
	}

	p.WorkflowStatus = WorkflowStatusFailed
	p.WorkflowError = reason
	p.HallAvailability = nil
	p.AISummary = nil
	p.WorkflowCompletedAt = &at
	return nil
}

// RecommendedLocation — место события при его создании.
func (p *Proposal) RecommendedLocation() string {
	if p.HallAvailability == nil || p.HallAvailability.RecommendedHall == nil || p.HallAvailability.RecommendedHall.SelectedHall == "" {
		return "TBD"
	}
	return p.HallAvailability.RecommendedHall.SelectedHall
}

// ToEvent строит черновик события из одобренного предложения.
func (p *Proposal) ToEvent(id uuid.UUID, now time.Time) Event {
	proposalID := p.ID
	start := p.PreferredDate
	return Event{
		ID:                  id,
		OrganizerID:         p.OrganizerID,
		Title:               p.Title,
		Description:         p.Description,
		Category:            p.Category,
		StartDate:           start,
		EndDate:             start.Add(time.Duration(p.DurationHours) * time.Hour),
		Location:            p.RecommendedLocation(),
		IsVirtual:           false,
		MaxAttendees:        p.ExpectedAttendees,
		TicketPrice:         0,
		Tags:                p.Tags,
		FacilitiesRequired:  p.FacilitiesRequired,
		Status:              EventStatusDraft,
		CreatedFromProposal: &proposalID,
		CreatedAt:           now,
	}
}

// ProposalInput — поля, задаваемые при подаче.
type ProposalInput struct {
	Title              string
	Description        string
	Category           string
	ExpectedAttendees  int
	PreferredDate      time.Time
	DurationHours      int
	FacilitiesRequired []string
	Tags               []string
	Justification      string
	TargetAudience     string
	LearningObjectives string
}

func (in ProposalInput) Validate() error {
	const op = "ProposalInput.Validate()"

	switch {
	case in.Title == "":
		return fmt.Errorf("%s: title is required: %w", op, ErrInvalidInput)
	case in.Description == "":
		return fmt.Errorf("%s: description is required: %w", op, ErrInvalidInput)
	case in.Category == "":
		return fmt.Errorf("%s: category is required: %w", op, ErrInvalidInput)
	case in.ExpectedAttendees <= 0:
		return fmt.Errorf("%s: expected attendees must be positive: %w", op, ErrInvalidInput)
	case in.DurationHours <= 0:
		return fmt.Errorf("%s: duration must be positive: %w", op, ErrInvalidInput)
	case in.PreferredDate.IsZero():
		return fmt.Errorf("%s: preferred date is required: %w", op, ErrInvalidInput)
	}
	return nil
}

// NewProposal создаёт поданное предложение с pending workflow.
func NewProposal(id, organizerID uuid.UUID, in ProposalInput, now time.Time) Proposal {
	return Proposal{
		ID:                  id,
		OrganizerID:         organizerID,
		Title:               in.Title,
		Description:         in.Description,
		Category:            in.Category,
		ExpectedAttendees:   in.ExpectedAttendees,
		PreferredDate:       in.PreferredDate,
		DurationHours:       in.DurationHours,
		FacilitiesRequired:  in.FacilitiesRequired,
		Tags:                in.Tags,
		Justification:       in.Justification,
		TargetAudience:      in.TargetAudience,
		LearningObjectives:  in.LearningObjectives,
		Status:              ProposalStatusSubmitted,
		SubmittedAt:         now,
		WorkflowStatus:      WorkflowStatusPending,
		WorkflowRequestedAt: now,
	}
}
