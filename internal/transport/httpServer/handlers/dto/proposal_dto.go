package dto

import (
	"time"

	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
)

// SubmitProposalRequest — тело POST /proposals.
type SubmitProposalRequest struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	ExpectedAttendees  int       `json:"expected_attendees"`
	PreferredDate      time.Time `json:"preferred_date"`
	DurationHours      int       `json:"duration_hours"`
	FacilitiesRequired []string  `json:"facilities_required"`
	Tags               []string  `json:"tags"`
	Justification      string    `json:"justification"`
	TargetAudience     string    `json:"target_audience"`
	LearningObjectives string    `json:"learning_objectives"`
}

// UpdateProposalStatusRequest — тело PUT /proposals/{proposalId}/status.
type UpdateProposalStatusRequest struct {
	Status        string `json:"status"`
	AdminComments string `json:"admin_comments"`
}

type HallRecommendationResponse struct {
	SelectedHall     string   `json:"selected_hall"`
	MatchScore       int      `json:"match_score"`
	Reasoning        string   `json:"reasoning"`
	AlternativeHalls []string `json:"alternative_halls"`
	FacilitiesMatch  []string `json:"facilities_match"`
	CapacityAnalysis string   `json:"capacity_analysis"`
}

type HallAvailabilityResponse struct {
	AvailableHalls       []string                    `json:"available_halls"`
	RecommendedHall      *HallRecommendationResponse `json:"recommended_hall"`
	HallSelectionSuccess bool                        `json:"hall_selection_success"`
}

type AISummaryResponse struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
	Error   string `json:"error,omitempty"`
}

type ProposalResponse struct {
	ID                 uuid.UUID  `json:"id"`
	OrganizerID        uuid.UUID  `json:"organizer_id"`
	OrganizerName      string     `json:"organizer_name,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	ExpectedAttendees  int        `json:"expected_attendees"`
	PreferredDate      time.Time  `json:"preferred_date"`
	DurationHours      int        `json:"duration_hours"`
	FacilitiesRequired []string   `json:"facilities_required"`
	Tags               []string   `json:"tags"`
	Justification      string     `json:"justification"`
	TargetAudience     string     `json:"target_audience"`
	LearningObjectives string     `json:"learning_objectives"`
	Status             string     `json:"status"`
	SubmittedAt        time.Time  `json:"submitted_at"`
	ReviewedAt         *time.Time `json:"reviewed_at"`
	ReviewedBy         *uuid.UUID `json:"reviewed_by"`
	AdminComments      string     `json:"admin_comments"`

	WorkflowStatus      string                    `json:"workflow_status"`
	WorkflowError       string                    `json:"workflow_error,omitempty"`
	WorkflowCompletedAt *time.Time                `json:"workflow_completed_at"`
	HallAvailability    *HallAvailabilityResponse `json:"hall_availability"`
	AISummary           *AISummaryResponse        `json:"ai_summary"`
	CreatedEventID      *uuid.UUID                `json:"created_event_id"`
}

// MapProposalRequestToInput конвертирует SubmitProposalRequest DTO во входные данные предложения.
func MapProposalRequestToInput(req SubmitProposalRequest) domain.ProposalInput {
	return domain.ProposalInput{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		ExpectedAttendees:  req.ExpectedAttendees,
		PreferredDate:      req.PreferredDate,
		DurationHours:      req.DurationHours,
		FacilitiesRequired: req.FacilitiesRequired,
		Tags:               req.Tags,
		Justification:      req.Justification,
		TargetAudience:     req.TargetAudience,
		LearningObjectives: req.LearningObjectives,
	}
}

// MapHallRecommendation конвертирует рекомендацию зала в DTO. nil остаётся nil.
func MapHallRecommendation(r *domain.HallRecommendation) *HallRecommendationResponse {
	if r == nil {
		return nil
	}
	return &HallRecommendationResponse{
		SelectedHall:     r.SelectedHall,
		MatchScore:       r.MatchScore,
		Reasoning:        r.Reasoning,
		AlternativeHalls: nonNil(r.AlternativeHalls),
		FacilitiesMatch:  nonNil(r.FacilitiesMatch),
		CapacityAnalysis: r.CapacityAnalysis,
	}
}

// MapDomainToProposalResponse конвертирует доменную модель Proposal в ProposalResponse DTO.
func MapDomainToProposalResponse(p domain.Proposal) ProposalResponse {
	resp := ProposalResponse{
		ID:                  p.ID,
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
		ReviewedAt:          p.ReviewedAt,
		ReviewedBy:          p.ReviewedBy,
		AdminComments:       p.AdminComments,
		WorkflowStatus:      string(p.WorkflowStatus),
		WorkflowError:       p.WorkflowError,
		WorkflowCompletedAt: p.WorkflowCompletedAt,
		CreatedEventID:      p.CreatedEventID,
	}

	if p.HallAvailability != nil {
		resp.HallAvailability = &HallAvailabilityResponse{
			AvailableHalls:       nonNil(p.HallAvailability.AvailableHalls),
			RecommendedHall:      MapHallRecommendation(p.HallAvailability.RecommendedHall),
			HallSelectionSuccess: p.HallAvailability.HallSelectionSuccess,
		}
	}
	if p.AISummary != nil {
		resp.AISummary = &AISummaryResponse{
			Success: p.AISummary.Success,
			Summary: p.AISummary.Summary,
			Error:   p.AISummary.Error,
		}
	}
	return resp
}

// MapDomainToProposalResponseList конвертирует слайс доменных моделей в слайс DTO.
func MapDomainToProposalResponseList(proposals []domain.Proposal) []ProposalResponse {
	result := make([]ProposalResponse, len(proposals))
	for i, p := range proposals {
		result[i] = MapDomainToProposalResponse(p)
	}
	return result
}

// MapProposalWithOrganizer добавляет к ответу имя организатора.
func MapProposalWithOrganizer(p domain.ProposalWithOrganizer) ProposalResponse {
	resp := MapDomainToProposalResponse(p.Proposal)
	resp.OrganizerName = p.OrganizerName
	return resp
}

// MapProposalWithOrganizerList конвертирует слайс предложений с организаторами в слайс DTO.
func MapProposalWithOrganizerList(proposals []domain.ProposalWithOrganizer) []ProposalResponse {
	result := make([]ProposalResponse, len(proposals))
	for i, p := range proposals {
		result[i] = MapProposalWithOrganizer(p)
	}
	return result
}

// nonNil отдаёт пустые списки как [], а не null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
