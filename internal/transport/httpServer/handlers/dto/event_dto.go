package dto

import (
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/services"

	"github.com/google/uuid"
)

// EventResponse — публичное представление события.
type EventResponse struct {
	ID                  uuid.UUID  `json:"id"`
	OrganizerID         uuid.UUID  `json:"organizer_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Category            string     `json:"category"`
	StartDate           time.Time  `json:"start_date"`
	EndDate             time.Time  `json:"end_date"`
	Location            string     `json:"location"`
	IsVirtual           bool       `json:"is_virtual"`
	VirtualLink         string     `json:"virtual_link"`
	MaxAttendees        int        `json:"max_attendees"`
	TicketPrice         float64    `json:"ticket_price"`
	Tags                []string   `json:"tags"`
	FacilitiesRequired  []string   `json:"facilities_required"`
	Status              string     `json:"status"`
	CreatedFromProposal *uuid.UUID `json:"created_from_proposal"`
	CreatedAt           time.Time  `json:"created_at"`
}

type EventDetailsResponse struct {
	EventResponse
	Organizer *ProfileResponse `json:"organizer"`
}

// CreateEventRequest — тело POST /events.
type CreateEventRequest struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	Location           string    `json:"location"`
	IsVirtual          bool      `json:"is_virtual"`
	VirtualLink        string    `json:"virtual_link"`
	MaxAttendees       int       `json:"max_attendees"`
	TicketPrice        float64   `json:"ticket_price"`
	Tags               []string  `json:"tags"`
	FacilitiesRequired []string  `json:"facilities_required"`
}

// UpdateEventRequest — тело PATCH /events/{eventId}. Отсутствующие поля не
// меняются.
type UpdateEventRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	Category           *string    `json:"category"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	Location           *string    `json:"location"`
	IsVirtual          *bool      `json:"is_virtual"`
	VirtualLink        *string    `json:"virtual_link"`
	MaxAttendees       *int       `json:"max_attendees"`
	TicketPrice        *float64   `json:"ticket_price"`
	Tags               *[]string  `json:"tags"`
	FacilitiesRequired *[]string  `json:"facilities_required"`
	Status             *string    `json:"status"`
}

type RegistrationResponse struct {
	ID           uuid.UUID      `json:"id"`
	EventID      uuid.UUID      `json:"event_id"`
	UserID       uuid.UUID      `json:"user_id"`
	Status       string         `json:"status"`
	RegisteredAt time.Time      `json:"registered_at"`
	Event        *EventResponse `json:"event,omitempty"`
}

// MapDomainToEventResponse конвертирует доменную модель Event в EventResponse DTO.
func MapDomainToEventResponse(e domain.Event) EventResponse {
	return EventResponse{
		ID:                  e.ID,
		OrganizerID:         e.OrganizerID,
		Title:               e.Title,
		Description:         e.Description,
		Category:            e.Category,
		StartDate:           e.StartDate,
		EndDate:             e.EndDate,
		Location:            e.Location,
		IsVirtual:           e.IsVirtual,
		VirtualLink:         e.VirtualLink,
		MaxAttendees:        e.MaxAttendees,
		TicketPrice:         e.TicketPrice,
		Tags:                nonNil(e.Tags),
		FacilitiesRequired:  nonNil(e.FacilitiesRequired),
		Status:              string(e.Status),
		CreatedFromProposal: e.CreatedFromProposal,
		CreatedAt:           e.CreatedAt,
	}
}

// MapDomainToEventResponseList конвертирует слайс доменных моделей в слайс DTO.
func MapDomainToEventResponseList(events []domain.Event) []EventResponse {
	result := make([]EventResponse, len(events))
	for i, e := range events {
		result[i] = MapDomainToEventResponse(e)
	}
	return result
}

// MapEventDetails конвертирует событие с организатором в EventDetailsResponse.
func MapEventDetails(e domain.EventWithOrganizer) EventDetailsResponse {
	resp := EventDetailsResponse{EventResponse: MapDomainToEventResponse(e.Event)}
	if e.Organizer != nil {
		p := MapDomainToProfileResponse(*e.Organizer)
		resp.Organizer = &p
	}
	return resp
}

// MapCreateEventRequest конвертирует CreateEventRequest DTO во входные данные сервиса.
func MapCreateEventRequest(req CreateEventRequest) services.EventInput {
	return services.EventInput{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Location:           req.Location,
		IsVirtual:          req.IsVirtual,
		VirtualLink:        req.VirtualLink,
		MaxAttendees:       req.MaxAttendees,
		TicketPrice:        req.TicketPrice,
		Tags:               req.Tags,
		FacilitiesRequired: req.FacilitiesRequired,
	}
}

// MapUpdateEventRequest конвертирует UpdateEventRequest DTO в патч события.
func MapUpdateEventRequest(req UpdateEventRequest) services.EventPatch {
	patch := services.EventPatch{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Location:           req.Location,
		IsVirtual:          req.IsVirtual,
		VirtualLink:        req.VirtualLink,
		MaxAttendees:       req.MaxAttendees,
		TicketPrice:        req.TicketPrice,
		Tags:               req.Tags,
		FacilitiesRequired: req.FacilitiesRequired,
	}
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		patch.Status = &status
	}
	return patch
}

// MapDomainToRegistrationResponse конвертирует Registration в RegistrationResponse DTO.
func MapDomainToRegistrationResponse(r domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:           r.ID,
		EventID:      r.EventID,
		UserID:       r.UserID,
		Status:       string(r.Status),
		RegisteredAt: r.RegisteredAt,
	}
}

// MapRegistrationsWithEvent конвертирует регистрации с событиями в слайс DTO.
func MapRegistrationsWithEvent(regs []domain.RegistrationWithEvent) []RegistrationResponse {
	result := make([]RegistrationResponse, len(regs))
	for i, r := range regs {
		event := MapDomainToEventResponse(r.Event)
		result[i] = MapDomainToRegistrationResponse(r.Registration)
		result[i].Event = &event
	}
	return result
}
