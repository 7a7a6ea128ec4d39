package dto

import (
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/services"

	"github.com/google/uuid"
)

type SessionResponse struct {
	ID           uuid.UUID `json:"id"`
	EventID      uuid.UUID `json:"event_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SpeakerName  string    `json:"speaker_name"`
	SpeakerBio   string    `json:"speaker_bio"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Location     string    `json:"location"`
	SessionType  string    `json:"session_type"`
	MaxAttendees *int      `json:"max_attendees"`
	AISummary    string    `json:"ai_summary"`
}

type CreateSessionRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SpeakerName  string    `json:"speaker_name"`
	SpeakerBio   string    `json:"speaker_bio"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Location     string    `json:"location"`
	SessionType  string    `json:"session_type"`
	MaxAttendees *int      `json:"max_attendees"`
}

type UpdateSessionRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	SpeakerName *string    `json:"speaker_name"`
	SpeakerBio  *string    `json:"speaker_bio"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    *string    `json:"location"`
	SessionType *string    `json:"session_type"`
	AISummary   *string    `json:"ai_summary"`
}

// MapDomainToSessionResponse конвертирует Session в SessionResponse DTO.
func MapDomainToSessionResponse(s domain.Session) SessionResponse {
	return SessionResponse{
		ID:           s.ID,
		EventID:      s.EventID,
		Title:        s.Title,
		Description:  s.Description,
		SpeakerName:  s.SpeakerName,
		SpeakerBio:   s.SpeakerBio,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Location:     s.Location,
		SessionType:  string(s.SessionType),
		MaxAttendees: s.MaxAttendees,
		AISummary:    s.AISummary,
	}
}

// MapDomainToSessionResponseList конвертирует слайс сессий в слайс DTO.
func MapDomainToSessionResponseList(sessions []domain.Session) []SessionResponse {
	result := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		result[i] = MapDomainToSessionResponse(s)
	}
	return result
}

// MapCreateSessionRequest конвертирует CreateSessionRequest DTO во входные данные сервиса.
func MapCreateSessionRequest(eventID uuid.UUID, req CreateSessionRequest) services.SessionInput {
	return services.SessionInput{
		EventID:      eventID,
		Title:        req.Title,
		Description:  req.Description,
		SpeakerName:  req.SpeakerName,
		SpeakerBio:   req.SpeakerBio,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Location:     req.Location,
		SessionType:  domain.SessionType(req.SessionType),
		MaxAttendees: req.MaxAttendees,
	}
}

// MapUpdateSessionRequest конвертирует UpdateSessionRequest DTO в патч сессии.
func MapUpdateSessionRequest(req UpdateSessionRequest) services.SessionPatch {
	patch := services.SessionPatch{
		Title:       req.Title,
		Description: req.Description,
		SpeakerName: req.SpeakerName,
		SpeakerBio:  req.SpeakerBio,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		AISummary:   req.AISummary,
	}
	if req.SessionType != nil {
		t := domain.SessionType(*req.SessionType)
		patch.SessionType = &t
	}
	return patch
}
