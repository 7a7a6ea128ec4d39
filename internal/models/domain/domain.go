package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role — роль профиля пользователя.
type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
	RoleAdmin     Role = "admin"
)

// EventStatus — статус публикации события.
type EventStatus string

const (
	// EventStatusDraft - создано вручную или из предложения, участникам не видно
	EventStatusDraft EventStatus = "draft"
	// EventStatusPublished - открыто для регистрации
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	default:
		return false
	}
}

// RegistrationStatus — состояние регистрации (событие, пользователь).
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
	RegistrationStatusAttended   RegistrationStatus = "attended"
)

// SessionType — тип пункта программы события.
type SessionType string

const (
	SessionTypeKeynote    SessionType = "keynote"
	SessionTypeWorkshop   SessionType = "workshop"
	SessionTypePanel      SessionType = "panel"
	SessionTypeNetworking SessionType = "networking"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeKeynote, SessionTypeWorkshop, SessionTypePanel, SessionTypeNetworking:
		return true
	default:
		return false
	}
}

type Profile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Role         Role
	FirstName    string
	LastName     string
	Email        string
	Organization string
	Bio          string
	Interests    []string
}

// DisplayName — имя в форме "Имя Фамилия" для предложений и событий.
func (p Profile) DisplayName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

type Event struct {
	ID                  uuid.UUID
	OrganizerID         uuid.UUID
	Title               string
	Description         string
	Category            string
	StartDate           time.Time
	EndDate             time.Time
	Location            string
	IsVirtual           bool
	VirtualLink         string
	MaxAttendees        int
	TicketPrice         float64
	Tags                []string
	FacilitiesRequired  []string
	Status              EventStatus
	CreatedFromProposal *uuid.UUID
	CreatedAt           time.Time
}

type Registration struct {
	ID           uuid.UUID
	EventID      uuid.UUID
	UserID       uuid.UUID
	Status       RegistrationStatus
	RegisteredAt time.Time
}

type Session struct {
	ID           uuid.UUID
	EventID      uuid.UUID
	Title        string
	Description  string
	SpeakerName  string
	SpeakerBio   string
	StartTime    time.Time
	EndTime      time.Time
	Location     string
	SessionType  SessionType
	MaxAttendees *int
	AISummary    string
}

type FeedbackCategories struct {
	Content      int `json:"content"`
	Speaker      int `json:"speaker"`
	Organization int `json:"organization"`
	Venue        int `json:"venue"`
}

type Feedback struct {
	ID             uuid.UUID
	EventID        uuid.UUID
	UserID         uuid.UUID
	SessionID      *uuid.UUID
	Rating         int
	Comments       string
	Categories     FeedbackCategories
	Suggestions    string
	WouldRecommend bool
	SubmittedAt    time.Time
}

// FeedbackStats — агрегат всех отзывов события.
type FeedbackStats struct {
	TotalResponses     int
	AverageRating      float64
	RatingDistribution map[int]int
}

// FeedbackSummary — AI-анализ отзывов события, только добавляется.
type FeedbackSummary struct {
	ID                     uuid.UUID
	EventID                uuid.UUID
	OrganizerID            uuid.UUID
	TotalResponses         int
	AverageRating          float64
	PositivePoints         []string
	RecurringProblems      []string
	ActionableImprovements []string
	RawSummary             string
	GeneratedAt            time.Time
}

// VenueTelemetry — снимок датчиков, по которому строится отчёт.
type VenueTelemetry struct {
	Temperature       int `json:"temperature"`
	AttendanceCount   int `json:"attendanceCount"`
	MicUsage          int `json:"micUsage"`
	EnergyConsumption int `json:"energyConsumption"`
	Duration          int `json:"duration"`
	AirQuality        int `json:"airQuality"`
	InternetUsage     int `json:"internetUsage"`
}

type SeminarSummary struct {
	ID               uuid.UUID
	EventID          uuid.UUID
	OrganizerID      uuid.UUID
	IoTData          VenueTelemetry
	SummaryText      string
	EnergyEfficiency int
	OverallScore     int
	GeneratedAt      time.Time
	IsPublished      bool
}

// GeneratedContent — ответ любого генератора текста.
type GeneratedContent struct {
	Success bool
	Content string
	Error   string
}

type Recommendation struct {
	EventID uuid.UUID `json:"eventId"`
	Title   string    `json:"title"`
	Score   int       `json:"score"`
	Reasons []string  `json:"reasons"`
}

// FeedbackAnalysis — структурированный результат анализа отзывов.
type FeedbackAnalysis struct {
	PositivePoints         []string
	RecurringProblems      []string
	ActionableImprovements []string
	OverallSummary         string
}
