package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BaseModel struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Profile struct {
	BaseModel
	UserID       uuid.UUID      `db:"user_id"`
	Role         string         `db:"role"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	Email        string         `db:"email"`
	Organization string         `db:"organization"`
	Bio          string         `db:"bio"`
	Interests    pq.StringArray `db:"interests"`
}

type Proposal struct {
	BaseModel
	OrganizerID         uuid.UUID      `db:"organizer_id"`
	Title               string         `db:"title"`
	Description         string         `db:"description"`
	Category            string         `db:"category"`
	ExpectedAttendees   int            `db:"expected_attendees"`
	PreferredDate       time.Time      `db:"preferred_date"`
	DurationHours       int            `db:"duration_hours"`
	FacilitiesRequired  pq.StringArray `db:"facilities_required"`
	Tags                pq.StringArray `db:"tags"`
	Justification       string         `db:"justification"`
	TargetAudience      string         `db:"target_audience"`
	LearningObjectives  string         `db:"learning_objectives"`
	Status              string         `db:"status"`
	SubmittedAt         time.Time      `db:"submitted_at"`
	ReviewedAt          sql.NullTime   `db:"reviewed_at"`
	ReviewedBy          uuid.NullUUID  `db:"reviewed_by"`
	AdminComments       string         `db:"admin_comments"`
	WorkflowStatus      string         `db:"workflow_status"`
	WorkflowError       string         `db:"workflow_error"`
	WorkflowAttempts    int            `db:"workflow_attempts"`
	WorkflowRequestedAt time.Time      `db:"workflow_requested_at"`
	WorkflowCompletedAt sql.NullTime   `db:"workflow_completed_at"`
	HallAvailability    []byte         `db:"hall_availability"`
	AISummary           []byte         `db:"ai_summary"`
	CreatedEventID      uuid.NullUUID  `db:"created_event_id"`
}

// ProposalWithOrganizer добавляет имя организатора из join.
type ProposalWithOrganizer struct {
	Proposal
	OrganizerFirstName sql.NullString `db:"organizer_first_name"`
	OrganizerLastName  sql.NullString `db:"organizer_last_name"`
}

type Event struct {
	BaseModel
	OrganizerID         uuid.UUID      `db:"organizer_id"`
	Title               string         `db:"title"`
	Description         string         `db:"description"`
	Category            string         `db:"category"`
	StartDate           time.Time      `db:"start_date"`
	EndDate             time.Time      `db:"end_date"`
	Location            string         `db:"location"`
	IsVirtual           bool           `db:"is_virtual"`
	VirtualLink         string         `db:"virtual_link"`
	MaxAttendees        int            `db:"max_attendees"`
	TicketPrice         float64        `db:"ticket_price"`
	Tags                pq.StringArray `db:"tags"`
	FacilitiesRequired  pq.StringArray `db:"facilities_required"`
	Status              string         `db:"status"`
	CreatedFromProposal uuid.NullUUID  `db:"created_from_proposal"`
}

type Registration struct {
	ID           uuid.UUID `db:"id"`
	EventID      uuid.UUID `db:"event_id"`
	UserID       uuid.UUID `db:"user_id"`
	Status       string    `db:"status"`
	RegisteredAt time.Time `db:"registered_at"`
}

type Session struct {
	ID           uuid.UUID     `db:"id"`
	EventID      uuid.UUID     `db:"event_id"`
	Title        string        `db:"title"`
	Description  string        `db:"description"`
	SpeakerName  string        `db:"speaker_name"`
	SpeakerBio   string        `db:"speaker_bio"`
	StartTime    time.Time     `db:"start_time"`
	EndTime      time.Time     `db:"end_time"`
	Location     string        `db:"location"`
	SessionType  string        `db:"session_type"`
	MaxAttendees sql.NullInt64 `db:"max_attendees"`
	AISummary    string        `db:"ai_summary"`
}

type Feedback struct {
	ID             uuid.UUID     `db:"id"`
	EventID        uuid.UUID     `db:"event_id"`
	UserID         uuid.UUID     `db:"user_id"`
	SessionID      uuid.NullUUID `db:"session_id"`
	Rating         int           `db:"rating"`
	Comments       string        `db:"comments"`
	Categories     []byte        `db:"categories"`
	Suggestions    string        `db:"suggestions"`
	WouldRecommend bool          `db:"would_recommend"`
	SubmittedAt    time.Time     `db:"submitted_at"`
}

type FeedbackSummary struct {
	ID                     uuid.UUID      `db:"id"`
	EventID                uuid.UUID      `db:"event_id"`
	OrganizerID            uuid.UUID      `db:"organizer_id"`
	TotalResponses         int            `db:"total_responses"`
	AverageRating          float64        `db:"average_rating"`
	PositivePoints         pq.StringArray `db:"positive_points"`
	RecurringProblems      pq.StringArray `db:"recurring_problems"`
	ActionableImprovements pq.StringArray `db:"actionable_improvements"`
	RawSummary             string         `db:"raw_summary"`
	GeneratedAt            time.Time      `db:"generated_at"`
}

type SeminarSummary struct {
	ID               uuid.UUID `db:"id"`
	EventID          uuid.UUID `db:"event_id"`
	OrganizerID      uuid.UUID `db:"organizer_id"`
	IoTData          []byte    `db:"iot_data"`
	SummaryText      string    `db:"summary_text"`
	EnergyEfficiency int       `db:"energy_efficiency"`
	OverallScore     int       `db:"overall_score"`
	GeneratedAt      time.Time `db:"generated_at"`
	IsPublished      bool      `db:"is_published"`
}
