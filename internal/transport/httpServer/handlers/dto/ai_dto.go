package dto

import (
	"time"

	"campusEvents/internal/assistant"
	"campusEvents/internal/halls"
	"campusEvents/internal/models/domain"
)

type EventDescriptionRequest struct {
	Title            string `json:"title"`
	Category         string `json:"category"`
	BasicDescription string `json:"basic_description"`
	TargetAudience   string `json:"target_audience"`
}

type ProposalDescriptionRequest struct {
	Title              string `json:"title"`
	Category           string `json:"category"`
	TargetAudience     string `json:"target_audience"`
	LearningObjectives string `json:"learning_objectives"`
	Justification      string `json:"justification"`
}

type ProposalTagsRequest struct {
	Title          string `json:"title"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	TargetAudience string `json:"target_audience"`
}

type SocialPostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Platform    string `json:"platform"`
}

type SessionSummaryRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SpeakerName string   `json:"speaker_name"`
	SessionType string   `json:"session_type"`
	KeyPoints   []string `json:"key_points"`
}

type FAQRequest struct {
	Question     string `json:"question"`
	EventContext string `json:"event_context"`
	EventDetails string `json:"event_details"`
}

type GeneratedContentResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

type TagsResponse struct {
	Success bool     `json:"success"`
	Tags    []string `json:"tags"`
	Error   string   `json:"error,omitempty"`
}

type RecommendationResponse struct {
	EventID string   `json:"event_id"`
	Title   string   `json:"title"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

type RecommendationsResponse struct {
	Success         bool                     `json:"success"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	Error           string                   `json:"error,omitempty"`
}

type HallResponse struct {
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Type        string   `json:"type"`
	Score       int      `json:"score"`
	Rating      float64  `json:"rating"`
	Location    string   `json:"location"`
	IoTFeatures []string `json:"iot_features"`
	WiFiSpeed   int      `json:"wifi_speed"`
	AC          bool     `json:"ac"`
	SmartBoard  bool     `json:"smart_board"`
	Computers   int      `json:"computers"`
	Mics        int      `json:"mics"`
	SoundSystem string   `json:"sound_system"`
}

type SelectHallRequest struct {
	EventType          string    `json:"event_type"`
	ParticipantCount   int       `json:"participant_count"`
	FacilitiesRequired []string  `json:"facilities_required"`
	EventDate          time.Time `json:"event_date"`
	EventDuration      int       `json:"event_duration"`
}

type SelectHallResponse struct {
	Success        bool                        `json:"success"`
	Recommendation *HallRecommendationResponse `json:"recommendation,omitempty"`
	Error          string                      `json:"error,omitempty"`
}

// MapGeneratedContent конвертирует результат генератора в GeneratedContentResponse.
func MapGeneratedContent(c domain.GeneratedContent) GeneratedContentResponse {
	return GeneratedContentResponse{Success: c.Success, Content: c.Content, Error: c.Error}
}

// MapTagsResult конвертирует подбор тегов в TagsResponse.
func MapTagsResult(r assistant.TagsResult) TagsResponse {
	return TagsResponse{Success: r.Success, Tags: nonNil(r.Tags), Error: r.Error}
}

// MapRecommendations конвертирует рекомендации в RecommendationsResponse.
func MapRecommendations(r assistant.RecommendationsResult) RecommendationsResponse {
	recs := make([]RecommendationResponse, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		recs[i] = RecommendationResponse{
			EventID: rec.EventID.String(),
			Title:   rec.Title,
			Score:   rec.Score,
			Reasons: nonNil(rec.Reasons),
		}
	}
	return RecommendationsResponse{Success: r.Success, Recommendations: recs, Error: r.Error}
}

// MapHalls конвертирует каталог залов в слайс DTO.
func MapHalls(list []halls.Hall) []HallResponse {
	result := make([]HallResponse, len(list))
	for i, h := range list {
		result[i] = HallResponse{
			Name:        h.Name,
			Capacity:    h.Capacity,
			Type:        string(h.Type),
			Score:       h.Score,
			Rating:      h.Rating,
			Location:    h.Location,
			IoTFeatures: nonNil(h.IoTFeatures),
			WiFiSpeed:   h.WiFiSpeed,
			AC:          h.AC,
			SmartBoard:  h.SmartBoard,
			Computers:   h.Computers,
			Mics:        h.Mics,
			SoundSystem: h.SoundSystem,
		}
	}
	return result
}

// MapSelectHallRequest конвертирует SelectHallRequest в требования к залу.
func MapSelectHallRequest(req SelectHallRequest) halls.Requirements {
	return halls.Requirements{
		EventType:          req.EventType,
		ParticipantCount:   req.ParticipantCount,
		FacilitiesRequired: req.FacilitiesRequired,
		EventDate:          req.EventDate,
		EventDuration:      req.EventDuration,
	}
}

// MapSelectHallResult конвертирует результат подбора в SelectHallResponse.
func MapSelectHallResult(r halls.Result) SelectHallResponse {
	return SelectHallResponse{
		Success:        r.Success,
		Recommendation: MapHallRecommendation(r.Recommendation),
		Error:          r.Error,
	}
}
