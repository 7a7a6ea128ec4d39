package halls

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/models/dto"
	"campusEvents/internal/utils"
	"campusEvents/internal/utils/logger/sl"
)

const (
	defaultHall       = "Gandhi Auditorium"
	defaultMatchScore = 85
)

var defaultAlternatives = []string{"Nehru Hall", "APJ Abdul Kalam Hall"}

// Completer — бэкенд генерации текста для AI-подбора.
type Completer interface {
	Enabled() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

// Requirements описывают событие, для которого нужен зал. Дата и длительность
// только для информации, календарь занятости не моделируется.
type Requirements struct {
	EventType          string
	ParticipantCount   int
	FacilitiesRequired []string
	EventDate          time.Time
	EventDuration      int
}

// Result всегда содержит рекомендацию, если Success равен true.
type Result struct {
	Success        bool                       `json:"success"`
	Recommendation *domain.HallRecommendation `json:"recommendation,omitempty"`
	Error          string                     `json:"error,omitempty"`
}

// Selector подбирает зал: через AI, если он доступен, иначе детерминированно.
type Selector struct {
	log       *slog.Logger
	completer Completer
}

// NewSelector создаёт новый экземпляр Selector. completer может быть nil.
func NewSelector(log *slog.Logger, completer Completer) *Selector {
	return &Selector{
		log:       log,
		completer: completer,
	}
}

// Select рекомендует зал и никогда не возвращает ошибку: при сбое completer
// используется детерминированный подбор.
func (s *Selector) Select(ctx context.Context, req Requirements) Result {
	op := "Selector.Select()"
	log := s.log.With(
		slog.String("op", op),
		slog.Int("participants", req.ParticipantCount),
	)

	if req.ParticipantCount <= 0 {
		return Result{Success: false, Error: "participant count must be positive"}
	}

	if s.completer == nil || !s.completer.Enabled() {
		rec := Rank(req)
		return Result{Success: true, Recommendation: &rec}
	}

	text, err := s.completer.Complete(ctx, buildPrompt(req))
	if err != nil {
		log.Warn("AI hall selection failed, using deterministic ranking", sl.Err(err))
		rec := Rank(req)
		return Result{Success: true, Recommendation: &rec}
	}

	var schema dto.HallSelectionSchema
	if err := json.Unmarshal([]byte(utils.CleanJSON(text)), &schema); err != nil {
		log.Warn("cannot parse AI hall selection, using default", sl.Err(err))
		rec := defaultRecommendation(req, text)
		return Result{Success: true, Recommendation: &rec}
	}

	rec := schema.ToDomain()
	if !acceptable(rec.SelectedHall, req) {
		log.Warn("AI selected an unsuitable hall, using deterministic ranking",
			slog.String("hall", rec.SelectedHall))
		rec = Rank(req)
	}
	if len(rec.FacilitiesMatch) == 0 {
		rec.FacilitiesMatch = facilitiesMatch(rec.SelectedHall, req.FacilitiesRequired)
	}

	log.Debug("hall selected", slog.String("hall", rec.SelectedHall), slog.Int("score", rec.MatchScore))
	return Result{Success: true, Recommendation: &rec}
}

// Rank — детерминированный подбор:
//  1. оставить залы с participants <= capacity <= 2*participants
//  2. для технических событий оставить только Technical залы
//  3. взять лучший по score, при равенстве раньше в каталоге
//  4. если никто не подошёл, взять первый зал каталога
func Rank(req Requirements) domain.HallRecommendation {
	technical := needsTechnical(req)

	var candidates []Hall
	for _, h := range catalog {
		if h.Capacity < req.ParticipantCount || h.Capacity > 2*req.ParticipantCount {
			continue
		}
		if technical && h.Type != HallTypeTechnical {
			continue
		}
		candidates = append(candidates, h)
	}

	fallback := len(candidates) == 0
	selected := catalog[0]
	if !fallback {
		selected = candidates[0]
		for _, h := range candidates[1:] {
			if h.Score > selected.Score {
				selected = h
			}
		}
	}

	alternatives := make([]string, 0, 2)
	for _, pool := range [][]Hall{candidates, catalog} {
		for _, h := range pool {
			if len(alternatives) == 2 {
				break
			}
			if h.Name == selected.Name || contains(alternatives, h.Name) {
				continue
			}
			alternatives = append(alternatives, h.Name)
		}
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = "general"
	}

	reasoning := fmt.Sprintf(
		"Selected %s for %d participants. This %s hall provides adequate capacity (%d) and suitable facilities for %s events, rated %.1f.",
		selected.Name, req.ParticipantCount, strings.ToLower(string(selected.Type)), selected.Capacity, eventType, selected.Rating,
	)
	if fallback {
		reasoning = fmt.Sprintf(
			"No hall matched the capacity range %d-%d%s. Falling back to %s, the highest rated hall in the catalog.",
			req.ParticipantCount, 2*req.ParticipantCount, technicalSuffix(technical), selected.Name,
		)
	}

	return domain.HallRecommendation{
		SelectedHall:     selected.Name,
		MatchScore:       selected.Score,
		Reasoning:        reasoning,
		AlternativeHalls: alternatives,
		FacilitiesMatch:  facilitiesMatch(selected.Name, req.FacilitiesRequired),
		CapacityAnalysis: capacityAnalysis(selected, req.ParticipantCount),
	}
}

// needsTechnical определяет техническое событие по типу или оборудованию.
func needsTechnical(req Requirements) bool {
	if strings.Contains(strings.ToLower(req.EventType), "technical") {
		return true
	}
	for _, f := range req.FacilitiesRequired {
		f = strings.ToLower(f)
		if strings.Contains(f, "computer") || strings.Contains(f, "smart") {
			return true
		}
	}
	return false
}

// acceptable отклоняет ответ AI с неизвестным залом, с маленьким залом, пока
// есть достаточно большой, и с Non-Technical залом для технического события,
// пока есть подходящий Technical зал.
func acceptable(name string, req Requirements) bool {
	h, ok := Find(name)
	if !ok {
		return false
	}

	technical := needsTechnical(req)
	fits := func(c Hall) bool {
		return c.Capacity >= req.ParticipantCount && (!technical || c.Type == HallTypeTechnical)
	}
	if fits(h) {
		return true
	}
	for _, c := range catalog {
		if fits(c) {
			return false
		}
	}

	return h.Capacity >= req.ParticipantCount || !hasCapacity(req.ParticipantCount)
}

// hasCapacity сообщает, вмещает ли хоть один зал participants.
func hasCapacity(participants int) bool {
	for _, c := range catalog {
		if c.Capacity >= participants {
			return true
		}
	}
	return false
}

// defaultRecommendation используется, когда ответ AI не разобрать.
func defaultRecommendation(req Requirements, raw string) domain.HallRecommendation {
	return domain.HallRecommendation{
		SelectedHall:     defaultHall,
		MatchScore:       defaultMatchScore,
		Reasoning:        raw,
		AlternativeHalls: append([]string(nil), defaultAlternatives...),
		FacilitiesMatch:  facilitiesMatch(defaultHall, req.FacilitiesRequired),
		CapacityAnalysis: fmt.Sprintf("Recommended for %d participants", req.ParticipantCount),
	}
}

// facilitiesMatch возвращает требуемое оборудование, которое есть в зале.
func facilitiesMatch(hallName string, required []string) []string {
	h, ok := Find(hallName)
	if !ok {
		return []string{}
	}
	matched := make([]string, 0, len(required))
	for _, f := range required {
		if h.Offers(f) {
			matched = append(matched, f)
		}
	}
	return matched
}

// capacityAnalysis описывает запас мест.
func capacityAnalysis(h Hall, participants int) string {
	if h.Capacity < participants {
		return fmt.Sprintf("Hall capacity of %d is below the expected %d participants; consider splitting the event or a larger venue",
			h.Capacity, participants)
	}
	buffer := h.Capacity - participants
	return fmt.Sprintf("Hall capacity of %d is suitable for %d participants with a buffer of %d seats (%d%%)",
		h.Capacity, participants, buffer, buffer*100/participants)
}

func technicalSuffix(technical bool) string {
	if technical {
		return " among Technical halls"
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// buildPrompt собирает промпт подбора зала.
func buildPrompt(req Requirements) string {
	date := "not specified"
	if !req.EventDate.IsZero() {
		date = req.EventDate.Format("2006-01-02")
	}

	return fmt.Sprintf(`You are an AI assistant for a university seminar hall booking system.

Event Requirements:
- Event Type: %s
- Expected Participants: %d
- Required Facilities: %s
- Event Date: %s
- Duration: %d hours

Available Halls (CSV format):
%s
Recommend the BEST hall based on:
1. Capacity match (must accommodate all participants with a 10-20%% buffer)
2. Event type compatibility (Technical/Non-Technical)
3. Required facilities availability
4. Hall rating and location convenience
5. IoT features for monitoring

Respond only with JSON in this format:
{
  "selectedHall": "Hall Name",
  "matchScore": 95,
  "reasoning": "Why this hall was selected",
  "alternativeHalls": ["Hall1", "Hall2"],
  "facilitiesMatch": ["facility1", "facility2"],
  "capacityAnalysis": "Capacity analysis details"
}`,
		req.EventType,
		req.ParticipantCount,
		strings.Join(req.FacilitiesRequired, ", "),
		date,
		req.EventDuration,
		csvRows(),
	)
}
