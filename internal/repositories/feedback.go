package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/models/repositories"

	"github.com/google/uuid"
)

const feedbackColumns = `id, event_id, user_id, session_id, rating, comments, categories,
	suggestions, would_recommend, submitted_at`

func (r *Repository) CreateFeedback(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	op := "repository.CreateFeedback()"

	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}

	categories, err := json.Marshal(feedback.Categories)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("%s: %w", op, err)
	}

	var sessionID uuid.NullUUID
	if feedback.SessionID != nil {
		sessionID = uuid.NullUUID{UUID: *feedback.SessionID, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO feedback (`+feedbackColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		feedback.ID,
		feedback.EventID,
		feedback.UserID,
		sessionID,
		feedback.Rating,
		feedback.Comments,
		string(categories),
		feedback.Suggestions,
		feedback.WouldRecommend,
		feedback.SubmittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Feedback{}, fmt.Errorf("%s: %w", op, domain.ErrFeedbackExists)
		}
		return domain.Feedback{}, fmt.Errorf("%s: %w", op, err)
	}

	return feedback, nil
}

// FeedbackExists сообщает, оставил ли пользователь отзыв о событии.
func (r *Repository) FeedbackExists(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	op := "repository.FeedbackExists()"

	var exists bool
	err := r.DB.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM feedback WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

func (r *Repository) FindFeedbackByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Feedback, error) {
	op := "repository.FindFeedbackByEvent()"

	feedback, err := r.selectFeedback(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE event_id = $1 ORDER BY submitted_at DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return feedback, nil
}

func (r *Repository) FindFeedbackByUser(ctx context.Context, userID uuid.UUID) ([]domain.Feedback, error) {
	op := "repository.FindFeedbackByUser()"

	feedback, err := r.selectFeedback(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE user_id = $1 ORDER BY submitted_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return feedback, nil
}

func (r *Repository) selectFeedback(ctx context.Context, query string, args ...any) ([]domain.Feedback, error) {
	var rows []repositories.Feedback
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	result := make([]domain.Feedback, 0, len(rows))
	for _, row := range rows {
		f, err := mapFeedbackToDomain(row)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, nil
}

func (r *Repository) CreateFeedbackSummary(ctx context.Context, summary domain.FeedbackSummary) (domain.FeedbackSummary, error) {
	op := "repository.CreateFeedbackSummary()"

	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}

	_, err := r.DB.NamedExecContext(ctx,
		`INSERT INTO feedback_summaries (
			id, event_id, organizer_id, total_responses, average_rating, positive_points,
			recurring_problems, actionable_improvements, raw_summary, generated_at
		) VALUES (
			:id, :event_id, :organizer_id, :total_responses, :average_rating, :positive_points,
			:recurring_problems, :actionable_improvements, :raw_summary, :generated_at
		)`,
		repositories.FeedbackSummary{
			ID:                     summary.ID,
			EventID:                summary.EventID,
			OrganizerID:            summary.OrganizerID,
			TotalResponses:         summary.TotalResponses,
			AverageRating:          summary.AverageRating,
			PositivePoints:         nonNil(summary.PositivePoints),
			RecurringProblems:      nonNil(summary.RecurringProblems),
			ActionableImprovements: nonNil(summary.ActionableImprovements),
			RawSummary:             summary.RawSummary,
			GeneratedAt:            summary.GeneratedAt,
		},
	)
	if err != nil {
		return domain.FeedbackSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return summary, nil
}

func (r *Repository) FindLatestFeedbackSummary(ctx context.Context, eventID uuid.UUID) (domain.FeedbackSummary, error) {
	op := "repository.FindLatestFeedbackSummary()"

	var row repositories.FeedbackSummary
	err := r.DB.GetContext(ctx, &row,
		`SELECT id, event_id, organizer_id, total_responses, average_rating, positive_points,
			recurring_problems, actionable_improvements, raw_summary, generated_at
		FROM feedback_summaries WHERE event_id = $1
		ORDER BY generated_at DESC LIMIT 1`, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FeedbackSummary{}, fmt.Errorf("%s: %w", op, domain.ErrSummaryNotFound)
		}
		return domain.FeedbackSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.FeedbackSummary{
		ID:                     row.ID,
		EventID:                row.EventID,
		OrganizerID:            row.OrganizerID,
		TotalResponses:         row.TotalResponses,
		AverageRating:          row.AverageRating,
		PositivePoints:         []string(row.PositivePoints),
		RecurringProblems:      []string(row.RecurringProblems),
		ActionableImprovements: []string(row.ActionableImprovements),
		RawSummary:             row.RawSummary,
		GeneratedAt:            row.GeneratedAt,
	}, nil
}

func mapFeedbackToDomain(row repositories.Feedback) (domain.Feedback, error) {
	f := domain.Feedback{
		ID:             row.ID,
		EventID:        row.EventID,
		UserID:         row.UserID,
		Rating:         row.Rating,
		Comments:       row.Comments,
		Suggestions:    row.Suggestions,
		WouldRecommend: row.WouldRecommend,
		SubmittedAt:    row.SubmittedAt,
	}
	if row.SessionID.Valid {
		id := row.SessionID.UUID
		f.SessionID = &id
	}
	if len(row.Categories) > 0 {
		if err := json.Unmarshal(row.Categories, &f.Categories); err != nil {
			return domain.Feedback{}, fmt.Errorf("decode feedback categories: %w", err)
		}
	}
	return f, nil
}
