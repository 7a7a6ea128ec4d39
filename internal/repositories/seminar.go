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

const seminarColumns = `id, event_id, organizer_id, iot_data, summary_text, energy_efficiency,
	overall_score, generated_at, is_published`

func (r *Repository) CreateSeminarSummary(ctx context.Context, summary domain.SeminarSummary) (domain.SeminarSummary, error) {
	op := "repository.CreateSeminarSummary()"

	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}

	iotData, err := json.Marshal(summary.IoTData)
	if err != nil {
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO seminar_summaries (`+seminarColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		summary.ID,
		summary.EventID,
		summary.OrganizerID,
		string(iotData),
		summary.SummaryText,
		summary.EnergyEfficiency,
		summary.OverallScore,
		summary.GeneratedAt,
		summary.IsPublished,
	)
	if err != nil {
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return summary, nil
}

func (r *Repository) FindSeminarSummaryByID(ctx context.Context, id uuid.UUID) (domain.SeminarSummary, error) {
	op := "repository.FindSeminarSummaryByID()"

	var row repositories.SeminarSummary
	if err := r.DB.GetContext(ctx, &row, `SELECT `+seminarColumns+` FROM seminar_summaries WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, domain.ErrSummaryNotFound)
		}
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return mapSeminarToDomain(row)
}

func (r *Repository) FindLatestSeminarSummary(ctx context.Context, eventID uuid.UUID) (domain.SeminarSummary, error) {
	op := "repository.FindLatestSeminarSummary()"

	var row repositories.SeminarSummary
	err := r.DB.GetContext(ctx, &row,
		`SELECT `+seminarColumns+` FROM seminar_summaries WHERE event_id = $1
		ORDER BY generated_at DESC LIMIT 1`, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, domain.ErrSummaryNotFound)
		}
		return domain.SeminarSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return mapSeminarToDomain(row)
}

func (r *Repository) PublishSeminarSummary(ctx context.Context, id uuid.UUID) error {
	op := "repository.PublishSeminarSummary()"

	result, err := r.DB.ExecContext(ctx, `UPDATE seminar_summaries SET is_published = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: checking rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrSummaryNotFound)
	}
	return nil
}

func (r *Repository) FindPublishedSeminarSummaries(ctx context.Context, limit int) ([]domain.SeminarSummary, error) {
	op := "repository.FindPublishedSeminarSummaries()"

	var rows []repositories.SeminarSummary
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT `+seminarColumns+` FROM seminar_summaries WHERE is_published
		ORDER BY generated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.SeminarSummary, 0, len(rows))
	for _, row := range rows {
		s, err := mapSeminarToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, s)
	}
	return result, nil
}

func mapSeminarToDomain(row repositories.SeminarSummary) (domain.SeminarSummary, error) {
	s := domain.SeminarSummary{
		ID:               row.ID,
		EventID:          row.EventID,
		OrganizerID:      row.OrganizerID,
		SummaryText:      row.SummaryText,
		EnergyEfficiency: row.EnergyEfficiency,
		OverallScore:     row.OverallScore,
		GeneratedAt:      row.GeneratedAt,
		IsPublished:      row.IsPublished,
	}
	if err := json.Unmarshal(row.IoTData, &s.IoTData); err != nil {
		return domain.SeminarSummary{}, fmt.Errorf("decode iot data: %w", err)
	}
	return s, nil
}
