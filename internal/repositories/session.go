package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/models/repositories"

	"github.com/google/uuid"
)

const sessionColumns = `id, event_id, title, description, speaker_name, speaker_bio,
	start_time, end_time, location, session_type, max_attendees, ai_summary`

func (r *Repository) CreateSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	op := "repository.CreateSession()"

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	_, err := r.DB.NamedExecContext(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES (
			:id, :event_id, :title, :description, :speaker_name, :speaker_bio,
			:start_time, :end_time, :location, :session_type, :max_attendees, :ai_summary
		)`,
		mapSessionToRepo(session),
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

func (r *Repository) FindSessionByID(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	op := "repository.FindSessionByID()"

	var row repositories.Session
	if err := r.DB.GetContext(ctx, &row, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, fmt.Errorf("%s: %s: %w", op, id, domain.ErrSessionNotFound)
		}
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	return mapSessionToDomain(row), nil
}

func (r *Repository) FindSessionsByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Session, error) {
	op := "repository.FindSessionsByEvent()"

	var rows []repositories.Session
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT `+sessionColumns+` FROM sessions WHERE event_id = $1 ORDER BY start_time ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.Session, len(rows))
	for i, row := range rows {
		result[i] = mapSessionToDomain(row)
	}
	return result, nil
}

func (r *Repository) UpdateSession(ctx context.Context, session domain.Session) (domain.Session, error) {
	op := "repository.UpdateSession()"

	result, err := r.DB.NamedExecContext(ctx,
		`UPDATE sessions SET title = :title, description = :description,
			speaker_name = :speaker_name, speaker_bio = :speaker_bio,
			start_time = :start_time, end_time = :end_time, location = :location,
			session_type = :session_type, max_attendees = :max_attendees,
			ai_summary = :ai_summary
		WHERE id = :id`,
		mapSessionToRepo(session),
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: checking rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return domain.Session{}, fmt.Errorf("%s: %s: %w", op, session.ID, domain.ErrSessionNotFound)
	}

	return session, nil
}

func (r *Repository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	op := "repository.DeleteSession()"

	result, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: checking rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %s: %w", op, id, domain.ErrSessionNotFound)
	}
	return nil
}

func mapSessionToRepo(s domain.Session) repositories.Session {
	var maxAttendees sql.NullInt64
	if s.MaxAttendees != nil {
		maxAttendees = sql.NullInt64{Int64: int64(*s.MaxAttendees), Valid: true}
	}

	return repositories.Session{
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
		MaxAttendees: maxAttendees,
		AISummary:    s.AISummary,
	}
}

func mapSessionToDomain(s repositories.Session) domain.Session {
	var maxAttendees *int
	if s.MaxAttendees.Valid {
		v := int(s.MaxAttendees.Int64)
		maxAttendees = &v
	}

	return domain.Session{
		ID:           s.ID,
		EventID:      s.EventID,
		Title:        s.Title,
		Description:  s.Description,
		SpeakerName:  s.SpeakerName,
		SpeakerBio:   s.SpeakerBio,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Location:     s.Location,
		SessionType:  domain.SessionType(s.SessionType),
		MaxAttendees: maxAttendees,
		AISummary:    s.AISummary,
	}
}
