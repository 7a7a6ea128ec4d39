package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/models/repositories"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateRegistration бронирует место. Строка события блокируется на время
// проверок вместимости и дублей, параллельные бронирования идут по очереди.
func (r *Repository) CreateRegistration(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	op := "repository.CreateRegistration()"

	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var maxAttendees int
		err := tx.GetContext(ctx, &maxAttendees,
			`SELECT max_attendees FROM events WHERE id = $1 FOR UPDATE`, reg.EventID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%s: %w", reg.EventID, domain.ErrEventNotFound)
			}
			return fmt.Errorf("lock event row: %w", err)
		}

		var exists bool
		err = tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`,
			reg.EventID, reg.UserID)
		if err != nil {
			return fmt.Errorf("check duplicate: %w", err)
		}
		if exists {
			return domain.ErrAlreadyRegistered
		}

		var registered int
		err = tx.GetContext(ctx, &registered,
			`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = $2`,
			reg.EventID, string(domain.RegistrationStatusRegistered))
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if registered >= maxAttendees {
			return domain.ErrEventFull
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO registrations (id, event_id, user_id, status, registered_at)
			VALUES ($1, $2, $3, $4, $5)`,
			reg.ID, reg.EventID, reg.UserID, string(reg.Status), reg.RegisteredAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAlreadyRegistered
			}
			return fmt.Errorf("insert registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("%s: %w", op, err)
	}

	return reg, nil
}

func (r *Repository) FindRegistration(ctx context.Context, eventID, userID uuid.UUID) (domain.Registration, error) {
	op := "repository.FindRegistration()"

	var row repositories.Registration
	err := r.DB.GetContext(ctx, &row,
		`SELECT id, event_id, user_id, status, registered_at FROM registrations
		WHERE event_id = $1 AND user_id = $2`,
		eventID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Registration{}, fmt.Errorf("%s: %w", op, domain.ErrRegistrationNotFound)
		}
		return domain.Registration{}, fmt.Errorf("%s: %w", op, err)
	}

	return mapRegistrationToDomain(row), nil
}

func (r *Repository) UpdateRegistrationStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus) error {
	op := "repository.UpdateRegistrationStatus()"

	result, err := r.DB.ExecContext(ctx,
		`UPDATE registrations SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: checking rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrRegistrationNotFound)
	}
	return nil
}

func (r *Repository) FindRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Registration, error) {
	op := "repository.FindRegistrationsByUser()"

	var rows []repositories.Registration
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT id, event_id, user_id, status, registered_at FROM registrations
		WHERE user_id = $1 ORDER BY registered_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]domain.Registration, len(rows))
	for i, row := range rows {
		result[i] = mapRegistrationToDomain(row)
	}
	return result, nil
}

// CountRegistered возвращает число активных регистраций события.
func (r *Repository) CountRegistered(ctx context.Context, eventID uuid.UUID) (int, error) {
	op := "repository.CountRegistered()"

	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = $2`,
		eventID, string(domain.RegistrationStatusRegistered))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

func mapRegistrationToDomain(r repositories.Registration) domain.Registration {
	return domain.Registration{
		ID:           r.ID,
		EventID:      r.EventID,
		UserID:       r.UserID,
		Status:       domain.RegistrationStatus(r.Status),
		RegisteredAt: r.RegisteredAt,
	}
}
