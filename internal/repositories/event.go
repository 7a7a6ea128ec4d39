package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/models/repositories"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const eventColumns = `id, organizer_id, title, description, category, start_date, end_date,
	location, is_virtual, virtual_link, max_attendees, ticket_price, tags,
	facilities_required, status, created_from_proposal, created_at, updated_at`

const insertEventQuery = `INSERT INTO events (
	id, organizer_id, title, description, category, start_date, end_date,
	location, is_virtual, virtual_link, max_attendees, ticket_price, tags,
	facilities_required, status, created_from_proposal, created_at, updated_at
) VALUES (
	:id, :organizer_id, :title, :description, :category, :start_date, :end_date,
	:location, :is_virtual, :virtual_link, :max_attendees, :ticket_price, :tags,
	:facilities_required, :status, :created_from_proposal, :created_at, :created_at
)`

func (r *Repository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	op := "repository.CreateEvent()"

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if _, err := r.DB.NamedExecContext(ctx, insertEventQuery, mapEventToRepo(event)); err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (r *Repository) FindEventByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	op := "repository.FindEventByID()"

	var repoEvent repositories.Event
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 LIMIT 1`

	if err := r.DB.GetContext(ctx, &repoEvent, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, fmt.Errorf("%s: %s: %w", op, id, domain.ErrEventNotFound)
		}
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return mapEventToDomain(repoEvent), nil
}

func (r *Repository) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	op := "repository.UpdateEvent()"

	updateQuery := `UPDATE events SET
		title = :title, description = :description, category = :category,
		start_date = :start_date, end_date = :end_date, location = :location,
		is_virtual = :is_virtual, virtual_link = :virtual_link,
		max_attendees = :max_attendees, ticket_price = :ticket_price, tags = :tags,
		facilities_required = :facilities_required, status = :status,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = :id`

	result, err := r.DB.NamedExecContext(ctx, updateQuery, mapEventToRepo(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: checking rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return domain.Event{}, fmt.Errorf("%s: %s: %w", op, event.ID, domain.ErrEventNotFound)
	}

	return event, nil
}

func (r *Repository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	op := "repository.DeleteEvent()"

	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: checking rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %s: %w", op, id, domain.ErrEventNotFound)
	}

	return nil
}

// ListEvents возвращает события, новые первыми, опционально по статусу.
// limit <= 0 означает без лимита.
func (r *Repository) ListEvents(ctx context.Context, status domain.EventStatus, limit int) ([]domain.Event, error) {
	op := "repository.ListEvents()"

	var (
		conds []string
		args  []any
	)
	if status != "" {
		args = append(args, string(status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	events, err := r.selectEvents(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

func (r *Repository) FindEventsByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]domain.Event, error) {
	op := "repository.FindEventsByOrganizer()"

	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY created_at DESC`
	events, err := r.selectEvents(ctx, query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

func (r *Repository) FindEventsByCategory(ctx context.Context, category string) ([]domain.Event, error) {
	op := "repository.FindEventsByCategory()"

	query := `SELECT ` + eventColumns + ` FROM events
		WHERE category = $1 AND status = $2 ORDER BY start_date ASC`
	events, err := r.selectEvents(ctx, query, category, string(domain.EventStatusPublished))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

func (r *Repository) FindUpcomingEvents(ctx context.Context, now time.Time, limit int) ([]domain.Event, error) {
	op := "repository.FindUpcomingEvents()"

	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = $1 AND start_date > $2 ORDER BY start_date ASC LIMIT $3`
	events, err := r.selectEvents(ctx, query, string(domain.EventStatusPublished), now, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

func (r *Repository) FindPastEvents(ctx context.Context, now time.Time) ([]domain.Event, error) {
	op := "repository.FindPastEvents()"

	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = $1 AND end_date < $2 ORDER BY start_date DESC`
	events, err := r.selectEvents(ctx, query, string(domain.EventStatusPublished), now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// SearchEvents ищет опубликованные события по названию, описанию, категории или тегу.
func (r *Repository) SearchEvents(ctx context.Context, term string) ([]domain.Event, error) {
	op := "repository.SearchEvents()"

	pattern := "%" + escapeLike(strings.TrimSpace(term)) + "%"
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = $1 AND (
			title ILIKE $2 OR description ILIKE $2 OR category ILIKE $2
			OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $2)
		)
		ORDER BY start_date ASC`
	events, err := r.selectEvents(ctx, query, string(domain.EventStatusPublished), pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

func (r *Repository) FindEventsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Event, error) {
	op := "repository.FindEventsByIDs()"

	result := make(map[uuid.UUID]domain.Event, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1::uuid[])`
	events, err := r.selectEvents(ctx, query, pq.Array(strIDs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, e := range events {
		result[e.ID] = e
	}
	return result, nil
}

func (r *Repository) selectEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	var repoEvents []repositories.Event
	if err := r.DB.SelectContext(ctx, &repoEvents, query, args...); err != nil {
		return nil, err
	}

	result := make([]domain.Event, len(repoEvents))
	for i, e := range repoEvents {
		result[i] = mapEventToDomain(e)
	}
	return result, nil
}

func insertEventTx(ctx context.Context, tx *sqlx.Tx, event domain.Event) error {
	_, err := tx.NamedExecContext(ctx, insertEventQuery, mapEventToRepo(event))
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func mapEventToRepo(e domain.Event) repositories.Event {
	var fromProposal uuid.NullUUID
	if e.CreatedFromProposal != nil {
		fromProposal = uuid.NullUUID{UUID: *e.CreatedFromProposal, Valid: true}
	}

	return repositories.Event{
		BaseModel: repositories.BaseModel{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
		},
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
		CreatedFromProposal: fromProposal,
	}
}

func mapEventToDomain(e repositories.Event) domain.Event {
	var fromProposal *uuid.UUID
	if e.CreatedFromProposal.Valid {
		id := e.CreatedFromProposal.UUID
		fromProposal = &id
	}

	return domain.Event{
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
		Tags:                []string(e.Tags),
		FacilitiesRequired:  []string(e.FacilitiesRequired),
		Status:              domain.EventStatus(e.Status),
		CreatedFromProposal: fromProposal,
		CreatedAt:           e.CreatedAt,
	}
}

// nonNil не даёт записать NULL в NOT NULL колонки text[].
func nonNil(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}
