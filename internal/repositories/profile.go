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

const profileColumns = `id, user_id, role, first_name, last_name, email, organization, bio,
	interests, created_at, updated_at`

func (r *Repository) CreateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	op := "repository.CreateProfile()"

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	_, err := r.DB.NamedExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`) VALUES (
			:id, :user_id, :role, :first_name, :last_name, :email, :organization, :bio,
			:interests, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		)`,
		mapProfileToRepo(profile),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Profile{}, fmt.Errorf("%s: %w", op, domain.ErrProfileExists)
		}
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	return profile, nil
}

// UpsertProfile создаёт или полностью заменяет профиль пользователя.
func (r *Repository) UpsertProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	op := "repository.UpsertProfile()"

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	var id uuid.UUID
	rows, err := r.DB.NamedQueryContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`) VALUES (
			:id, :user_id, :role, :first_name, :last_name, :email, :organization, :bio,
			:interests, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role, first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name, email = EXCLUDED.email,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		mapProfileToRepo(profile),
	)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	profile.ID = id
	return profile, nil
}

func (r *Repository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	op := "repository.FindProfileByUserID()"

	var row repositories.Profile
	err := r.DB.GetContext(ctx, &row, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, fmt.Errorf("%s: %s: %w", op, userID, domain.ErrProfileNotFound)
		}
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	return mapProfileToDomain(row), nil
}

func (r *Repository) UpdateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	op := "repository.UpdateProfile()"

	result, err := r.DB.NamedExecContext(ctx,
		`UPDATE profiles SET first_name = :first_name, last_name = :last_name,
			email = :email, organization = :organization, bio = :bio,
			interests = :interests, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = :user_id`,
		mapProfileToRepo(profile),
	)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: checking rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return domain.Profile{}, fmt.Errorf("%s: %s: %w", op, profile.UserID, domain.ErrProfileNotFound)
	}

	return profile, nil
}

func mapProfileToRepo(p domain.Profile) repositories.Profile {
	return repositories.Profile{
		BaseModel:    repositories.BaseModel{ID: p.ID},
		UserID:       p.UserID,
		Role:         string(p.Role),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Organization: p.Organization,
		Bio:          p.Bio,
		Interests:    nonNil(p.Interests),
	}
}

func mapProfileToDomain(p repositories.Profile) domain.Profile {
	return domain.Profile{
		ID:           p.ID,
		UserID:       p.UserID,
		Role:         domain.Role(p.Role),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Organization: p.Organization,
		Bio:          p.Bio,
		Interests:    []string(p.Interests),
	}
}
