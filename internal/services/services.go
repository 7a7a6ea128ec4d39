// Package services содержит бизнес-правила за HTTP и Telegram транспортами.
// Каждая операция явно получает действующего пользователя.
package services

import (
	"context"
	"fmt"
	"slices"

	"campusEvents/internal/models/domain"

	"github.com/google/uuid"
)

type profileFinder interface {
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
}

// requireRole загружает профиль и проверяет, что у него одна из ролей.
// Без профиля доступ запрещён.
func requireRole(ctx context.Context, repo profileFinder, actor uuid.UUID, roles ...domain.Role) (domain.Profile, error) {
	profile, err := repo.FindProfileByUserID(ctx, actor)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Profile{}, fmt.Errorf("no profile for %s: %w", actor, domain.ErrForbidden)
		}
		return domain.Profile{}, err
	}
	if len(roles) > 0 && !slices.Contains(roles, profile.Role) {
		return domain.Profile{}, fmt.Errorf("role %s: %w", profile.Role, domain.ErrForbidden)
	}
	return profile, nil
}

// uniqueEventIDs собирает различные ID событий из items.
func uniqueEventIDs[T any](items []T, eventID func(T) uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		id := eventID(item)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
