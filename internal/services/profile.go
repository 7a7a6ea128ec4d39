package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"campusEvents/internal/auth"
	"campusEvents/internal/config"
	"campusEvents/internal/models/domain"
	"campusEvents/internal/utils/logger/sl"

	"github.com/google/uuid"
)

// ProfileService управляет профилями и входом администратора.
type ProfileService struct {
	logger    *slog.Logger
	repo      ProfileRepository
	tokens    TokenIssuer
	bootstrap config.BootstrapConfig
}

// NewProfileService создаёт новый экземпляр ProfileService.
func NewProfileService(logger *slog.Logger, repo ProfileRepository, tokens TokenIssuer, bootstrap config.BootstrapConfig) *ProfileService {
	return &ProfileService{
		logger:    logger,
		repo:      repo,
		tokens:    tokens,
		bootstrap: bootstrap,
	}
}

// ProfileInput — данные нового профиля.
type ProfileInput struct {
	Role         domain.Role
	FirstName    string
	LastName     string
	Email        string
	Organization string
	Bio          string
	Interests    []string
}

// ProfilePatch обновляет только поля, отличные от nil. Роль не меняется.
type ProfilePatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Organization *string
	Bio          *string
	Interests    *[]string
}

// CreateProfile регистрирует вызывающего как организатора или участника.
// Роль admin выдаётся только bootstrap-аккаунту.
func (s *ProfileService) CreateProfile(ctx context.Context, actor uuid.UUID, in ProfileInput) (domain.Profile, error) {
	op := "ProfileService.CreateProfile()"
	log := s.logger.With(slog.String("op", op), slog.String("user", actor.String()))

	switch in.Role {
	case domain.RoleOrganizer, domain.RoleAttendee:
	case domain.RoleAdmin:
		return domain.Profile{}, fmt.Errorf("%s: admin profiles cannot be self-assigned: %w", op, domain.ErrForbidden)
	default:
		return domain.Profile{}, fmt.Errorf("%s: unknown role %q: %w", op, in.Role, domain.ErrInvalidInput)
	}

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return domain.Profile{}, fmt.Errorf("%s: name and email are required: %w", op, domain.ErrInvalidInput)
	}

	profile, err := s.repo.CreateProfile(ctx, domain.Profile{
		UserID:       actor,
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Organization: in.Organization,
		Bio:          in.Bio,
		Interests:    in.Interests,
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("profile created", slog.String("role", string(profile.Role)))
	return profile, nil
}

// UpdateProfile применяет патч к профилю вызывающего.
func (s *ProfileService) UpdateProfile(ctx context.Context, actor uuid.UUID, patch ProfilePatch) (domain.Profile, error) {
	op := "ProfileService.UpdateProfile()"

	profile, err := s.repo.FindProfileByUserID(ctx, actor)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	if patch.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		profile.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		profile.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Organization != nil {
		profile.Organization = *patch.Organization
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.Interests != nil {
		profile.Interests = *patch.Interests
	}
	if profile.FirstName == "" || profile.LastName == "" || profile.Email == "" {
		return domain.Profile{}, fmt.Errorf("%s: name and email are required: %w", op, domain.ErrInvalidInput)
	}

	updated, err := s.repo.UpdateProfile(ctx, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// GetProfile возвращает профиль пользователя.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	op := "ProfileService.GetProfile()"

	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// EnsureAdmin создаёт или обновляет профиль bootstrap-администратора.
// Без настроенного аккаунта ничего не делает.
func (s *ProfileService) EnsureAdmin(ctx context.Context) error {
	op := "ProfileService.EnsureAdmin()"
	log := s.logger.With(slog.String("op", op))

	if !s.bootstrap.Enabled() {
		log.Warn("bootstrap admin is not configured")
		return nil
	}

	profile, err := s.repo.UpsertProfile(ctx, domain.Profile{
		UserID:    auth.BootstrapAdminID(s.bootstrap.AdminUsername),
		Role:      domain.RoleAdmin,
		FirstName: "System",
		LastName:  "Administrator",
		Email:     s.bootstrap.AdminEmail,
	})
	if err != nil {
		log.Error("failed to upsert admin profile", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin profile ready", slog.String("user", profile.UserID.String()))
	return nil
}

// AdminLogin проверяет bootstrap-учётные данные и выдаёт токен
// bootstrap-администратора.
func (s *ProfileService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	op := "ProfileService.AdminLogin()"
	log := s.logger.With(slog.String("op", op))

	if !s.bootstrap.Enabled() {
		return "", fmt.Errorf("%s: admin login disabled: %w", op, domain.ErrUnauthenticated)
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.bootstrap.AdminUsername)) != 1 {
		log.Warn("admin login with unknown username")
		return "", fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	}
	if err := auth.CheckPassword(s.bootstrap.AdminPasswordHash, password); err != nil {
		log.Warn("admin login with wrong password")
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.Issue(auth.BootstrapAdminID(username))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
