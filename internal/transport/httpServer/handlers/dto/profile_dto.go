package dto

import (
	"campusEvents/internal/models/domain"
	"campusEvents/internal/services"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Role         string    `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Organization string    `json:"organization"`
	Bio          string    `json:"bio"`
	Interests    []string  `json:"interests"`
}

type CreateProfileRequest struct {
	Role         string   `json:"role"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Email        string   `json:"email"`
	Organization string   `json:"organization"`
	Bio          string   `json:"bio"`
	Interests    []string `json:"interests"`
}

type UpdateProfileRequest struct {
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	Email        *string   `json:"email"`
	Organization *string   `json:"organization"`
	Bio          *string   `json:"bio"`
	Interests    *[]string `json:"interests"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MapDomainToProfileResponse конвертирует Profile в ProfileResponse DTO.
func MapDomainToProfileResponse(p domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
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

// MapCreateProfileRequest конвертирует CreateProfileRequest DTO во входные данные сервиса.
func MapCreateProfileRequest(req CreateProfileRequest) services.ProfileInput {
	return services.ProfileInput{
		Role:         domain.Role(req.Role),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Organization: req.Organization,
		Bio:          req.Bio,
		Interests:    req.Interests,
	}
}

// MapUpdateProfileRequest конвертирует UpdateProfileRequest DTO в патч профиля.
func MapUpdateProfileRequest(req UpdateProfileRequest) services.ProfilePatch {
	return services.ProfilePatch{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Organization: req.Organization,
		Bio:          req.Bio,
		Interests:    req.Interests,
	}
}
