package dto

import (
	"time"

	"github.com/pvsouza/blog-messenger-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ProfileDTO represents a profile in API responses
type ProfileDTO struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	Avatar    string     `json:"avatar"`
	Bio       string     `json:"bio"`
	BirthDate *time.Time `json:"birth_date"`
	Website   string     `json:"website"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToUserDTO converts a User model to its DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToRecipientDTO converts a User to the minimal shape shown in the
// recipient picker (no email).
func ToRecipientDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToProfileDTO converts a Profile model to its DTO
func ToProfileDTO(profile models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:        profile.ID,
		UserID:    profile.UserID,
		Avatar:    profile.Avatar,
		Bio:       profile.Bio,
		BirthDate: profile.BirthDate,
		Website:   profile.Website,
		UpdatedAt: profile.UpdatedAt,
	}
}
