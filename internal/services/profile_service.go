package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pvsouza/blog-messenger-api/internal/models"
	"github.com/pvsouza/blog-messenger-api/internal/repository"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService handles profile business logic.
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
	}
}

// GetProfile retrieves the profile belonging to a user.
func (s *ProfileService) GetProfile(userID uint64) (*models.Profile, error) {
	profile, err := s.userRepo.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

// UpdateProfileInput carries the fields of a profile edit. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	Avatar    *string
	Bio       *string
	BirthDate *time.Time
	Website   *string
}

// UpdateProfile overwrites only the supplied fields.
func (s *ProfileService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.Avatar != nil {
		profile.Avatar = *input.Avatar
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.BirthDate != nil {
		profile.BirthDate = input.BirthDate
	}
	if input.Website != nil {
		profile.Website = *input.Website
	}

	if err := s.userRepo.UpdateProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
