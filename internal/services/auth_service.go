package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/pvsouza/blog-messenger-api/internal/constants"
	"github.com/pvsouza/blog-messenger-api/internal/models"
	"github.com/pvsouza/blog-messenger-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken         = errors.New("username already exists")
	ErrUsernameTooShort      = errors.New("username too short")
	ErrUsernameTooLong       = errors.New("username too long")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrPasswordTooShort      = errors.New("password too short")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrWrongPassword         = errors.New("current password is incorrect")
	ErrUserNotFound          = errors.New("user not found")
	ErrFailedToHashPassword  = errors.New("failed to hash password")
	ErrFailedToCreateUser    = errors.New("failed to create user")
	ErrFailedToCreateProfile = errors.New("failed to create profile")
)

// AuthService handles registration and authentication business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Register creates a new user with an empty profile in one transaction.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	// Length is checked after trimming so padded usernames cannot sneak
	// under the minimum.
	username := strings.TrimSpace(input.Username)
	if len(username) < constants.MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if len(username) > constants.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if input.Password != input.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}

	// The empty profile starts life alongside the user so the
	// one-profile-per-user invariant holds from the first commit.
	profile := &models.Profile{}

	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateUser):
			return nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateProfile):
			return nil, ErrFailedToCreateProfile
		default:
			return nil, fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	user.Profile = *profile
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ChangePasswordInput holds the data for a password change.
type ChangePasswordInput struct {
	UserID      uint64
	OldPassword string
	NewPassword string
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	if len(input.NewPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ListRecipients lists the users the given user can message. The caller is
// excluded so nobody addresses a message to themselves.
func (s *AuthService) ListRecipients(userID uint64) ([]models.User, error) {
	return s.userRepo.ListRecipients(userID)
}
