package repository

import (
	"errors"
	"fmt"

	"github.com/pvsouza/blog-messenger-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProfile is returned when creating a profile fails inside the registration transaction.
	ErrCreateProfile = errors.New("user repository: create profile failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithProfile creates the user and their profile atomically.
func (r *GormUserRepository) CreateWithProfile(user *models.User, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		profile.UserID = user.ID

		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProfile, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ListRecipients lists all users except the given one, ordered by username
func (r *GormUserRepository) ListRecipients(excludeUserID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("id <> ?", excludeUserID).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindProfileByUserID finds the profile belonging to a user
func (r *GormUserRepository) FindProfileByUserID(userID uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile persists changes to a profile
func (r *GormUserRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}
