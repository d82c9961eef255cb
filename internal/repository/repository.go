package repository

import (
	"github.com/pvsouza/blog-messenger-api/internal/models"
)

// UserRepository defines the interface for user and profile data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithProfile creates a user and their profile within a single
	// transaction, keeping the one-profile-per-user invariant visible at
	// the call site.
	CreateWithProfile(user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// ListRecipients lists all users except the given one, ordered by
	// username. Used to build the message recipient list.
	ListRecipients(excludeUserID uint64) ([]models.User, error)

	// FindProfileByUserID finds the profile belonging to a user
	FindProfileByUserID(userID uint64) (*models.Profile, error)

	// UpdateProfile persists changes to a profile
	UpdateProfile(profile *models.Profile) error
}

// PostFilter holds filtering options for listing posts
type PostFilter struct {
	// Query matches title, subtitle or content case-insensitively
	Query    string
	AuthorID *uint64
	Page     int
	PageSize int
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create creates a new post
	Create(post *models.Post) error

	// FindByID finds a post by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Post, error)

	// FindBySlug finds a post by slug with optional preloading
	FindBySlug(slug string, preload ...string) (*models.Post, error)

	// List retrieves posts with search filtering and pagination, newest
	// published first
	List(filter PostFilter) ([]models.Post, int64, error)

	// Update updates a post
	Update(post *models.Post) error

	// Delete soft deletes a post
	Delete(id uint64) error

	// SlugTaken reports whether a slug is already used by another post
	SlugTaken(slug string, excludeID uint64) (bool, error)
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create creates a new message
	Create(message *models.Message) error

	// FindByID finds a message by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Message, error)

	// ListInbox lists messages received by a user, newest first
	ListInbox(receiverID uint64) ([]models.Message, error)

	// MarkRead flips is_read to true. A no-op when the message is already
	// read, so repeated detail views are idempotent.
	MarkRead(id uint64) error
}
