package repository

import (
	"github.com/pvsouza/blog-messenger-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByID finds a message by ID with optional preloading
func (r *GormMessageRepository) FindByID(id uint64, preload ...string) (*models.Message, error) {
	var message models.Message
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&message, id).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

// ListInbox lists messages received by a user, newest first
func (r *GormMessageRepository) ListInbox(receiverID uint64) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.Preload("Sender").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flips is_read to true. The is_read predicate makes repeated
// views a no-op at the SQL level.
func (r *GormMessageRepository) MarkRead(id uint64) error {
	return r.db.Model(&models.Message{}).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true).Error
}
