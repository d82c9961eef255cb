package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pvsouza/blog-messenger-api/internal/constants"
	"github.com/pvsouza/blog-messenger-api/internal/models"
	"github.com/pvsouza/blog-messenger-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound  = errors.New("message not found")
	ErrSelfMessage      = errors.New("cannot send a message to yourself")
	ErrReceiverNotFound = errors.New("receiver does not exist")
	ErrBodyRequired     = errors.New("message body is required")
	ErrSubjectTooLong   = errors.New("subject too long")
)

// MessageService handles direct-message business logic
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// SendMessageInput represents input for sending a message
type SendMessageInput struct {
	SenderID   uint64
	ReceiverID uint64
	Subject    string
	Body       string
}

// SendMessage validates the receiver and creates the message unread.
func (s *MessageService) SendMessage(input SendMessageInput) (*models.Message, error) {
	if input.ReceiverID == input.SenderID {
		return nil, ErrSelfMessage
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, ErrBodyRequired
	}
	if len(input.Subject) > constants.MaxSubjectLength {
		return nil, ErrSubjectTooLong
	}

	if _, err := s.userRepo.FindByID(input.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("failed to find receiver: %w", err)
	}

	message := &models.Message{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Subject:    input.Subject,
		Body:       input.Body,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// ListInbox lists the caller's received messages, newest first.
func (s *MessageService) ListInbox(userID uint64) ([]models.Message, error) {
	return s.messageRepo.ListInbox(userID)
}

// GetMessage returns a message to its receiver, flipping is_read on the
// first view. Non-receivers get ErrMessageNotFound rather than a permission
// error so message IDs stay opaque.
func (s *MessageService) GetMessage(messageID, callerID uint64) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(messageID, "Sender")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	if message.ReceiverID != callerID {
		return nil, ErrMessageNotFound
	}

	if !message.IsRead {
		if err := s.messageRepo.MarkRead(message.ID); err != nil {
			return nil, fmt.Errorf("failed to mark message read: %w", err)
		}
		message.IsRead = true
	}

	return message, nil
}
