package dto

import (
	"time"

	"github.com/pvsouza/blog-messenger-api/internal/models"
)

// MessageDTO represents a message in API responses
type MessageDTO struct {
	ID         uint64    `json:"id"`
	SenderID   uint64    `json:"sender_id"`
	ReceiverID uint64    `json:"receiver_id"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
	Sender     *UserDTO  `json:"sender,omitempty"`
}

// ToMessageDTO converts a Message model to its DTO
func ToMessageDTO(message models.Message) MessageDTO {
	d := MessageDTO{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Subject:    message.Subject,
		Body:       message.Body,
		IsRead:     message.IsRead,
		CreatedAt:  message.CreatedAt,
	}
	if message.Sender.ID != 0 {
		sender := ToRecipientDTO(message.Sender)
		d.Sender = &sender
	}
	return d
}

// ToMessageDTOs converts a slice of messages, used by the inbox listing
func ToMessageDTOs(messages []models.Message) []MessageDTO {
	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, ToMessageDTO(m))
	}
	return dtos
}
