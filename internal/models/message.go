package models

import "time"

// Message is a directed message between two distinct users. IsRead flips to
// true on the receiver's first detail view and never goes back.
type Message struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	SenderID   uint64    `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint64    `gorm:"not null;index" json:"receiver_id"`
	Subject    string    `gorm:"type:varchar(200)" json:"subject"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
