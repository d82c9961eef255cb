package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Subtitle    string         `gorm:"type:varchar(200)" json:"subtitle"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Image       string         `gorm:"type:varchar(255)" json:"image"`
	Slug        string         `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	PublishedAt time.Time      `gorm:"not null" json:"published_at"`
	AuthorID    uint64         `gorm:"not null" json:"author_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
