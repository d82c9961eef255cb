package models

import "time"

// Profile extends a User with public-facing details. Exactly one row per
// user; it is created inside the registration transaction.
type Profile struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	UserID    uint64     `gorm:"uniqueIndex;not null" json:"user_id"`
	Avatar    string     `gorm:"type:varchar(255)" json:"avatar"`
	Bio       string     `gorm:"type:text" json:"bio"`
	BirthDate *time.Time `json:"birth_date"`
	Website   string     `gorm:"type:varchar(255)" json:"website"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
