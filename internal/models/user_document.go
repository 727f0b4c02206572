package models

import "time"

// UserDocument stores one user's budget document as JSON text. Version
// increases on every merge-write.
type UserDocument struct {
	UserID    string    `gorm:"primaryKey;size:128" json:"user_id"`
	Data      string    `gorm:"type:text;not null" json:"-"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
