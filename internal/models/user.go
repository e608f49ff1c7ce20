package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null;size:80" json:"username"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	TelegramID   *int64    `gorm:"unique" json:"telegram_id,omitempty"` // Nullable; at most one user per telegram account
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Links        []Link    `gorm:"foreignKey:OwnerID" json:"links,omitempty"`
}
