package models

import (
	"time"
)

type Link struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ShortKey  string    `gorm:"uniqueIndex;not null;size:16" json:"short_key"`
	TargetURL string    `gorm:"not null;type:text" json:"full_url"`
	OwnerID   uint      `gorm:"not null;index" json:"-"`
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"-"`
	Clicks    int64     `gorm:"not null;default:0" json:"clicks"`
	QRCode    string    `gorm:"type:text" json:"qr_code,omitempty"` // base64 PNG, minted once at creation
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName overrides the table name used by Link to `links`
func (Link) TableName() string {
	return "links"
}
