package models

import (
	"time"
)

type URL struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;size:36;index" json:"user_id"` // Owner; creation requires an authenticated user
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ShortCode string    `gorm:"unique;not null;size:20;index" json:"short_code"`
	LongURL   string    `gorm:"not null;type:text" json:"long_url"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Visits []Visit `gorm:"foreignKey:URLID;constraint:OnDelete:CASCADE" json:"visits,omitempty"`
}

func (URL) TableName() string {
	return "urls"
}
