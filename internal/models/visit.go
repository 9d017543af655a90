package models

import (
	"time"
)

// Visit is an immutable record appended each time a short link is followed.
// VisitorID correlates requests from the same client via a long-lived cookie
// that is independent of the login session.
type Visit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	URLID      uint      `gorm:"not null;index" json:"url_id"`
	VisitorID  string    `gorm:"size:36;index" json:"visitor_id"`
	Timestamp  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
	Browser    string    `gorm:"size:50" json:"browser"`
	OS         string    `gorm:"size:100" json:"os"`
	DeviceType string    `gorm:"size:50" json:"device_type"`
	Country    string    `gorm:"size:100;default:'Unknown'" json:"country"`
	Referrer   string    `gorm:"size:255;default:'Direct'" json:"referrer"`
}
