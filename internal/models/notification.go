package models

import "time"

// Notification is a moderation alert delivered to a moderator or admin when a
// report comes in.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;index"`
	ReportID  string    `json:"report_id" gorm:"type:uuid"`
	Reason    string    `json:"reason" gorm:"size:200"`
	IsRead    bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}
