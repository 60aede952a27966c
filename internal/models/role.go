package models

import "time"

// UserRole assigns a role to a user. Absence of a row means the default role
// "user"; rows are managed out of band, there is no assignment endpoint.
type UserRole struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex"`
	Role      string    `json:"role" gorm:"size:20;not null;default:user"`
	CreatedAt time.Time `json:"created_at"`
}
