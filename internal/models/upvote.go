package models

import "time"

// Upvote records that a user upvoted a comment. The unique index guarantees
// at most one row per (comment, user); existence of the row is the upvote.
type Upvote struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CommentID string    `json:"comment_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_comment_user_upvote"`
	UserID    string    `json:"user_id" gorm:"not null;index;uniqueIndex:idx_comment_user_upvote"`
	CreatedAt time.Time `json:"created_at"`

	Comment *Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}
