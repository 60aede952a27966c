package models

import "time"

// Comment represents a comment on a post. UpvoteCount is denormalized and is
// only ever moved together with the upvote row inside one transaction.
type Comment struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostID      string    `json:"post_id" gorm:"type:uuid;not null;index"`
	Content     string    `json:"content" gorm:"not null"`
	UserID      string    `json:"user_id" gorm:"index"`
	IsAnonymous bool      `json:"is_anonymous"`
	UpvoteCount int       `json:"upvote_count" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Post *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// OwnerIDs reports the owning user of the comment.
func (c *Comment) OwnerIDs() []string {
	return []string{c.UserID}
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content     string `json:"content" validate:"required,min=1,max=2000"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content     string `json:"content" validate:"required,min=1,max=2000"`
	IsAnonymous bool   `json:"is_anonymous"`
}
