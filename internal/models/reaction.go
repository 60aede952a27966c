package models

import "time"

// Reaction types offered to users. Upvotes are a separate table with their
// own counter; these are counterless insert/delete toggles.
const (
	ReactionHeart   = "heart"
	ReactionHug     = "hug"
	ReactionHelpful = "helpful"
	ReactionRelate  = "relate"
)

// Reaction represents a typed reaction on a post or a comment. Exactly one of
// PostID/CommentID is set; the unique indexes prevent duplicate identical
// reactions from the same user.
type Reaction struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostID    *string   `json:"post_id,omitempty" gorm:"type:uuid;index;uniqueIndex:idx_post_user_reaction"`
	CommentID *string   `json:"comment_id,omitempty" gorm:"type:uuid;index;uniqueIndex:idx_comment_user_reaction"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_post_user_reaction;uniqueIndex:idx_comment_user_reaction"`
	Type      string    `json:"reaction_type" gorm:"size:20;not null;uniqueIndex:idx_post_user_reaction;uniqueIndex:idx_comment_user_reaction"`
	CreatedAt time.Time `json:"created_at"`

	Post    *Post    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comment *Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

// ToggleReactionRequest defines the request body for toggling a reaction
type ToggleReactionRequest struct {
	PostID       string `json:"post_id,omitempty"`
	CommentID    string `json:"comment_id,omitempty"`
	ReactionType string `json:"reaction_type" validate:"required,oneof=heart hug helpful relate"`
}

// DeleteReactionRequest defines the request body for removing a reaction
type DeleteReactionRequest struct {
	PostID       string `json:"post_id,omitempty"`
	CommentID    string `json:"comment_id,omitempty"`
	ReactionType string `json:"reaction_type" validate:"required,oneof=heart hug helpful relate"`
}
