package models

import "time"

// Post statuses. A moderated post is pulled from the public feed without
// destroying it; hard deletes remove the row entirely.
const (
	PostStatusActive    = "active"
	PostStatusModerated = "moderated"
	PostStatusDeleted   = "deleted"
)

// Post represents a topic in the community feed.
//
// AuthorID is a legacy column kept from the first schema revision; UserID is
// the canonical owner and the only field stamped on create. Old rows may
// carry the owner in either column, so ownership checks test both.
type Post struct {
	ID                string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title             string    `json:"title" gorm:"not null"`
	Content           string    `json:"content" gorm:"not null"`
	Category          string    `json:"category"`
	AuthorID          *string   `json:"author_id,omitempty" gorm:"index"`
	UserID            string    `json:"user_id" gorm:"index"`
	IsAnonymous       bool      `json:"is_anonymous"`
	AnonymousUsername string    `json:"anonymous_username,omitempty"`
	Status            string    `json:"status" gorm:"default:active;index"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// OwnerIDs reports every column that may hold the owning user.
func (p *Post) OwnerIDs() []string {
	owners := []string{p.UserID}
	if p.AuthorID != nil {
		owners = append(owners, *p.AuthorID)
	}
	return owners
}

// ValidPostStatus reports whether s is one of the known post statuses.
func ValidPostStatus(s string) bool {
	return s == PostStatusActive || s == PostStatusModerated || s == PostStatusDeleted
}

// AdminPost is a post row joined with its author's role for moderation views.
type AdminPost struct {
	Post
	AuthorRole string `json:"author_role"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title             string `json:"title" validate:"required,min=1,max=200"`
	Content           string `json:"content" validate:"required,min=1,max=10000"`
	Category          string `json:"category,omitempty" validate:"omitempty,max=50"`
	IsAnonymous       bool   `json:"is_anonymous"`
	AnonymousUsername string `json:"anonymous_username,omitempty" validate:"omitempty,max=50"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Content     string `json:"content" validate:"required,min=1,max=10000"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// UpdatePostStatusRequest defines the request body for the moderation status endpoint
type UpdatePostStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active moderated deleted"`
}
