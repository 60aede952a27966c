package models

import "time"

// Report reasons and review statuses. New reports start "open".
const (
	ReportStatusOpen      = "open"
	ReportStatusReviewed  = "reviewed"
	ReportStatusDismissed = "dismissed"
)

// Report flags a post or a comment for moderator review. Reports live in the
// MongoDB moderation queue, not in PostgreSQL. There is deliberately no
// uniqueness constraint: repeated reports on the same target are an
// escalation signal.
type Report struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	PostID      *string   `json:"post_id,omitempty" bson:"post_id,omitempty"`
	CommentID   *string   `json:"comment_id,omitempty" bson:"comment_id,omitempty"`
	ReporterID  string    `json:"reporter_id" bson:"reporter_id"`
	Reason      string    `json:"reason" bson:"reason"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// CreateReportRequest defines the request body for filing a report
type CreateReportRequest struct {
	PostID      string `json:"post_id,omitempty"`
	CommentID   string `json:"comment_id,omitempty"`
	ReporterID  string `json:"reporter_id" validate:"required"`
	Reason      string `json:"reason" validate:"required,oneof=spam harassment self-harm misinformation other"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// UpdateReportStatusRequest defines the request body for the report review endpoint
type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open reviewed dismissed"`
}
