package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/models"
)

// UpvoteRepository defines the interface for the comment upvote toggle
type UpvoteRepository interface {
	// ToggleUpvote flips the upvote of userID on commentID and returns the
	// resulting state: true when the upvote now exists.
	ToggleUpvote(ctx context.Context, commentID, userID string) (bool, error)
	HasUserUpvoted(ctx context.Context, commentID, userID string) (bool, error)
}

// PostgresUpvoteRepository implements UpvoteRepository for PostgreSQL
type PostgresUpvoteRepository struct {
	db *gorm.DB
}

// NewPostgresUpvoteRepository creates a new PostgresUpvoteRepository
func NewPostgresUpvoteRepository(db *gorm.DB) *PostgresUpvoteRepository {
	return &PostgresUpvoteRepository{db: db}
}

// ToggleUpvote runs the existence-row mutation and the counter move in one
// transaction. The counter only moves via an in-database expression, never a
// value read in the request, so concurrent toggles cannot race it out of sync
// with the upvote rows.
func (r *PostgresUpvoteRepository) ToggleUpvote(ctx context.Context, commentID, userID string) (bool, error) {
	var active bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Upvote
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			res := tx.Model(&models.Comment{}).Where("id = ?", commentID).
				UpdateColumn("upvote_count", gorm.Expr("upvote_count - ?", 1))
			if res.Error != nil {
				return res.Error
			}
			active = false
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			upvote := models.Upvote{
				ID:        uuid.NewString(),
				CommentID: commentID,
				UserID:    userID,
			}
			if err := tx.Create(&upvote).Error; err != nil {
				return err
			}
			res := tx.Model(&models.Comment{}).Where("id = ?", commentID).
				UpdateColumn("upvote_count", gorm.Expr("upvote_count + ?", 1))
			if res.Error != nil {
				return res.Error
			}
			// Dangling comment id: the insert may have slipped past a missing
			// foreign key, the counter target tells the truth.
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			active = true
			return nil

		default:
			return err
		}
	})
	return active, err
}

// HasUserUpvoted reports whether the upvote row exists
func (r *PostgresUpvoteRepository) HasUserUpvoted(ctx context.Context, commentID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Upvote{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error
	return count > 0, err
}
