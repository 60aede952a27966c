package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/models"
)

// ReactionTarget selects the post or comment a reaction applies to. Callers
// set exactly one field; handlers validate that before reaching the store.
type ReactionTarget struct {
	PostID    string
	CommentID string
}

// ReactionRepository defines the interface for typed reaction operations
type ReactionRepository interface {
	// ToggleReaction flips the (target, user, type) reaction and returns the
	// resulting state: true when the reaction now exists.
	ToggleReaction(ctx context.Context, target ReactionTarget, userID, reactionType string) (bool, error)
	ListReactions(ctx context.Context, target ReactionTarget) ([]models.Reaction, error)
	DeleteReaction(ctx context.Context, target ReactionTarget, userID, reactionType string) error
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

func targetScope(q *gorm.DB, target ReactionTarget) *gorm.DB {
	if target.PostID != "" {
		return q.Where("post_id = ?", target.PostID)
	}
	return q.Where("comment_id = ?", target.CommentID)
}

// ToggleReaction flips the reaction row inside one transaction. Reactions
// carry no denormalized counter; existence of the row is the whole state.
func (r *PostgresReactionRepository) ToggleReaction(ctx context.Context, target ReactionTarget, userID, reactionType string) (bool, error) {
	var active bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := targetScope(tx, target).Where("user_id = ? AND type = ?", userID, reactionType)

		var existing models.Reaction
		err := q.First(&existing).Error
		switch {
		case err == nil:
			active = false
			return tx.Delete(&existing).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.Reaction{
				ID:     uuid.NewString(),
				UserID: userID,
				Type:   reactionType,
			}
			if target.PostID != "" {
				reaction.PostID = &target.PostID
			} else {
				reaction.CommentID = &target.CommentID
			}
			active = true
			return tx.Create(&reaction).Error

		default:
			return err
		}
	})
	return active, err
}

// ListReactions retrieves the reactions on a target, newest first
func (r *PostgresReactionRepository) ListReactions(ctx context.Context, target ReactionTarget) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	q := targetScope(r.db.WithContext(ctx).Model(&models.Reaction{}), target).
		Order("created_at DESC, id DESC")
	if err := q.Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

// DeleteReaction removes the caller's reaction of the given type
func (r *PostgresReactionRepository) DeleteReaction(ctx context.Context, target ReactionTarget, userID, reactionType string) error {
	res := targetScope(r.db.WithContext(ctx), target).
		Where("user_id = ? AND type = ?", userID, reactionType).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
