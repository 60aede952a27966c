package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/models"
)

// PostFilter narrows and pages post listings.
type PostFilter struct {
	Status string
	Limit  int
	Offset int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	UpdatePostStatus(ctx context.Context, id, status string) error
	DeletePost(ctx context.Context, id string) error
	ListPostsWithAuthorRole(ctx context.Context, filter PostFilter) ([]models.AdminPost, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts retrieves posts newest first. The secondary id ordering keeps the
// order deterministic when rows share a creation timestamp.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	posts := []models.Post{}
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost persists the mutable post fields
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":        post.Title,
		"content":      post.Content,
		"category":     post.Category,
		"is_anonymous": post.IsAnonymous,
		"updated_at":   post.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePostStatus sets the moderation status of a post
func (r *PostgresPostRepository) UpdatePostStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePost hard-deletes a post. Comments, upvotes and reactions referencing
// it are removed by the cascading foreign keys.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPostsWithAuthorRole retrieves posts of any status joined with the
// author's role for the moderation view. Users without a role row show "user".
func (r *PostgresPostRepository) ListPostsWithAuthorRole(ctx context.Context, filter PostFilter) ([]models.AdminPost, error) {
	posts := []models.AdminPost{}
	q := r.db.WithContext(ctx).Table("posts").
		Select("posts.*, COALESCE(user_roles.role, 'user') AS author_role").
		Joins("LEFT JOIN user_roles ON user_roles.user_id = posts.user_id").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset)
	if filter.Status != "" {
		q = q.Where("posts.status = ?", filter.Status)
	}
	if err := q.Scan(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
