package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/models"
)

// RoleRepository defines the interface for role lookups. Roles are assigned
// out of band; this layer only reads them.
type RoleRepository interface {
	// GetRoleByUserID returns the stored role string. A missing row surfaces
	// as gorm.ErrRecordNotFound, which callers treat as the default role.
	GetRoleByUserID(ctx context.Context, userID string) (string, error)
	// ListModeratorIDs returns the user ids of everyone holding the
	// moderator or admin role, for report notification fan-out.
	ListModeratorIDs(ctx context.Context) ([]string, error)
}

// PostgresRoleRepository implements RoleRepository for PostgreSQL
type PostgresRoleRepository struct {
	db *gorm.DB
}

// NewPostgresRoleRepository creates a new PostgresRoleRepository
func NewPostgresRoleRepository(db *gorm.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

// GetRoleByUserID retrieves the role row of a user
func (r *PostgresRoleRepository) GetRoleByUserID(ctx context.Context, userID string) (string, error) {
	var role models.UserRole
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&role).Error; err != nil {
		return "", err
	}
	return role.Role, nil
}

// ListModeratorIDs retrieves every moderator and admin user id
func (r *PostgresRoleRepository) ListModeratorIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&models.UserRole{}).
		Where("role IN ?", []string{"moderator", "admin"}).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
