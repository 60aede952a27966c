package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/authz"
	"github.com/openhaven/haven-backend/internal/repositories"
)

// UserHandler handles HTTP requests about the authenticated user
type UserHandler struct {
	roleRepository repositories.RoleRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(roleRepo repositories.RoleRepository) *UserHandler {
	return &UserHandler{roleRepository: roleRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(protected *echo.Group) {
	protected.GET("/user/role", h.GetRole)
}

// GetRole returns the caller's role. Users without a role row get the
// default role, not an error.
func (h *UserHandler) GetRole(c echo.Context) error {
	identity := currentIdentity(c)

	stored, err := h.roleRepository.GetRoleByUserID(c.Request().Context(), identity.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("role lookup failed: %v", err))
	}

	return c.JSON(http.StatusOK, echo.Map{"role": string(authz.ParseRole(stored))})
}
