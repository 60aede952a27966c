package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/authz"
	"github.com/openhaven/haven-backend/internal/models"
	"github.com/openhaven/haven-backend/internal/repositories"
)

// AdminHandler handles the moderation views. Every route is gated on the
// moderate capability, held by moderators and admins.
type AdminHandler struct {
	postRepository         repositories.PostRepository
	reportRepository       repositories.ReportRepository
	roleRepository         repositories.RoleRepository
	notificationRepository repositories.NotificationRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(postRepo repositories.PostRepository, reportRepo repositories.ReportRepository, roleRepo repositories.RoleRepository, notificationRepo repositories.NotificationRepository) *AdminHandler {
	return &AdminHandler{
		postRepository:         postRepo,
		reportRepository:       reportRepo,
		roleRepository:         roleRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterAdminRoutes registers the moderation routes under /admin
func (h *AdminHandler) RegisterAdminRoutes(protected *echo.Group) {
	g := protected.Group("/admin", h.RequireModerator)
	g.GET("/posts", h.ListPosts)
	g.PUT("/posts/:id/status", h.UpdatePostStatus)
	g.GET("/reports", h.ListReports)
	g.PUT("/reports/:id/status", h.UpdateReportStatus)
	g.GET("/notifications", h.ListNotifications)
}

// RequireModerator resolves the caller's role and rejects anyone without the
// moderate capability. A missing role row is the normal default role, not an
// error; a failing role store is a gateway-class failure.
func (h *AdminHandler) RequireModerator(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := currentIdentity(c)

		stored, err := h.roleRepository.GetRoleByUserID(c.Request().Context(), identity.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("role lookup failed: %v", err))
		}

		if !authz.Can(authz.ParseRole(stored), authz.CapabilityModerate) {
			return echo.NewHTTPError(http.StatusForbidden, "Moderator access required")
		}

		return next(c)
	}
}

// ListPosts retrieves posts of any status joined with the author's role
func (h *AdminHandler) ListPosts(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !models.ValidPostStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid status: %q", status))
	}
	limit, offset := parsePagination(c)

	posts, err := h.postRepository.ListPostsWithAuthorRole(c.Request().Context(), repositories.PostFilter{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, posts)
}

// UpdatePostStatus sets the moderation status of a post
func (h *AdminHandler) UpdatePostStatus(c echo.Context) error {
	postID := c.Param("id")
	if err := requireUUID("id", postID); err != nil {
		return err
	}

	var req models.UpdatePostStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.postRepository.UpdatePostStatus(c.Request().Context(), postID, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// ListReports retrieves the moderation queue, optionally filtered by status
func (h *AdminHandler) ListReports(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && status != models.ReportStatusOpen && status != models.ReportStatusReviewed && status != models.ReportStatusDismissed {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid status: %q", status))
	}
	limit, offset := parsePagination(c)

	reports, err := h.reportRepository.ListReports(c.Request().Context(), repositories.ReportFilter{
		Status: status,
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, reports)
}

// UpdateReportStatus sets the review status of a report
func (h *AdminHandler) UpdateReportStatus(c echo.Context) error {
	reportID := c.Param("id")
	if err := requireUUID("id", reportID); err != nil {
		return err
	}

	var req models.UpdateReportStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.reportRepository.UpdateReportStatus(c.Request().Context(), reportID, req.Status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	report, err := h.reportRepository.GetReportByID(c.Request().Context(), reportID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, report)
}

// ListNotifications retrieves the caller's moderation notifications
func (h *AdminHandler) ListNotifications(c echo.Context) error {
	identity := currentIdentity(c)
	limit, offset := parsePagination(c)

	notifications, err := h.notificationRepository.GetNotificationsByUserID(c.Request().Context(), identity.ID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, notifications)
}
