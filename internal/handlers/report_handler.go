package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openhaven/haven-backend/internal/models"
	"github.com/openhaven/haven-backend/internal/repositories"
)

// ReportHandler handles HTTP requests related to reports. Filing and listing
// reports is deliberately open: reports are a moderation-assist signal and
// the reporter id is client-supplied.
type ReportHandler struct {
	reportRepository       repositories.ReportRepository
	roleRepository         repositories.RoleRepository
	notificationRepository repositories.NotificationRepository
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository, roleRepo repositories.RoleRepository, notificationRepo repositories.NotificationRepository) *ReportHandler {
	return &ReportHandler{
		reportRepository:       reportRepo,
		roleRepository:         roleRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterReportRoutes registers report-related routes
func (h *ReportHandler) RegisterReportRoutes(public *echo.Group) {
	public.POST("/reports", h.CreateReport)
	public.GET("/reports", h.ListReports)
}

// CreateReport files a report against a post or comment and notifies every
// moderator. Duplicate reports from the same reporter are accepted.
func (h *ReportHandler) CreateReport(c echo.Context) error {
	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if (req.PostID == "") == (req.CommentID == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "exactly one of post_id or comment_id is required")
	}

	report := &models.Report{
		ReporterID:  req.ReporterID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      models.ReportStatusOpen,
	}
	if req.PostID != "" {
		if err := requireUUID("post_id", req.PostID); err != nil {
			return err
		}
		report.PostID = &req.PostID
	} else {
		if err := requireUUID("comment_id", req.CommentID); err != nil {
			return err
		}
		report.CommentID = &req.CommentID
	}

	if err := h.reportRepository.CreateReport(c.Request().Context(), report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Fan out to moderators without holding the request open.
	go h.notifyModerators(context.Background(), report)

	return c.JSON(http.StatusCreated, report)
}

// notifyModerators creates a notification row for every moderator and admin.
func (h *ReportHandler) notifyModerators(ctx context.Context, report *models.Report) {
	ids, err := h.roleRepository.ListModeratorIDs(ctx)
	if err != nil {
		log.Printf("report %s: listing moderators failed: %v", report.ID, err)
		return
	}

	target := "a comment"
	if report.PostID != nil {
		target = "a post"
	}
	reason := fmt.Sprintf("New report on %s: %s", target, report.Reason)

	for _, id := range ids {
		notification := &models.Notification{
			UserID:   id,
			ReportID: report.ID,
			Reason:   reason,
		}
		if err := h.notificationRepository.CreateNotification(ctx, notification); err != nil {
			log.Printf("report %s: notifying %s failed: %v", report.ID, id, err)
		}
	}
}

// ListReports retrieves reports, optionally filtered by target, newest first
func (h *ReportHandler) ListReports(c echo.Context) error {
	filter := repositories.ReportFilter{}
	if postID := c.QueryParam("post_id"); postID != "" {
		if err := requireUUID("post_id", postID); err != nil {
			return err
		}
		filter.PostID = postID
	}
	if commentID := c.QueryParam("comment_id"); commentID != "" {
		if err := requireUUID("comment_id", commentID); err != nil {
			return err
		}
		filter.CommentID = commentID
	}
	limit, offset := parsePagination(c)
	filter.Limit = int64(limit)
	filter.Offset = int64(offset)

	reports, err := h.reportRepository.ListReports(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, reports)
}
