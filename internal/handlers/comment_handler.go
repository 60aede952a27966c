package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/authz"
	"github.com/openhaven/haven-backend/internal/models"
	"github.com/openhaven/haven-backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments and their upvotes
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	upvoteRepository  repositories.UpvoteRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, upvoteRepo repositories.UpvoteRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		upvoteRepository:  upvoteRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes. The upvote toggle
// stays on the public group: it authenticates through the x-user-id header
// the clients already send, not the bearer token.
func (h *CommentHandler) RegisterCommentRoutes(public, protected *echo.Group) {
	public.GET("/posts/:id/comments", h.GetCommentsByPostID)
	public.POST("/comments/:id/upvote", h.ToggleUpvote)
	protected.POST("/posts/:id/comments", h.CreateComment)
	protected.PUT("/comments/:id", h.UpdateComment)
	protected.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	identity := currentIdentity(c)
	postID := c.Param("id")
	if err := requireUUID("id", postID); err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := &models.Comment{
		PostID:      postID,
		UserID:      identity.ID,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	}

	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves the comments of a post
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("id")
	if err := requireUUID("id", postID); err != nil {
		return err
	}
	limit, offset := parsePagination(c)

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), postID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comments)
}

// UpdateComment updates a comment owned by the caller
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	identity := currentIdentity(c)
	commentID := c.Param("id")
	if err := requireUUID("id", commentID); err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !authz.CanEditOrDelete(identity, comment) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this comment")
	}

	comment.Content = req.Content
	comment.IsAnonymous = req.IsAnonymous

	if err := h.commentRepository.UpdateComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment owned by the caller
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	identity := currentIdentity(c)
	commentID := c.Param("id")
	if err := requireUUID("id", commentID); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !authz.CanEditOrDelete(identity, comment) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(c.Request().Context(), commentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comment)
}

// ToggleUpvote flips the caller's upvote on a comment. The denormalized
// counter moves inside the same repository transaction.
func (h *CommentHandler) ToggleUpvote(c echo.Context) error {
	commentID := c.Param("id")
	if err := requireUUID("id", commentID); err != nil {
		return err
	}

	userID := c.Request().Header.Get("x-user-id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "x-user-id header is required")
	}

	if _, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	upvoted, err := h.upvoteRepository.ToggleUpvote(c.Request().Context(), commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"upvoted": upvoted})
}
