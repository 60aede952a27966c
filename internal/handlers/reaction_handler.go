package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/models"
	"github.com/openhaven/haven-backend/internal/repositories"
)

// ReactionHandler handles HTTP requests related to typed reactions
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
	postRepository     repositories.PostRepository
	commentRepository  repositories.CommentRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		postRepository:     postRepo,
		commentRepository:  commentRepo,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(public, protected *echo.Group) {
	public.GET("/reactions", h.ListReactions)
	protected.POST("/reactions", h.ToggleReaction)
	protected.DELETE("/reactions", h.DeleteReaction)
}

// reactionTarget validates the exactly-one-of post_id/comment_id rule and the
// identifier format of whichever is set.
func reactionTarget(postID, commentID string) (repositories.ReactionTarget, error) {
	if (postID == "") == (commentID == "") {
		return repositories.ReactionTarget{}, echo.NewHTTPError(http.StatusBadRequest, "exactly one of post_id or comment_id is required")
	}
	if postID != "" {
		if err := requireUUID("post_id", postID); err != nil {
			return repositories.ReactionTarget{}, err
		}
		return repositories.ReactionTarget{PostID: postID}, nil
	}
	if err := requireUUID("comment_id", commentID); err != nil {
		return repositories.ReactionTarget{}, err
	}
	return repositories.ReactionTarget{CommentID: commentID}, nil
}

// targetExists resolves the target row so a toggle on a dangling id fails
// with 404 instead of silently succeeding.
func (h *ReactionHandler) targetExists(c echo.Context, target repositories.ReactionTarget) error {
	var err error
	if target.PostID != "" {
		_, err = h.postRepository.GetPostByID(c.Request().Context(), target.PostID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
	} else {
		_, err = h.commentRepository.GetCommentByID(c.Request().Context(), target.CommentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return nil
}

// ToggleReaction flips the caller's reaction on a post or comment
func (h *ReactionHandler) ToggleReaction(c echo.Context) error {
	identity := currentIdentity(c)

	var req models.ToggleReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	target, err := reactionTarget(req.PostID, req.CommentID)
	if err != nil {
		return err
	}
	if err := h.targetExists(c, target); err != nil {
		return err
	}

	active, err := h.reactionRepository.ToggleReaction(c.Request().Context(), target, identity.ID, req.ReactionType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"active": active})
}

// ListReactions retrieves the reactions on a post or comment
func (h *ReactionHandler) ListReactions(c echo.Context) error {
	target, err := reactionTarget(c.QueryParam("post_id"), c.QueryParam("comment_id"))
	if err != nil {
		return err
	}

	reactions, err := h.reactionRepository.ListReactions(c.Request().Context(), target)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, reactions)
}

// DeleteReaction removes the caller's reaction of the given type
func (h *ReactionHandler) DeleteReaction(c echo.Context) error {
	identity := currentIdentity(c)

	var req models.DeleteReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	target, err := reactionTarget(req.PostID, req.CommentID)
	if err != nil {
		return err
	}

	if err := h.reactionRepository.DeleteReaction(c.Request().Context(), target, identity.ID, req.ReactionType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reaction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
