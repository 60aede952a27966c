package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/authz"
	"github.com/openhaven/haven-backend/internal/models"
	"github.com/openhaven/haven-backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{postRepository: postRepo}
}

// RegisterPostRoutes registers post-related routes. Reads are public;
// mutations require an authenticated caller.
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.ListPosts)
	public.GET("/posts/:id", h.GetPost)
	protected.POST("/posts", h.CreatePost)
	protected.PUT("/posts/:id", h.UpdatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
}

// ListPosts retrieves posts with an optional status filter, newest first
func (h *PostHandler) ListPosts(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !models.ValidPostStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid status: %q", status))
	}
	limit, offset := parsePagination(c)

	posts, err := h.postRepository.ListPosts(c.Request().Context(), repositories.PostFilter{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post owned by the authenticated caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	identity := currentIdentity(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// The display name only applies to anonymous posts.
	if !req.IsAnonymous {
		req.AnonymousUsername = ""
	}

	post := &models.Post{
		Title:             req.Title,
		Content:           req.Content,
		Category:          req.Category,
		UserID:            identity.ID,
		IsAnonymous:       req.IsAnonymous,
		AnonymousUsername: req.AnonymousUsername,
		Status:            models.PostStatusActive,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID := c.Param("id")
	if err := requireUUID("id", postID); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// UpdatePost updates an existing post owned by the caller
func (h *PostHandler) UpdatePost(c echo.Context) error {
	identity := currentIdentity(c)
	postID := c.Param("id")
	if err := requireUUID("id", postID); err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	existing, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !authz.CanEditOrDelete(identity, existing) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this post")
	}

	existing.Title = req.Title
	existing.Content = req.Content
	existing.Category = req.Category
	existing.IsAnonymous = req.IsAnonymous

	if err := h.postRepository.UpdatePost(c.Request().Context(), existing); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, existing)
}

// DeletePost hard-deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	identity := currentIdentity(c)
	postID := c.Param("id")
	if err := requireUUID("id", postID); err != nil {
		return err
	}

	existing, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !authz.CanEditOrDelete(identity, existing) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
